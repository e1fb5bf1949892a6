//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"ixrna/pkg/api"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func openSQLite(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	args, err := EncodeArgs(run.Args)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, version, energy, mode, args)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			version = excluded.version,
			energy = excluded.energy,
			mode = excluded.mode,
			args = excluded.args
	`, run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.Version, run.Energy, run.Mode, args)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	var (
		run     = Run{ID: id}
		started string
		args    []byte
	)
	err = db.QueryRowContext(ctx,
		`SELECT started_at, version, energy, mode, args FROM runs WHERE id = ?`, id,
	).Scan(&started, &run.Version, &run.Energy, &run.Mode, &args)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, false, fmt.Errorf("run %s: started_at: %w", id, err)
	}
	if run.Args, err = DecodeArgs(args); err != nil {
		return Run{}, false, fmt.Errorf("run %s: %w", id, err)
	}
	return run, true, nil
}

// SaveInteractions writes all rows in one transaction.
func (s *SQLiteStore) SaveInteractions(ctx context.Context, runID string, list []api.InteractionV1) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO interactions (
			run_id, target_id, query_id, rank,
			start1, end1, start2, end2,
			energy, hybrid_energy, base_pairs, dot_bar, subseq1, subseq2, pairs
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, target_id, query_id, rank) DO UPDATE SET
			start1 = excluded.start1,
			end1 = excluded.end1,
			start2 = excluded.start2,
			end2 = excluded.end2,
			energy = excluded.energy,
			hybrid_energy = excluded.hybrid_energy,
			base_pairs = excluded.base_pairs,
			dot_bar = excluded.dot_bar,
			subseq1 = excluded.subseq1,
			subseq2 = excluded.subseq2,
			pairs = excluded.pairs
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range list {
		pairs, err := EncodePairs(v.Pairs)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			runID, v.TargetID, v.QueryID, v.Rank,
			v.Start1, v.End1, v.Start2, v.End2,
			v.Energy, v.Hybrid, v.BasePair, v.DotBar, v.Subseq1, v.Subseq2, pairs,
		); err != nil {
			return fmt.Errorf("save interaction %s/%s #%d: %w", v.TargetID, v.QueryID, v.Rank, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListInteractions(ctx context.Context, runID string) ([]api.InteractionV1, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT target_id, query_id, rank, start1, end1, start2, end2,
			energy, hybrid_energy, base_pairs, dot_bar, subseq1, subseq2, pairs
		FROM interactions
		WHERE run_id = ?
		ORDER BY target_id, query_id, rank
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.InteractionV1
	for rows.Next() {
		v := api.InteractionV1{RunID: runID}
		var pairs []byte
		if err := rows.Scan(&v.TargetID, &v.QueryID, &v.Rank, &v.Start1, &v.End1, &v.Start2, &v.End2,
			&v.Energy, &v.Hybrid, &v.BasePair, &v.DotBar, &v.Subseq1, &v.Subseq2, &pairs); err != nil {
			return nil, err
		}
		if v.Pairs, err = DecodePairs(pairs); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			version TEXT NOT NULL,
			energy TEXT NOT NULL,
			mode TEXT NOT NULL,
			args BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS interactions (
			run_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			query_id TEXT NOT NULL,
			rank INTEGER NOT NULL,
			start1 INTEGER NOT NULL,
			end1 INTEGER NOT NULL,
			start2 INTEGER NOT NULL,
			end2 INTEGER NOT NULL,
			energy REAL NOT NULL,
			hybrid_energy REAL NOT NULL,
			base_pairs INTEGER NOT NULL,
			dot_bar TEXT NOT NULL,
			subseq1 TEXT NOT NULL,
			subseq2 TEXT NOT NULL,
			pairs BLOB NOT NULL,
			PRIMARY KEY (run_id, target_id, query_id, rank)
		);
	`)
	return err
}
