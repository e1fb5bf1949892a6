package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"ixrna/pkg/api"
)

type rowKey struct {
	target, query string
	rank          int
}

type MemoryStore struct {
	mu           sync.RWMutex
	initialized  bool
	runs         map[string]Run
	interactions map[string]map[rowKey]api.InteractionV1
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]Run)
	s.interactions = make(map[string]map[rowKey]api.InteractionV1)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	run.Args = append([]string(nil), run.Args...)
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) SaveInteractions(_ context.Context, runID string, list []api.InteractionV1) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	rows, ok := s.interactions[runID]
	if !ok {
		rows = make(map[rowKey]api.InteractionV1)
		s.interactions[runID] = rows
	}
	for _, v := range list {
		v.RunID = runID
		v.Pairs = append([][2]int(nil), v.Pairs...)
		rows[rowKey{v.TargetID, v.QueryID, v.Rank}] = v
	}
	return nil
}

func (s *MemoryStore) ListInteractions(_ context.Context, runID string) ([]api.InteractionV1, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.interactions[runID]
	out := make([]api.InteractionV1, 0, len(rows))
	for _, v := range rows {
		out = append(out, v)
	}
	sortRows(out)
	return out, nil
}

// sortRows applies the listing order shared by all backends.
func sortRows(list []api.InteractionV1) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.TargetID != b.TargetID {
			return a.TargetID < b.TargetID
		}
		if a.QueryID != b.QueryID {
			return a.QueryID < b.QueryID
		}
		return a.Rank < b.Rank
	})
}
