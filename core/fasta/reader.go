// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
)

// Record is one parsed FASTA sequence.
type Record struct {
	ID   string
	Desc string
	Seq  string
}

// ScanCtx parses FASTA from r and calls emit once per record. Lines
// before the first header are an error. Cancellation is checked per line.
func ScanCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		cur    Record
		seq    bytes.Buffer
		inRec  bool
		lineNo int
	)
	flush := func() error {
		if !inRec {
			return nil
		}
		cur.Seq = seq.String()
		seq.Reset()
		return emit(cur)
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			cur = parseHeader(line[1:])
			inRec = true
			continue
		}
		if !inRec {
			return fmt.Errorf("fasta line %d: sequence data before header", lineNo)
		}
		for _, b := range line {
			if b != ' ' && b != '\t' {
				seq.WriteByte(b)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadPathCtx reads all records of path (see Open).
func ReadPathCtx(ctx context.Context, path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var recs []Record
	err = ScanCtx(ctx, rc, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Inline wraps a sequence given on the command line as a record.
func Inline(id, seq string) Record {
	return Record{ID: id, Seq: strings.TrimSpace(seq)}
}

func parseHeader(hdr []byte) Record {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return Record{ID: string(hdr[:i]), Desc: string(bytes.TrimSpace(hdr[i+1:]))}
	}
	return Record{ID: string(hdr)}
}
