package snapshot

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound signals that a source's backing data does not exist.
// For previous-generation sources this is the expected first-run state.
var ErrNotFound = errors.New("snapshot source not found")

// Source yields the raw rows of one snapshot generation as
// header-keyed field mappings. Concrete formats (CSV today) live behind
// this interface so the delta engines never see file mechanics.
type Source interface {
	// Name returns the logical name of the source, e.g. "current products".
	Name() string

	// Read returns all rows. It returns ErrNotFound (possibly wrapped)
	// when the backing data does not exist.
	Read(ctx context.Context) ([]map[string]string, error)
}

// CSVSource reads a snapshot generation from a CSV file with a header
// row. Field names are the header cells, trimmed.
type CSVSource struct {
	name string
	path string
}

// NewCSVSource creates a CSV-backed source with the given logical name.
func NewCSVSource(name, path string) *CSVSource {
	return &CSVSource{name: name, path: path}
}

func (s *CSVSource) Name() string { return s.name }

// Path returns the backing file path. The orchestrator uses it for the
// rollover copy.
func (s *CSVSource) Path() string { return s.path }

func (s *CSVSource) Read(ctx context.Context) ([]map[string]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s (%s): %w", s.name, s.path, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", s.name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are tolerated, missing cells read as absent

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", s.name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row: %w", s.name, err)
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// field looks a value up by the first matching column alias. Scraped
// exports have drifted on column naming, so each logical field accepts
// the spellings seen in the data directory.
func field(row map[string]string, aliases ...string) (string, bool) {
	for _, a := range aliases {
		if v, ok := row[a]; ok {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}
