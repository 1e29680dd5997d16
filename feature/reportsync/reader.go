package reportsync

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RecordBatch holds the rows of one staged file.
type RecordBatch struct {
	Path    string
	Columns []string
	Rows    [][]string
}

// FileReader loads a staged file.
type FileReader func(path string) (*RecordBatch, error)

// ReadCSV loads a staged CSV file with a header row.
// A missing file yields ErrFileNotFound; anything unparsable yields ErrMalformedFile.
func ReadCSV(path string) (*RecordBatch, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s is empty", ErrMalformedFile, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFile, filepath.Base(path), err)
	}

	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: %s: empty column name at position %d", ErrMalformedFile, filepath.Base(path), i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate column %q", ErrMalformedFile, filepath.Base(path), name)
		}
		seen[name] = struct{}{}
		columns[i] = name
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFile, filepath.Base(path), err)
	}

	return &RecordBatch{Path: path, Columns: columns, Rows: rows}, nil
}
