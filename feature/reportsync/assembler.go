package reportsync

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// LoadUnit is the concatenation of the batches read for one sync pass.
type LoadUnit struct {
	Columns []string
	Rows    [][]string
	// Files lists the staged files read, in load order.
	Files []string
	// Missing lists the expected files that were not staged.
	Missing []string
}

// Empty reports whether no file was read. An empty unit is never committed.
func (u *LoadUnit) Empty() bool {
	return len(u.Files) == 0
}

// add appends a batch, aligning its columns to the unit's by name.
func (u *LoadUnit) add(b *RecordBatch) error {
	if u.Empty() {
		u.Columns = slices.Clone(b.Columns)
		u.Rows = append(u.Rows, b.Rows...)
		u.Files = append(u.Files, b.Path)
		return nil
	}

	mismatch := fmt.Errorf("%w: %s has columns %v, expected %v",
		ErrSchemaMismatch, filepath.Base(b.Path), b.Columns, u.Columns)
	if len(b.Columns) != len(u.Columns) {
		return mismatch
	}

	index := make(map[string]int, len(b.Columns))
	for i, name := range b.Columns {
		index[name] = i
	}
	order := make([]int, len(u.Columns))
	for i, name := range u.Columns {
		j, ok := index[name]
		if !ok {
			return mismatch
		}
		order[i] = j
	}

	for _, row := range b.Rows {
		aligned := make([]string, len(order))
		for i, j := range order {
			aligned[i] = row[j]
		}
		u.Rows = append(u.Rows, aligned)
	}
	u.Files = append(u.Files, b.Path)
	return nil
}

// Rename replaces column names using from->to pairs; keys match case-insensitively.
// A rename that collides with another column fails with ErrSchemaMismatch and
// leaves the columns untouched.
func (u *LoadUnit) Rename(renames map[string]string) error {
	renamed := slices.Clone(u.Columns)
	for i, name := range renamed {
		for from, to := range renames {
			if strings.EqualFold(name, from) {
				renamed[i] = to
				break
			}
		}
	}
	for i, name := range renamed {
		for _, other := range renamed[:i] {
			if strings.EqualFold(name, other) {
				return fmt.Errorf("%w: column %s appears twice after renaming in %s",
					ErrSchemaMismatch, name, strings.Join(baseNames(u.Files), ", "))
			}
		}
	}
	u.Columns = renamed
	return nil
}

// Records converts the rows to column maps. Empty fields become NULL.
func (u *LoadUnit) Records() []map[string]any {
	records := make([]map[string]any, len(u.Rows))
	for i, row := range u.Rows {
		record := make(map[string]any, len(u.Columns))
		for j, name := range u.Columns {
			if row[j] == "" {
				record[name] = nil
			} else {
				record[name] = row[j]
			}
		}
		records[i] = record
	}
	return records
}

// Assembler reads staged files into a LoadUnit.
type Assembler struct {
	read   FileReader
	logger *zap.Logger
}

// NewAssembler creates an assembler; a nil reader means ReadCSV.
func NewAssembler(read FileReader, logger *zap.Logger) *Assembler {
	if read == nil {
		read = ReadCSV
	}
	return &Assembler{read: read, logger: logger}
}

// Assemble reads paths in order. Missing files are skipped; malformed files and
// column mismatches abort.
func (a *Assembler) Assemble(paths []string) (*LoadUnit, error) {
	unit := &LoadUnit{}
	for _, path := range paths {
		batch, err := a.read(path)
		if errors.Is(err, ErrFileNotFound) {
			a.logger.Info("Staged file not found, skipping", zap.String("file", filepath.Base(path)))
			unit.Missing = append(unit.Missing, path)
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := unit.add(batch); err != nil {
			return nil, err
		}
		a.logger.Debug("Read staged file", zap.String("file", filepath.Base(path)), zap.Int("rows", len(batch.Rows)))
	}
	return unit, nil
}
