package reportsync

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"report-sync/core/utils"
	"report-sync/core/warehouse"

	"github.com/stretchr/testify/require"
)

// memWarehouse is an in-memory warehouse.Warehouse.
type memWarehouse struct {
	mu        sync.Mutex
	tables    map[string][]map[string]any
	appends   int
	replaces  int
	appendErr error
	latestErr error
}

func newMemWarehouse() *memWarehouse {
	return &memWarehouse{tables: map[string][]map[string]any{}}
}

func (w *memWarehouse) LatestDate(_ context.Context, table, column string) (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.latestErr != nil {
		return time.Time{}, w.latestErr
	}
	var latest time.Time
	for _, row := range w.tables[table] {
		d, err := utils.ToDate(row[column])
		if err == nil && d.After(latest) {
			latest = d
		}
	}
	if latest.IsZero() {
		return time.Time{}, warehouse.ErrEmptyTable
	}
	return latest, nil
}

func (w *memWarehouse) Append(_ context.Context, table string, records []map[string]any) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.appendErr != nil {
		return 0, w.appendErr
	}
	w.appends++
	w.tables[table] = append(w.tables[table], records...)
	return int64(len(records)), nil
}

func (w *memWarehouse) Replace(_ context.Context, table string, records []map[string]any) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.replaces++
	w.tables[table] = append([]map[string]any(nil), records...)
	return int64(len(records)), nil
}

func (w *memWarehouse) seed(table, date string) {
	w.tables[table] = append(w.tables[table], map[string]any{"date": date, "sis_id": "seed"})
}

func (w *memWarehouse) rows(table string) []map[string]any {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tables[table]
}

// fixedClock returns 2024-01-10 15:00 UTC.
func fixedClock() time.Time {
	return time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
}

func date(s string) time.Time {
	d, err := time.Parse(utils.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// stageDay writes the participation file of one day with two rows.
func stageDay(t *testing.T, dir, day string) {
	t.Helper()
	writeFile(t, dir, day+"-participation-students.csv",
		"date,sis_id,active\n"+day+",1,true\n"+day+",2,\n")
}
