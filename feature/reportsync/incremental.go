package reportsync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"report-sync/core/utils"
	"report-sync/core/warehouse"

	"go.uber.org/zap"
)

// Clock returns the current time.
type Clock func() time.Time

// Watermark is the loading position of one table.
type Watermark struct {
	Table string
	// Latest is the most recent loaded day; zero when Found is false.
	Latest time.Time
	Found  bool
}

// IncrementalEngine loads the days missing from a dated report's table.
type IncrementalEngine struct {
	watermarks WatermarkStore
	warehouse  warehouse.Warehouse
	assembler  *Assembler
	schema     SchemaChecker
	floor      FloorPolicy
	loc        *time.Location
	now        Clock
	logger     *zap.Logger
}

// NewIncrementalEngine creates an engine. schema may be nil to skip column checks.
func NewIncrementalEngine(
	watermarks WatermarkStore,
	wh warehouse.Warehouse,
	assembler *Assembler,
	schema SchemaChecker,
	floor FloorPolicy,
	loc *time.Location,
	now Clock,
	logger *zap.Logger,
) *IncrementalEngine {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &IncrementalEngine{
		watermarks: watermarks,
		warehouse:  wh,
		assembler:  assembler,
		schema:     schema,
		floor:      floor,
		loc:        loc,
		now:        now,
		logger:     logger,
	}
}

// Window reads the watermark of table and returns the days left to load.
// A table without rows starts at the floor.
func (e *IncrementalEngine) Window(ctx context.Context, table string) (Watermark, Window, error) {
	yesterday := Yesterday(e.now(), e.loc)
	mark := Watermark{Table: table}

	latest, err := e.watermarks.LatestDate(ctx, table)
	if errors.Is(err, ErrNoWatermarkFound) {
		start := e.floor.Start(yesterday)
		return mark, Window{Start: start, End: yesterday}, nil
	}
	if err != nil {
		return mark, Window{}, fmt.Errorf("failed to read watermark of %s: %w", table, err)
	}

	mark.Latest, mark.Found = latest, true
	return mark, WindowAfter(latest, yesterday), nil
}

// Sync loads the missing window of report into table from the files staged in dir.
// The returned result is never nil; err is set when the report failed.
func (e *IncrementalEngine) Sync(ctx context.Context, report Report, table, dir string, dryRun bool) (*Result, error) {
	res := &Result{Report: report.Table, Table: table, Mode: ModeAppend}
	log := e.logger.With(zap.String("table", table))

	mark, window, err := e.Window(ctx, table)
	if err != nil {
		return res, err
	}
	res.Window = &window
	if !mark.Found {
		res.FloorApplied = true
		log.Info("No watermark found, loading from floor", zap.String("floor", window.Start.Format(utils.DateLayout)))
	}

	if window.Empty() {
		res.State = StateUpToDate
		log.Info(fmt.Sprintf("%s is up to date. No records inserted.", table))
		return res, nil
	}

	names := ExpectedFileNames(window.Start, window.End, report.Directory)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name.String())
	}

	unit, err := e.assembler.Assemble(paths)
	if err != nil {
		return res, fmt.Errorf("failed to assemble %s window %s: %w", table, window, err)
	}
	res.Files, res.Missing = baseNames(unit.Files), baseNames(unit.Missing)

	if unit.Empty() {
		res.State = StateEmpty
		log.Warn("No staged files for window, possible upstream delivery failure",
			zap.Stringer("window", window), zap.Int("expected", len(names)))
		return res, nil
	}

	if err := unit.Rename(report.Rename); err != nil {
		return res, err
	}
	if err := checkSchema(ctx, e.schema, table, unit.Columns); err != nil {
		return res, err
	}

	if dryRun {
		res.State = StateDryRun
		res.Rows = int64(len(unit.Rows))
		log.Info("Dry run, skipping append", zap.Stringer("window", window), zap.Int("rows", len(unit.Rows)))
		return res, nil
	}

	n, err := e.warehouse.Append(ctx, table, unit.Records())
	if err != nil {
		return res, fmt.Errorf("failed to commit %s window %s: %w", table, window, err)
	}
	res.State = StateCommitted
	res.Rows = n
	log.Info(fmt.Sprintf("Inserted %d records into %s.", n, table),
		zap.Stringer("window", window), zap.Int("files", len(unit.Files)), zap.Int("missing", len(unit.Missing)))
	return res, nil
}

func checkSchema(ctx context.Context, schema SchemaChecker, table string, columns []string) error {
	if schema == nil {
		return nil
	}
	missing, err := schema.MissingColumns(ctx, table, columns)
	if err != nil {
		return fmt.Errorf("failed to verify columns of %s: %w", table, err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s has no columns %v", ErrSchemaMismatch, table, missing)
	}
	return nil
}

func baseNames(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
