package reportsync

import (
	"context"
	"fmt"
	"path/filepath"

	"report-sync/core/warehouse"

	"go.uber.org/zap"
)

// FullReplaceEngine replaces a non-dated report's table from a single file.
type FullReplaceEngine struct {
	warehouse warehouse.Warehouse
	read      FileReader
	schema    SchemaChecker
	logger    *zap.Logger
}

// NewFullReplaceEngine creates an engine; a nil reader means ReadCSV.
func NewFullReplaceEngine(wh warehouse.Warehouse, read FileReader, schema SchemaChecker, logger *zap.Logger) *FullReplaceEngine {
	if read == nil {
		read = ReadCSV
	}
	return &FullReplaceEngine{warehouse: wh, read: read, schema: schema, logger: logger}
}

// Sync replaces table with the rows of the staged file at path.
func (e *FullReplaceEngine) Sync(ctx context.Context, report Report, table, path string, dryRun bool) (*Result, error) {
	res := &Result{Report: report.Table, Table: table, Mode: ModeReplace}
	log := e.logger.With(zap.String("table", table))

	batch, err := e.read(path)
	if err != nil {
		return res, fmt.Errorf("failed to read export for %s: %w", table, err)
	}
	log.Info(fmt.Sprintf("Loaded %d records from downloaded file.", len(batch.Rows)), zap.String("file", filepath.Base(path)))

	unit := &LoadUnit{}
	if err := unit.add(batch); err != nil {
		return res, err
	}
	res.Files = baseNames(unit.Files)

	if err := unit.Rename(report.Rename); err != nil {
		return res, err
	}
	if err := checkSchema(ctx, e.schema, table, unit.Columns); err != nil {
		return res, err
	}

	if len(unit.Rows) == 0 {
		log.Warn("Export has no rows, table will be emptied")
	}

	if dryRun {
		res.State = StateDryRun
		res.Rows = int64(len(unit.Rows))
		return res, nil
	}

	n, err := e.warehouse.Replace(ctx, table, unit.Records())
	if err != nil {
		return res, fmt.Errorf("failed to replace %s: %w", table, err)
	}
	res.State = StateReplaced
	res.Rows = n
	log.Info(fmt.Sprintf("Inserted %d new records into %s.", n, table))
	return res, nil
}
