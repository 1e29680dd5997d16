package reportsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"report-sync/core/export"
	"report-sync/core/remote"
	"report-sync/core/retry"
	"report-sync/core/warehouse"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Deps are the collaborators of a Runner.
type Deps struct {
	// Fetcher stages remote directories; nil means files are staged by other means.
	Fetcher remote.Fetcher
	// Exporter triggers exports for reports with an export URL.
	Exporter export.Exporter
	// Warehouse is the destination of all reports.
	Warehouse warehouse.Warehouse
	// Schema verifies destination columns; nil disables the check.
	Schema SchemaChecker
	// Clock defaults to time.Now.
	Clock Clock
	// Sleeper defaults to retry.Sleep.
	Sleeper retry.Sleeper
}

// RunOptions narrows a run.
type RunOptions struct {
	// Reports limits the run to these report tables; empty means all.
	Reports []string
	// DryRun reads and validates but writes nothing.
	DryRun bool
}

// RunResult is the outcome of one run.
type RunResult struct {
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	DryRun   bool      `json:"dry_run,omitempty"`
	Results  []*Result `json:"results"`
}

// Success reports whether every report succeeded.
func (r *RunResult) Success() bool {
	for _, res := range r.Results {
		if res.State == StateFailed {
			return false
		}
	}
	return true
}

// Summary renders one line per report.
func (r *RunResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run finished in %s", r.Finished.Sub(r.Started).Round(time.Millisecond))
	for _, res := range r.Results {
		b.WriteString("\n  ")
		b.WriteString(res.String())
	}
	return b.String()
}

// Runner syncs every configured report.
type Runner struct {
	cfg         Config
	reports     []Report
	fetcher     remote.Fetcher
	exporter    export.Exporter
	incremental *IncrementalEngine
	replace     *FullReplaceEngine
	readiness   *ReadinessChecker
	now         Clock
	logger      *zap.Logger
}

// NewRunner validates reports and wires the engines.
func NewRunner(cfg Config, reports []Report, deps Deps, logger *zap.Logger) (*Runner, error) {
	seen := make(map[string]struct{}, len(reports))
	for _, r := range reports {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.Table]; dup {
			return nil, fmt.Errorf("report %s configured twice", r.Table)
		}
		seen[r.Table] = struct{}{}
		if r.ExportURL != "" && deps.Exporter == nil {
			return nil, fmt.Errorf("report %s has an export_url but no exporter is configured", r.Table)
		}
	}
	if deps.Warehouse == nil {
		return nil, fmt.Errorf("no warehouse configured")
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	floor, err := cfg.Floor()
	if err != nil {
		return nil, err
	}

	schema := deps.Schema
	if !cfg.VerifySchema {
		schema = nil
	}

	now := deps.Clock
	if now == nil {
		now = time.Now
	}

	assembler := NewAssembler(ReadCSV, logger)
	return &Runner{
		cfg:      cfg,
		reports:  reports,
		fetcher:  deps.Fetcher,
		exporter: deps.Exporter,
		incremental: NewIncrementalEngine(
			NewWatermarkStore(deps.Warehouse, cfg.DateColumn),
			deps.Warehouse, assembler, schema, floor, loc, now, logger,
		),
		replace:   NewFullReplaceEngine(deps.Warehouse, ReadCSV, schema, logger),
		readiness: NewReadinessChecker(cfg.Readiness, deps.Sleeper, logger),
		now:       now,
		logger:    logger,
	}, nil
}

// Reports returns the configured reports.
func (r *Runner) Reports() []Report {
	return r.reports
}

func (r *Runner) selectReports(names []string) ([]Report, error) {
	if len(names) == 0 {
		return r.reports, nil
	}
	var selected []Report
	for _, name := range names {
		idx := slices.IndexFunc(r.reports, func(rep Report) bool { return strings.EqualFold(rep.Table, name) })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownReport, name)
		}
		selected = append(selected, r.reports[idx])
	}
	return selected, nil
}

// Run stages the selected reports and syncs them.
// A failed remote fetch aborts the run and is returned as an error. Report
// failures are recorded in the result and joined into the returned error so
// that other reports still run.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	run := &RunResult{Started: r.now(), DryRun: opts.DryRun}
	defer func() { run.Finished = r.now() }()

	reports, err := r.selectReports(opts.Reports)
	if err != nil {
		return run, err
	}

	// Exports triggered before a failed fetch are joined too.
	if r.exporter != nil {
		defer r.exporter.Wait()
	}
	if err := r.stage(ctx, reports); err != nil {
		return run, err
	}

	run.Results = make([]*Result, len(reports))
	g := new(errgroup.Group)
	g.SetLimit(max(r.cfg.Parallelism, 1))
	for i, report := range reports {
		g.Go(func() error {
			run.Results[i] = r.syncReport(ctx, report, opts.DryRun)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range run.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return run, errors.Join(errs...)
}

// stage fetches remote directories and triggers exports.
func (r *Runner) stage(ctx context.Context, reports []Report) error {
	for _, report := range reports {
		dir := r.cfg.StagingPath(report)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create staging directory %s: %w", dir, err)
		}

		if report.ExportURL != "" {
			dest := filepath.Join(dir, report.ExportFileName())
			if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to remove stale export %s: %w", dest, err)
			}
			r.logger.Info("Triggering export", zap.String("report", report.Table))
			r.exporter.Trigger(ctx, report.ExportURL, dest)
			continue
		}

		if r.fetcher == nil {
			continue
		}
		remoteDir := r.cfg.RemoteDir(report)
		n, err := r.fetcher.FetchDirectory(ctx, remoteDir, dir)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", remoteDir, err)
		}
		r.logger.Info("Fetched report files", zap.String("report", report.Table), zap.Int("files", n))
	}
	return nil
}

func (r *Runner) syncReport(ctx context.Context, report Report, dryRun bool) *Result {
	start := r.now()
	table := r.cfg.TableName(report)
	dir := r.cfg.StagingPath(report)

	var res *Result
	var err error
	if report.HasDatestamp {
		res, err = r.incremental.Sync(ctx, report, table, dir, dryRun)
	} else {
		res, err = r.syncReplace(ctx, report, table, dir, dryRun)
	}
	res.Duration = r.now().Sub(start)

	if err != nil {
		res.fail(err)
		r.logger.Error("Report sync failed", zap.String("table", table), zap.Error(err))
	}
	return res
}

func (r *Runner) syncReplace(ctx context.Context, report Report, table, dir string, dryRun bool) (*Result, error) {
	var path string
	var err error
	if report.ExportURL != "" {
		path, err = r.readiness.WaitFor(ctx, report.Pattern(), dir)
	} else {
		path, err = FindStaged(dir, report.Pattern())
		if errors.Is(err, ErrFileNotReady) {
			err = fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
	}
	if err != nil {
		return &Result{Report: report.Table, Table: table, Mode: ModeReplace}, fmt.Errorf("no export for %s: %w", table, err)
	}
	return r.replace.Sync(ctx, report, table, path, dryRun)
}
