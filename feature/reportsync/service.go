package reportsync

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service exposes runs and plans to the HTTP layer.
type Service struct {
	job    *Job
	group  singleflight.Group
	logger *zap.Logger
}

// NewService creates a new sync service.
func NewService(job *Job, logger *zap.Logger) *Service {
	return &Service{job: job, logger: logger}
}

// Plan returns what the next run would load.
func (s *Service) Plan(ctx context.Context) []PlanEntry {
	return s.job.Runner().Plan(ctx)
}

// Trigger runs the job. Identical concurrent triggers share one run; shared
// reports whether this caller joined a run started by another request.
// The run is detached from ctx so a dropped request does not abort it.
func (s *Service) Trigger(ctx context.Context, opts RunOptions) (run *RunResult, shared bool, err error) {
	if _, err := s.job.Runner().selectReports(opts.Reports); err != nil {
		return nil, false, err
	}

	key := fmt.Sprintf("%s|%t", strings.ToLower(strings.Join(opts.Reports, ",")), opts.DryRun)
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.job.Execute(context.WithoutCancel(ctx), opts, !opts.DryRun)
	})
	run, _ = v.(*RunResult)
	return run, shared, err
}
