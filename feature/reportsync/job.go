package reportsync

import (
	"context"
	"sync"

	"report-sync/core/logger"
	"report-sync/core/notify"

	"go.uber.org/zap"
)

// Job runs the Runner and reports the outcome with the captured run log.
// Executions are serialized so a table only ever has one writer.
type Job struct {
	name     string
	runner   *Runner
	notifier notify.Notifier
	capture  *logger.Capture
	logger   *zap.Logger
	mu       sync.Mutex
}

// NewJob creates a job. notifier and capture may be nil.
func NewJob(name string, runner *Runner, notifier notify.Notifier, capture *logger.Capture, logger *zap.Logger) *Job {
	return &Job{name: name, runner: runner, notifier: notifier, capture: capture, logger: logger}
}

// Runner returns the job's runner.
func (j *Job) Runner() *Runner {
	return j.runner
}

// Execute performs one run and, when notifyOutcome is set, sends the outcome.
func (j *Job) Execute(ctx context.Context, opts RunOptions, notifyOutcome bool) (*RunResult, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.capture != nil {
		j.capture.Reset()
	}

	j.logger.Info("Starting sync run", zap.String("job", j.name), zap.Strings("reports", opts.Reports), zap.Bool("dry_run", opts.DryRun))
	run, err := j.runner.Run(ctx, opts)
	if run != nil && len(run.Results) > 0 {
		j.logger.Info(run.Summary())
	}
	if err != nil {
		j.logger.Error("Sync run failed", zap.String("job", j.name), zap.Error(err))
	} else {
		j.logger.Info("Sync run succeeded", zap.String("job", j.name))
	}

	if notifyOutcome && j.notifier != nil {
		outcome := notify.Outcome{Job: j.name, Success: err == nil}
		if j.capture != nil {
			outcome.Logs = j.capture.String()
		}
		if nerr := j.notifier.Notify(ctx, outcome); nerr != nil {
			j.logger.Error("Failed to send notification", zap.Error(nerr))
		}
	}

	return run, err
}
