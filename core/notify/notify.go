package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Outcome is the result of one run handed to the notifiers.
type Outcome struct {
	// Job names the run, e.g. "Clever".
	Job string
	// Success is false when any report failed or the run aborted.
	Success bool
	// Logs holds everything the run logged.
	Logs string
}

// Subject returns the notification subject line.
func (o Outcome) Subject() string {
	status := "Success"
	if !o.Success {
		status = "Error"
	}
	return fmt.Sprintf("%s - %s", o.Job, status)
}

// Body returns the notification text including the logs.
func (o Outcome) Body() string {
	if o.Success {
		return fmt.Sprintf("%s completed successfully.\n%s", o.Job, o.Logs)
	}
	return fmt.Sprintf("%s encountered an error.\n%s", o.Job, o.Logs)
}

// Notifier delivers a run outcome.
type Notifier interface {
	Notify(ctx context.Context, outcome Outcome) error
}

// Multi fans an outcome out to several notifiers and joins their errors.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, outcome Outcome) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, outcome); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New returns the notifiers enabled by cfg. With nothing configured the result
// notifies nobody and a warning is logged.
func New(cfg Config, logger *zap.Logger) Notifier {
	var m Multi
	if cfg.Host != "" {
		m = append(m, NewMailer(cfg))
	}
	if cfg.WebhookURL != "" {
		m = append(m, NewSlack(cfg.WebhookURL))
	}
	if len(m) == 0 {
		logger.Warn("No notifier configured; run outcomes are only logged")
	}
	return m
}
