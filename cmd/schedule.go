package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"report-sync/feature/reportsync"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scheduleRunNow bool

// scheduleCmd runs the sync on the configured cron schedule.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the sync on a cron schedule",
	Long: `Runs the sync on sync.schedule (standard 5-field cron) in sync.timezone until
interrupted. A run still in progress when the next one is due is skipped.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "now", false, "Also run once immediately")
	RootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	app, err := bootstrap(true)
	if err != nil {
		return err
	}
	logg := app.logger
	defer func() { _ = logg.Sync() }()

	loc, err := app.cfg.Sync.Location()
	if err != nil {
		return app.fail(context.Background(), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() {
		_, _ = app.job.Execute(ctx, reportsync.RunOptions{}, true)
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cron.DiscardLogger),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	id, err := c.AddFunc(app.cfg.Sync.Schedule, run)
	if err != nil {
		return app.fail(ctx, fmt.Errorf("invalid schedule %q: %w", app.cfg.Sync.Schedule, err))
	}

	c.Start()
	logg.Info("Scheduler started",
		zap.String("schedule", app.cfg.Sync.Schedule),
		zap.String("timezone", loc.String()),
		zap.Time("next", c.Entry(id).Next),
	)

	if scheduleRunNow {
		run()
	}

	<-ctx.Done()
	logg.Info("Stopping scheduler...")
	<-c.Stop().Done()
	return nil
}
