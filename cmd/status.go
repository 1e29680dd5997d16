package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd prints the watermark and pending window of every report.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show watermarks and pending windows",
	Long:  `Reads each dated table's watermark and shows which days the next sync would load and how many of their files are already staged. Nothing is fetched or written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(ctx context.Context) error {
	app, err := bootstrap(false)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	entries := app.job.Runner().Plan(ctx)

	// Pretty Console Output
	fmt.Println("\n--- Report Sync Status ---")
	for _, e := range entries {
		fmt.Printf("Table:          %s (%s)\n", e.Table, e.Mode)
		switch {
		case e.Error != "":
			fmt.Printf("Error:          %s\n", e.Error)
		case e.Window != nil:
			latest := e.LatestDate
			if e.FloorApplied {
				latest = "none (floor applied)"
			}
			fmt.Printf("Latest Date:    %s\n", latest)
			if e.Window.Empty() {
				fmt.Println("Window:         up to date")
			} else {
				fmt.Printf("Window:         %s (%d days)\n", e.Window, e.Window.Days())
			}
			fmt.Printf("Staged Files:   %d/%d\n", e.Staged, e.Expected)
		default:
			fmt.Printf("Export Staged:  %v\n", e.Staged > 0)
		}
		fmt.Println("--------------------------")
	}
	return nil
}
