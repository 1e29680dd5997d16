package reportsync

import (
	"context"
	"os"
	"path/filepath"

	"report-sync/core/utils"
)

// PlanEntry describes what the next run would do for one report.
type PlanEntry struct {
	Report       string  `json:"report"`
	Table        string  `json:"table"`
	Mode         Mode    `json:"mode"`
	LatestDate   string  `json:"latest_date,omitempty"`
	FloorApplied bool    `json:"floor_applied,omitempty"`
	Window       *Window `json:"window,omitempty"`
	Expected     int     `json:"expected_files"`
	Staged       int     `json:"staged_files"`
	Error        string  `json:"error,omitempty"`
}

// Plan reads every watermark and counts the staged files of each window.
// Nothing is fetched or written.
func (r *Runner) Plan(ctx context.Context) []PlanEntry {
	entries := make([]PlanEntry, 0, len(r.reports))
	for _, report := range r.reports {
		table := r.cfg.TableName(report)
		dir := r.cfg.StagingPath(report)
		entry := PlanEntry{Report: report.Table, Table: table, Mode: report.Mode()}

		if !report.HasDatestamp {
			entry.Expected = 1
			if _, err := FindStaged(dir, report.Pattern()); err == nil {
				entry.Staged = 1
			}
			entries = append(entries, entry)
			continue
		}

		mark, window, err := r.incremental.Window(ctx, table)
		if err != nil {
			entry.Error = err.Error()
			entries = append(entries, entry)
			continue
		}
		if mark.Found {
			entry.LatestDate = mark.Latest.Format(utils.DateLayout)
		} else {
			entry.FloorApplied = true
		}
		entry.Window = &window

		names := ExpectedFileNames(window.Start, window.End, report.Directory)
		entry.Expected = len(names)
		for _, name := range names {
			if _, err := os.Stat(filepath.Join(dir, name.String())); err == nil {
				entry.Staged++
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
