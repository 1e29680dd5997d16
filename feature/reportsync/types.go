package reportsync

import (
	"fmt"
	"strings"
	"time"
)

// Report is one configured report feed.
type Report struct {
	// Table is the destination table without prefix, e.g. "Participation".
	Table string `mapstructure:"table" json:"table"`
	// Directory is the remote directory and the report identifier used in file names.
	Directory string `mapstructure:"directory" json:"directory,omitempty"`
	// HasDatestamp selects incremental loading of one file per day.
	// Reports without it are replaced wholesale from a single file.
	HasDatestamp bool `mapstructure:"has_datestamp" json:"has_datestamp"`
	// FilePattern is the glob of the single file of a non-dated report.
	// Defaults to "<Table>.csv"; ignored when ExportURL is set.
	FilePattern string `mapstructure:"file_pattern" json:"file_pattern,omitempty"`
	// ExportURL triggers an HTTP export for a non-dated report instead of a remote fetch.
	ExportURL string `mapstructure:"export_url" json:"-"`
	// Rename maps source column names to destination column names (case-insensitive keys).
	Rename map[string]string `mapstructure:"rename" json:"rename,omitempty"`
}

// Validate checks that the report can be synced.
func (r Report) Validate() error {
	if r.Table == "" {
		return fmt.Errorf("report without table")
	}
	if r.HasDatestamp && r.Directory == "" {
		return fmt.Errorf("report %s: dated reports need a directory", r.Table)
	}
	if r.HasDatestamp && r.ExportURL != "" {
		return fmt.Errorf("report %s: export_url is only supported for non-dated reports", r.Table)
	}
	if !r.HasDatestamp && r.Directory == "" && r.ExportURL == "" {
		return fmt.Errorf("report %s: needs a directory or an export_url", r.Table)
	}
	return nil
}

// Pattern returns the glob matching the single file of a non-dated report.
func (r Report) Pattern() string {
	if r.FilePattern != "" && r.ExportURL == "" {
		return r.FilePattern
	}
	return r.ExportFileName()
}

// ExportFileName is the file an export for this report is written to.
func (r Report) ExportFileName() string {
	return r.Table + ".csv"
}

// Mode describes how a report is loaded.
type Mode string

const (
	ModeAppend  Mode = "append"
	ModeReplace Mode = "replace"
)

// Mode returns the load mode of the report.
func (r Report) Mode() Mode {
	if r.HasDatestamp {
		return ModeAppend
	}
	return ModeReplace
}

// State is the terminal state of one report sync.
type State string

const (
	// StateUpToDate means the window was empty; nothing to do.
	StateUpToDate State = "up_to_date"
	// StateEmpty means a window existed but none of its files were staged.
	StateEmpty State = "empty"
	// StateCommitted means rows were appended.
	StateCommitted State = "committed"
	// StateReplaced means the table was replaced.
	StateReplaced State = "replaced"
	// StateDryRun means rows were read but not written.
	StateDryRun State = "dry_run"
	// StateFailed means the sync returned an error.
	StateFailed State = "failed"
)

// Result is the outcome of one report sync.
type Result struct {
	Report       string        `json:"report"`
	Table        string        `json:"table"`
	Mode         Mode          `json:"mode"`
	State        State         `json:"state"`
	Window       *Window       `json:"window,omitempty"`
	FloorApplied bool          `json:"floor_applied,omitempty"`
	Files        []string      `json:"files,omitempty"`
	Missing      []string      `json:"missing,omitempty"`
	Rows         int64         `json:"rows"`
	Duration     time.Duration `json:"duration"`
	Err          error         `json:"-"`
	Error        string        `json:"error,omitempty"`
}

func (r *Result) fail(err error) {
	r.State = StateFailed
	r.Err = err
	r.Error = err.Error()
}

// String renders the result as one summary line.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", r.Table, r.State)
	if r.Window != nil {
		fmt.Fprintf(&b, " window=%s", r.Window)
	}
	switch r.State {
	case StateCommitted, StateReplaced, StateDryRun:
		fmt.Fprintf(&b, " rows=%d files=%d", r.Rows, len(r.Files))
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(&b, " missing=%d", len(r.Missing))
	}
	if r.Err != nil {
		fmt.Fprintf(&b, " error=%q", r.Err.Error())
	}
	return b.String()
}
