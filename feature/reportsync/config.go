package reportsync

import (
	"fmt"
	"path"
	"path/filepath"
	"time"

	"report-sync/core/retry"
	"report-sync/core/utils"
)

// Config holds configuration for sync runs.
type Config struct {
	// StagingDir is the local directory files are staged in, one subdirectory per report.
	StagingDir string `mapstructure:"staging_dir" default:"data"`
	// RemotePath is the remote directory holding one subdirectory per report.
	RemotePath string `mapstructure:"remote_path" default:"/"`
	// Timezone decides which day "yesterday" is.
	Timezone string `mapstructure:"timezone" default:"UTC"`
	// FloorDate (YYYY-MM-DD) is the first day loaded into a table without rows.
	FloorDate string `mapstructure:"floor_date" default:""`
	// InitialLookbackDays is used when FloorDate is unset.
	InitialLookbackDays int `mapstructure:"initial_lookback_days" default:"30"`
	// DateColumn is the column holding the report day.
	DateColumn string `mapstructure:"date_column" default:"date"`
	// TablePrefix is prepended to every report table.
	TablePrefix string `mapstructure:"table_prefix" default:"Clever_"`
	// Schema qualifies destination tables when set (e.g. "custom").
	Schema string `mapstructure:"schema" default:""`
	// Parallelism bounds concurrent report syncs.
	Parallelism int `mapstructure:"parallelism" default:"1"`
	// VerifySchema checks destination columns before committing.
	VerifySchema bool `mapstructure:"verify_schema" default:"true"`
	// BatchSize is the number of rows per INSERT.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// Schedule is the cron spec used by the schedule command.
	Schedule string `mapstructure:"schedule" default:"0 6 * * *"`
	// Readiness is the polling policy for exported files.
	Readiness retry.Policy `mapstructure:"readiness"`
}

// TableName returns the destination table of a report.
func (c Config) TableName(r Report) string {
	name := c.TablePrefix + r.Table
	if c.Schema != "" {
		return c.Schema + "." + name
	}
	return name
}

// StagingPath returns the local directory a report is staged in.
func (c Config) StagingPath(r Report) string {
	name := r.Directory
	if name == "" {
		name = r.Table
	}
	return filepath.Join(c.StagingDir, name)
}

// RemoteDir returns the remote directory of a report.
func (c Config) RemoteDir(r Report) string {
	return path.Join(c.RemotePath, r.Directory)
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Floor returns the floor policy for tables without rows.
func (c Config) Floor() (FloorPolicy, error) {
	policy := FloorPolicy{LookbackDays: c.InitialLookbackDays}
	if c.FloorDate != "" {
		date, err := time.Parse(utils.DateLayout, c.FloorDate)
		if err != nil {
			return FloorPolicy{}, fmt.Errorf("invalid floor_date %q: %w", c.FloorDate, err)
		}
		policy.Date = date
	}
	return policy, nil
}
