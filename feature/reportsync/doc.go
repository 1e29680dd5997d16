// Package reportsync loads report files delivered to a remote drop location into
// the warehouse, each day exactly once and in order.
//
// # Reports
//
// A dated report is delivered as one file per day named
// "<YYYY-MM-DD>-<directory>-students.csv". Its destination table carries a date
// column whose most recent value is the table's watermark. A non-dated report is
// a single export that replaces its table wholesale.
//
// # Incremental sync
//
// IncrementalEngine walks one report through
//
//	ComputeWindow -> UpToDate
//	ComputeWindow -> Assemble -> Empty
//	ComputeWindow -> Assemble -> Commit
//
// The window is [watermark+1, yesterday]; the current day is never loaded. A
// table without rows starts at the floor (floor_date, or initial_lookback_days
// before yesterday). Missing days inside the window are skipped and logged; a
// window whose files are all missing ends Empty without touching the table. The
// watermark only moves by committing, so an aborted or failed run is resumed by
// the next one from the same place.
//
// # Full replace
//
// FullReplaceEngine reads the newest file matching the report's pattern and
// replaces the table in one transaction. Exports triggered over HTTP are awaited
// with ReadinessChecker, which polls the staging directory with bounded
// exponential backoff (10 attempts, 4s doubling up to 10s by default).
//
// # Runs
//
// Runner stages every report (remote fetch or export trigger), then syncs the
// reports with bounded parallelism. A fetch failure aborts the whole run; any
// other failure only fails its report. Job adds the run log and notification,
// and Service/Handler expose plans and triggers over HTTP:
//
//   - GET  /reports : watermark, window and staged files per report.
//   - POST /sync    : run now (?report=Participation,Resources&dry_run=true).
package reportsync
