// Package export triggers report exports that land in the staging area.
//
// An export is a producer/consumer rendezvous: Trigger starts the producer in the
// background and returns at once; the sync engine waits for the resulting file
// with its readiness checker. HTTPExporter is the producer used for providers
// that expose a download URL per report. Any other mechanism (a scheduled
// extract, a manual drop) satisfies the same contract by writing the file.
//
// Downloads go to a hidden temp file in the destination directory and are
// renamed into place only after the body was fully written.
//
// Configuration (environment):
//
//	EXPORT_TOKEN=...
//	EXPORT_TIMEOUT_SECONDS=300
//	EXPORT_RETRY_COUNT=3
package export
