package reportsync

import "errors"

var (
	// ErrNoWatermarkFound is returned when a destination table has never been loaded.
	ErrNoWatermarkFound = errors.New("no watermark found")
	// ErrFileNotFound is returned when a staged file does not exist.
	ErrFileNotFound = errors.New("staged file not found")
	// ErrFileNotReady is returned when no file matching an export pattern appeared.
	ErrFileNotReady = errors.New("file not ready")
	// ErrMalformedFile is returned when a staged file exists but cannot be parsed.
	ErrMalformedFile = errors.New("malformed file")
	// ErrSchemaMismatch is returned when batches disagree on their columns or the
	// destination table lacks a column of the load.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrUnknownReport is returned when a run is filtered to a report that is not configured.
	ErrUnknownReport = errors.New("unknown report")
)
