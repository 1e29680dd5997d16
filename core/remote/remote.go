package remote

import (
	"context"
	"errors"
	"fmt"

	"report-sync/core/storage"

	"go.uber.org/zap"
)

// ErrConnection is returned when the drop location cannot be reached.
// No report can proceed without staged files, so callers abort the run.
var ErrConnection = errors.New("remote connection failed")

// Fetcher copies every file below a remote directory into a local staging directory,
// preserving modification times. Zero files is a normal outcome.
type Fetcher interface {
	FetchDirectory(ctx context.Context, remotePath, localDir string) (int, error)
}

// NewFetcher builds the fetcher selected by cfg.Kind. The storage client and bucket are
// only used by the s3 kind. KindNone yields a nil Fetcher.
func NewFetcher(cfg Config, store storage.Client, bucket string, logger *zap.Logger) (Fetcher, error) {
	switch cfg.Kind {
	case KindNone:
		return nil, nil
	case KindSFTP, "":
		return NewSFTPFetcher(cfg, logger)
	case KindS3:
		if store == nil {
			return nil, fmt.Errorf("s3 fetcher requires a storage client")
		}
		return NewS3Fetcher(store, bucket, logger), nil
	default:
		return nil, fmt.Errorf("unsupported remote kind %q", cfg.Kind)
	}
}
