package remote

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"report-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// S3Fetcher downloads report directories from an S3-compatible bucket.
// A remote directory is an object key prefix.
type S3Fetcher struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewS3Fetcher creates a fetcher reading from bucket.
func NewS3Fetcher(client storage.Client, bucket string, logger *zap.Logger) *S3Fetcher {
	return &S3Fetcher{client: client, bucket: bucket, logger: logger}
}

// FetchDirectory downloads every object below remotePath into localDir.
func (f *S3Fetcher) FetchDirectory(ctx context.Context, remotePath, localDir string) (int, error) {
	exists, err := f.client.BucketExists(ctx, f.bucket)
	if err != nil {
		return 0, fmt.Errorf("%w: bucket %s: %v", ErrConnection, f.bucket, err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: bucket %s does not exist", ErrConnection, f.bucket)
	}

	prefix := strings.Trim(remotePath, "/")
	if prefix != "" {
		prefix += "/"
	}

	f.logger.Info("Downloading prefix",
		zap.String("bucket", f.bucket),
		zap.String("source", prefix),
		zap.String("destination", localDir),
	)

	count := 0
	objects := f.client.ListObjects(ctx, f.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return count, fmt.Errorf("failed to list %s/%s: %w", f.bucket, prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}

		rel := strings.TrimPrefix(obj.Key, prefix)
		localPath := filepath.Join(localDir, filepath.FromSlash(path.Clean(rel)))

		if err := f.downloadObject(ctx, obj, localPath); err != nil {
			return count, err
		}
		count++
	}

	f.logger.Info("Downloaded prefix", zap.String("source", prefix), zap.Int("files", count))
	return count, nil
}

func (f *S3Fetcher) downloadObject(ctx context.Context, obj minio.ObjectInfo, localPath string) error {
	reader, err := f.client.GetObject(ctx, f.bucket, obj.Key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get object %s: %w", obj.Key, err)
	}
	defer reader.Close()

	if err := writeLocal(localPath, reader, obj.LastModified); err != nil {
		return fmt.Errorf("failed to download %s: %w", obj.Key, err)
	}
	return nil
}
