// Package storage provides an abstraction layer for S3-compatible object storage.
//
// It wraps the MinIO Go client so a bucket can serve as the remote drop location that
// dated report files are delivered to. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the drop bucket.
//   - ListObjects: Lists delivered objects (supports prefix/recursive).
//   - GetObject: Retrieves an object as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "reports")
package storage
