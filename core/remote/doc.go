// Package remote stages report files from the remote drop location.
//
// A Fetcher copies every file below a remote directory into a local staging directory
// and keeps the remote modification times. Two transports are provided:
//   - SFTP (default): pkg/sftp over an x/crypto/ssh connection, password or key auth,
//     optional known_hosts verification.
//   - S3: any S3-compatible bucket through core/storage, a directory being a key prefix.
//
// Failing to reach the drop location is reported as ErrConnection. Callers treat any
// fetch error as fatal for the whole run: no report can be synced without staged files.
// Delivering zero files is not an error.
package remote
