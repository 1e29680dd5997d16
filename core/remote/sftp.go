package remote

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/sftp"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SFTPFetcher downloads report directories over SFTP.
type SFTPFetcher struct {
	hostPort string
	cfg      *ssh.ClientConfig
	logger   *zap.Logger
}

// NewSFTPFetcher prepares the SSH client configuration. No connection is made until
// FetchDirectory is called.
func NewSFTPFetcher(cfg Config, logger *zap.Logger) (*SFTPFetcher, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("sftp host is required")
	}

	authMethod, err := selectAuthMethod(cfg)
	if err != nil {
		return nil, err
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey() // nolint: gosec
	if cfg.KnownHostsFile != "" {
		hostKeyCallback, err = knownhosts.New(cfg.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load known hosts %s: %w", cfg.KnownHostsFile, err)
		}
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	port := cfg.Port
	if port == 0 {
		port = 22
	}

	return &SFTPFetcher{
		hostPort: net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		cfg: &ssh.ClientConfig{
			User:            cfg.User,
			Auth:            []ssh.AuthMethod{authMethod},
			HostKeyCallback: hostKeyCallback,
			Timeout:         time.Duration(timeout) * time.Second,
		},
		logger: logger,
	}, nil
}

func selectAuthMethod(cfg Config) (ssh.AuthMethod, error) {
	if cfg.KeyFile == "" {
		return ssh.Password(cfg.Password), nil
	}

	key, err := os.ReadFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %s: %w", cfg.KeyFile, err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key file %s: %w", cfg.KeyFile, err)
	}
	return ssh.PublicKeys(signer), nil
}

// FetchDirectory downloads remotePath recursively into localDir.
func (f *SFTPFetcher) FetchDirectory(ctx context.Context, remotePath, localDir string) (int, error) {
	conn, err := ssh.Dial("tcp", f.hostPort, f.cfg)
	if err != nil {
		return 0, fmt.Errorf("%w: dial %s: %v", ErrConnection, f.hostPort, err)
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return 0, fmt.Errorf("%w: sftp session on %s: %v", ErrConnection, f.hostPort, err)
	}
	defer client.Close()

	return downloadDir(ctx, client, remotePath, localDir, f.logger)
}

// downloadDir walks remoteDir and mirrors every regular file below localDir.
func downloadDir(ctx context.Context, client *sftp.Client, remoteDir, localDir string, logger *zap.Logger) (int, error) {
	logger.Info("Downloading directory",
		zap.String("source", remoteDir),
		zap.String("destination", localDir),
	)

	if _, err := client.Stat(remoteDir); err != nil {
		return 0, fmt.Errorf("failed to stat remote %s: %w", remoteDir, err)
	}

	count := 0
	walker := client.Walk(remoteDir)
	for walker.Step() {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if err := walker.Err(); err != nil {
			return count, fmt.Errorf("error walking remote directory: %w", err)
		}

		remotePath := walker.Path()
		info := walker.Stat()

		relPath, err := filepath.Rel(remoteDir, remotePath)
		if err != nil {
			return count, fmt.Errorf("failed to get relative path: %w", err)
		}
		localPath := filepath.Join(localDir, relPath)

		if info.IsDir() {
			if err := os.MkdirAll(localPath, 0o755); err != nil {
				return count, fmt.Errorf("failed to create local directory %s: %w", localPath, err)
			}
			continue
		}

		if err := downloadFile(client, remotePath, localPath, info.ModTime()); err != nil {
			return count, err
		}
		count++
	}

	logger.Info("Downloaded directory", zap.String("source", remoteDir), zap.Int("files", count))
	return count, nil
}

func downloadFile(client *sftp.Client, remotePath, localPath string, modTime time.Time) error {
	remoteFile, err := client.Open(remotePath)
	if err != nil {
		return fmt.Errorf("failed to open remote file %s: %w", remotePath, err)
	}
	defer remoteFile.Close()

	if err := writeLocal(localPath, remoteFile, modTime); err != nil {
		return fmt.Errorf("failed to download %s: %w", remotePath, err)
	}
	return nil
}

// writeLocal copies r to path and stamps the remote modification time on it.
func writeLocal(path string, r io.Reader, modTime time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	localFile, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(localFile, r); err != nil {
		localFile.Close()
		return err
	}
	if err := localFile.Close(); err != nil {
		return err
	}

	if !modTime.IsZero() {
		return os.Chtimes(path, modTime, modTime)
	}
	return nil
}
