package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Exporter produces a report export in a staging directory asynchronously.
// Callers rendezvous with the export by polling for the file it writes.
type Exporter interface {
	// Trigger starts producing the export at source into dest and returns immediately.
	Trigger(ctx context.Context, source, dest string)
	// Wait blocks until every triggered export has finished.
	Wait()
}

// HTTPExporter downloads exports over HTTP.
// The body is written to a temporary file next to dest and renamed once complete,
// so a reader polling for dest never sees a partial file.
type HTTPExporter struct {
	client *resty.Client
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewHTTPExporter creates an exporter from cfg.
func NewHTTPExporter(cfg Config, logger *zap.Logger) *HTTPExporter {
	client := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetRetryCount(cfg.RetryCount).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			code := r.StatusCode()
			return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
		})
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	return &HTTPExporter{client: client, logger: logger}
}

// Trigger implements Exporter. Failures are logged; the waiting side observes
// them as the file never becoming ready.
func (e *HTTPExporter) Trigger(ctx context.Context, source, dest string) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		start := time.Now()
		if err := e.Download(ctx, source, dest); err != nil {
			e.logger.Error("Export failed", zap.String("source", source), zap.String("dest", dest), zap.Error(err))
			return
		}
		e.logger.Info("Export finished", zap.String("dest", dest), zap.Duration("duration", time.Since(start)))
	}()
}

// Wait implements Exporter.
func (e *HTTPExporter) Wait() {
	e.wg.Wait()
}

// Download fetches source into dest synchronously.
func (e *HTTPExporter) Download(ctx context.Context, source, dest string) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if _, err := os.Stat(tmpPath); err == nil {
			_ = os.Remove(tmpPath)
		}
	}()

	resp, err := e.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(source)
	if err != nil {
		return fmt.Errorf("export request failed: %w", err)
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("export request failed with status %d", resp.StatusCode())
	}

	if _, err := io.Copy(tmp, body); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}
