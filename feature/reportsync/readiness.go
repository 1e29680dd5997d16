package reportsync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"report-sync/core/retry"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// ReadinessChecker polls a staging directory until an exported file appears.
type ReadinessChecker struct {
	policy retry.Policy
	sleep  retry.Sleeper
	logger *zap.Logger
}

// NewReadinessChecker creates a checker; a nil sleep means retry.Sleep.
func NewReadinessChecker(policy retry.Policy, sleep retry.Sleeper, logger *zap.Logger) *ReadinessChecker {
	if sleep == nil {
		sleep = retry.Sleep
	}
	return &ReadinessChecker{policy: policy, sleep: sleep, logger: logger}
}

// WaitFor polls dir for a file matching pattern and returns the newest match.
// Exhausting the policy yields ErrFileNotReady.
func (c *ReadinessChecker) WaitFor(ctx context.Context, pattern, dir string) (string, error) {
	var found string
	err := retry.Do(ctx, c.policy, c.sleep, func(attempt int) error {
		path, err := FindStaged(dir, pattern)
		if errors.Is(err, ErrFileNotReady) {
			c.logger.Debug("Export not ready yet",
				zap.String("pattern", pattern), zap.String("dir", dir), zap.Int("attempt", attempt))
			return err
		}
		if err != nil {
			return retry.Permanent(err)
		}
		found = path
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed waiting for %s in %s: %w", pattern, dir, err)
	}
	return found, nil
}

// FindStaged returns the most recently modified regular file in dir matching pattern.
func FindStaged(dir, pattern string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var newest string
	var newestInfo fs.FileInfo
	for _, match := range matches {
		info, err := os.Stat(filepath.Join(dir, match))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if newestInfo == nil || info.ModTime().After(newestInfo.ModTime()) {
			newest, newestInfo = filepath.Join(dir, match), info
		}
	}

	if newestInfo == nil {
		return "", fmt.Errorf("%w: nothing matches %s in %s", ErrFileNotReady, pattern, dir)
	}
	return newest, nil
}
