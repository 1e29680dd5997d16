package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"Debug console", Config{Level: "debug", Format: "console"}},
		{"Info json", Config{Level: "info", Format: "json"}},
		{"Warn json", Config{Level: "warn", Format: "json"}},
		{"Empty level", Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNewCapture(t *testing.T) {
	l, capture, err := NewCapture(&Config{Level: "info", Format: "json"})
	require.NoError(t, err)

	l.Info("Inserted records", zap.String("table", "Clever_Participation"), zap.Int("rows", 12))
	l.Debug("hidden below info")

	out := capture.String()
	assert.Contains(t, out, "Inserted records")
	assert.Contains(t, out, "Clever_Participation")
	assert.NotContains(t, out, "hidden below info")

	capture.Reset()
	assert.Empty(t, capture.String())
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := New(&Config{Level: "info", Format: "json", File: path})
	require.NoError(t, err)
	l.Info("written to file")
	_ = l.Sync()

	assert.FileExists(t, path)
}
