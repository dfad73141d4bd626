package debug

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlerConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger := slog.New(NewHandler(&console, slog.LevelInfo, nil))

	logger.Debug("hidden")
	logger.Info("shown", "interface", "wlan0")

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
	assert.Contains(t, console.String(), "interface=wlan0")
}

func TestNewHandlerWithFile(t *testing.T) {
	var console, file bytes.Buffer
	logger := slog.New(NewHandler(&console, slog.LevelWarn, &file)).With("run_id", "1234")

	logger.Debug("scanning", "attempt", 1)
	logger.Warn("failed to emit results")

	assert.NotContains(t, console.String(), "scanning")
	assert.Contains(t, console.String(), "failed to emit results")
	assert.Contains(t, file.String(), "scanning")
	assert.Contains(t, file.String(), "failed to emit results")
	assert.Equal(t, 2, strings.Count(file.String(), "run_id=1234"))
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wifiseek.log")
	w, err := OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	logger := slog.New(NewHandler(&bytes.Buffer{}, slog.LevelInfo, w))
	logger.Debug("debug line")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
}
