package log

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUIHandlerKeepsRecent(t *testing.T) {
	var buf bytes.Buffer
	h := NewTUIHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(h)

	for i := 0; i < MaxRecords+5; i++ {
		logger.Info(fmt.Sprintf("message %d", i))
	}

	logs := h.Logs()
	require.Len(t, logs, MaxRecords)
	assert.Equal(t, "message 5", logs[0].Message)
	assert.Equal(t, fmt.Sprintf("message %d", MaxRecords+4), logs[len(logs)-1].Message)
	assert.Contains(t, buf.String(), "message 0")
}

func TestTUIHandlerForwards(t *testing.T) {
	h := NewTUIHandler(slog.NewTextHandler(&bytes.Buffer{}, nil))
	var got []tea.Msg
	h.SetOutput(func(msg tea.Msg) { got = append(got, msg) })

	logger := slog.New(h).With("run_id", "abc")
	logger.Warn("scan failed", "interface", "wlan0")

	require.Len(t, got, 1)
	msg, ok := got[0].(LogMsg)
	require.True(t, ok)
	assert.Equal(t, "scan failed", msg.Message)
	assert.Equal(t, slog.LevelWarn, msg.Level)

	// Records logged through derived loggers share the same buffer.
	assert.Len(t, h.Logs(), 1)

	h.SetOutput(nil)
	logger.Info("detached")
	assert.Len(t, got, 1)
	assert.Len(t, h.Logs(), 2)
}

func TestTUIHandlerRespectsLevel(t *testing.T) {
	h := NewTUIHandler(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger := slog.New(h)
	logger.Debug("hidden")
	logger.DebugContext(context.Background(), "also hidden")
	assert.Empty(t, h.Logs())
}
