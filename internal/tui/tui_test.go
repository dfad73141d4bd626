package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/wifiseek/internal/log"
	"github.com/shazow/wifiseek/internal/poll"
	"github.com/shazow/wifiseek/wifi"
)

func newTestModel(t *testing.T) (*model, *bool) {
	t.Helper()
	q, err := wifi.NewQuery(wifi.QueryOptions{Criteria: "security", Value: "wpa2"})
	require.NoError(t, err)
	canceled := false
	return NewModel("wlan0", q, func() { canceled = true }), &canceled
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWatchProgress(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(PollEventMsg{State: poll.StateScanning, Attempt: 1})
	assert.Contains(t, m.View(), "Scanning (attempt 1)...")

	m.Update(PollEventMsg{State: poll.StateEvaluating, Attempt: 1, Scanned: 4})
	m.Update(PollEventMsg{State: poll.StateWaiting, Attempt: 1, Scanned: 4, Delay: time.Second})
	assert.Contains(t, m.View(), "No match in 4 networks after 1 scan(s), retrying in 1s")
	assert.Contains(t, m.View(), "wlan0, security = wpa2")
}

func TestWatchResult(t *testing.T) {
	m, _ := newTestModel(t)

	networks := []wifi.Network{
		{"ssid": "Dunder MiffLAN", "address": "aa:bb:cc:dd:ee:ff", "signal": -45, "strength": 100, "security": "wpa2"},
		{"ssid": "Pretty Fly", "signal": -70, "security": "wpa2"},
	}
	_, cmd := m.Update(ResultMsg{State: poll.StateMatched, Networks: networks, Scans: 2})
	assert.False(t, isQuit(cmd))

	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Dunder MiffLAN", rows[0][0])
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", rows[0][1])
	assert.Equal(t, "", rows[1][1])
	assert.Equal(t, "-70", rows[1][3])

	view := m.View()
	assert.Contains(t, view, "Found 2 network(s) after 2 scan(s).")
	assert.Contains(t, view, "Best match: Dunder MiffLAN (100%)")
	assert.Contains(t, view, "q: quit")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, isQuit(cmd))
}

func TestWatchQuitCancelsFirst(t *testing.T) {
	m, canceled := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, *canceled)
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Stopping...")

	_, cmd = m.Update(ResultMsg{State: poll.StateCanceled, Err: context.Canceled})
	assert.True(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Interrupted.")
}

func TestWatchScanError(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(ResultMsg{State: poll.StateScanError, Err: errors.New("device busy"), Scans: 1})
	assert.Contains(t, m.View(), "Scan failed: device busy")
}

func TestWatchLogs(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < visibleLogs+2; i++ {
		r := slog.NewRecord(time.Now(), slog.LevelInfo, "line "+string(rune('a'+i)), 0)
		m.Update(log.LogMsg(r))
	}
	assert.Len(t, m.logs, visibleLogs)
	view := m.View()
	assert.NotContains(t, view, "line a")
	assert.True(t, strings.Contains(view, "line g"))
}
