// Package log keeps the most recent log records around so the watch UI
// can display them.
package log

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxRecords is the number of records a TUIHandler keeps.
const MaxRecords = 20

// LogMsg is a tea.Msg that represents a log message.
type LogMsg slog.Record

type recorder struct {
	mu   sync.Mutex
	send func(tea.Msg)
	logs []slog.Record
}

// TUIHandler is a slog.Handler that remembers recent records and sends
// them to a tea.Program.
type TUIHandler struct {
	slog.Handler
	rec *recorder
}

// NewTUIHandler creates a new TUIHandler wrapping handler.
func NewTUIHandler(handler slog.Handler) *TUIHandler {
	return &TUIHandler{Handler: handler, rec: &recorder{}}
}

// Handle stores r, forwards it to the program if one is attached, then
// passes it on to the wrapped handler.
func (h *TUIHandler) Handle(ctx context.Context, r slog.Record) error {
	h.rec.mu.Lock()
	h.rec.logs = append(h.rec.logs, r.Clone())
	if len(h.rec.logs) > MaxRecords {
		h.rec.logs = h.rec.logs[len(h.rec.logs)-MaxRecords:]
	}
	send := h.rec.send
	h.rec.mu.Unlock()

	// Sending blocks until the program reads the message, so it must not
	// happen under the lock.
	if send != nil {
		send(LogMsg(r.Clone()))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *TUIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TUIHandler{Handler: h.Handler.WithAttrs(attrs), rec: h.rec}
}

// WithGroup implements slog.Handler.
func (h *TUIHandler) WithGroup(name string) slog.Handler {
	return &TUIHandler{Handler: h.Handler.WithGroup(name), rec: h.rec}
}

// Logs returns a copy of the stored records, oldest first.
func (h *TUIHandler) Logs() []slog.Record {
	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	logs := make([]slog.Record, len(h.rec.logs))
	copy(logs, h.rec.logs)
	return logs
}

// SetOutput sets the function records are sent through, usually
// tea.Program.Send. A nil send detaches the program.
func (h *TUIHandler) SetOutput(send func(tea.Msg)) {
	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	h.rec.send = send
}
