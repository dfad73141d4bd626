package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/shazow/wifiseek/internal/poll"
	"github.com/shazow/wifiseek/internal/tui"
	"github.com/shazow/wifiseek/wifi"
)

// Level selects how a status line is styled.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelSuccess
	LevelHighlight
	LevelError
)

// Line is one status message.
type Line struct {
	Level Level
	Text  string
}

// Status prints one styled line per poll transition. Its Observe method
// is meant to be used as poll.Controller.Observer.
type Status struct {
	W     io.Writer
	Query wifi.Query

	mu       sync.Mutex
	renderer *lipgloss.Renderer
}

// NewStatus creates a Status that describes results in terms of q.
func NewStatus(w io.Writer, q wifi.Query) *Status {
	return &Status{W: w, Query: q, renderer: lipgloss.NewRenderer(w)}
}

// Observe prints the lines for ev.
func (s *Status) Observe(ev poll.Event) {
	for _, line := range Lines(ev, s.Query) {
		s.print(line)
	}
}

// Saved announces that the results were written to path.
func (s *Status) Saved(path string) {
	s.print(Line{Level: LevelSuccess, Text: "Nearby networks saved at: " + path})
}

func (s *Status) print(line Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderer == nil {
		s.renderer = lipgloss.NewRenderer(s.W)
	}
	fmt.Fprintln(s.W, s.style(line.Level).Render(line.Text))
}

func (s *Status) style(level Level) lipgloss.Style {
	theme := tui.CurrentTheme
	style := s.renderer.NewStyle()
	switch level {
	case LevelWarning:
		return style.Foreground(theme.Warning)
	case LevelSuccess:
		return style.Foreground(theme.Success)
	case LevelHighlight:
		return style.Background(theme.Success).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	case LevelError:
		return style.Background(theme.Error).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	}
	return style.Foreground(theme.Normal)
}

// Lines returns the status messages for ev under query q.
func Lines(ev poll.Event, q wifi.Query) []Line {
	switch ev.State {
	case poll.StateScanning:
		if ev.Attempt > 1 {
			return []Line{
				{LevelWarning, fmt.Sprintf("Retrying. (%d)", ev.Attempt-1)},
				{LevelWarning, "Scanning..."},
			}
		}
		return []Line{{LevelWarning, "Scanning..."}}
	case poll.StateEvaluating:
		return []Line{{LevelSuccess, "Finished scanning nearby networks."}}
	case poll.StateWaiting, poll.StateNoMatch:
		return []Line{{LevelWarning, noMatchText(q)}}
	case poll.StateExhausted:
		return []Line{
			{LevelWarning, noMatchText(q)},
			{LevelWarning, fmt.Sprintf("Giving up after %d attempts.", ev.Attempt)},
		}
	case poll.StateMatched:
		if q.HasFilter() {
			return []Line{{LevelHighlight, fmt.Sprintf("Found %d networks matching the filter: %s", ev.Matched, q)}}
		}
		return []Line{{LevelHighlight, fmt.Sprintf("Found %d network(s).", ev.Matched)}}
	case poll.StateScanError:
		return []Line{{LevelError, fmt.Sprintf("Scan failed while looking for %s: %v", q, ev.Err)}}
	case poll.StateCanceled:
		if errors.Is(ev.Err, context.DeadlineExceeded) {
			return []Line{{LevelError, "Timed out."}}
		}
		return []Line{{LevelWarning, "Interrupted."}}
	}
	return nil
}

func noMatchText(q wifi.Query) string {
	if q.HasFilter() {
		return "No networks found matching the filter: " + q.String()
	}
	return "No networks found."
}
