// Package tui renders the interactive watch view and holds the color theme
// shared with the plain console output.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shazow/wifiseek/internal/log"
	"github.com/shazow/wifiseek/internal/poll"
	"github.com/shazow/wifiseek/wifi"
)

// Number of log lines shown under the table.
const visibleLogs = 5

// PollEventMsg carries a controller transition into the program.
type PollEventMsg poll.Event

// ResultMsg carries the controller's terminal result into the program.
type ResultMsg poll.Result

type column struct {
	field string
	title string
	width int
}

var columns = []column{
	{wifi.FieldSSID, "SSID", 24},
	{wifi.FieldAddress, "Address", 17},
	{wifi.FieldChannel, "Ch", 4},
	{wifi.FieldSignal, "Signal", 7},
	{wifi.FieldQuality, "Quality", 7},
	{wifi.FieldSecurity, "Security", 8},
}

// The watch model follows one Controller.Run from first scan to result.
type model struct {
	spinner spinner.Model
	table   table.Model

	iface  string
	query  wifi.Query
	cancel context.CancelFunc

	state    poll.State
	attempt  int
	scanned  int
	delay    time.Duration
	result   *poll.Result
	logs     []slog.Record
	stopping bool

	width, height int
}

// NewModel creates the watch view for a run on iface. cancel stops the
// controller when the user quits.
func NewModel(iface string, q wifi.Query, cancel context.CancelFunc) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(CurrentTheme.Primary)

	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.title, Width: c.width}
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(CurrentTheme.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(CurrentTheme.Normal).
		Background(CurrentTheme.Primary)
	t.SetStyles(styles)

	return &model{
		spinner: s,
		table:   t,
		iface:   iface,
		query:   q,
		cancel:  cancel,
		state:   poll.StateScanning,
	}
}

// Init is the first command that is run when the program starts
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles all incoming messages and updates the model accordingly
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 12; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.result != nil {
				return m, tea.Quit
			}
			// Wait for the controller to wind down and report.
			m.stopping = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
	case PollEventMsg:
		m.state = msg.State
		m.attempt = msg.Attempt
		if msg.State == poll.StateEvaluating || msg.State == poll.StateWaiting {
			m.scanned = msg.Scanned
		}
		m.delay = msg.Delay
		return m, nil
	case ResultMsg:
		res := poll.Result(msg)
		m.result = &res
		m.state = res.State
		m.table.SetRows(rows(res.Networks))
		if m.stopping || res.State == poll.StateCanceled {
			return m, tea.Quit
		}
		return m, nil
	case log.LogMsg:
		m.logs = append(m.logs, slog.Record(msg))
		if len(m.logs) > visibleLogs {
			m.logs = m.logs[len(m.logs)-visibleLogs:]
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func rows(networks []wifi.Network) []table.Row {
	out := make([]table.Row, len(networks))
	for i, n := range networks {
		row := make(table.Row, len(columns))
		for j, c := range columns {
			row[j], _ = n.String(c.field)
		}
		out[i] = row
	}
	return out
}

// View renders the UI based on the current model state
func (m *model) View() string {
	var s strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary).Render("wifiseek")
	subtle := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle)
	fmt.Fprintf(&s, "%s %s\n\n", title, subtle.Render(fmt.Sprintf("%s, %s", m.iface, m.query)))

	s.WriteString(m.statusLine())
	s.WriteString("\n\n")

	if m.result != nil && len(m.result.Networks) > 0 {
		s.WriteString(m.table.View())
		s.WriteString("\n")
		s.WriteString(m.bestMatch())
		s.WriteString("\n")
	}

	if len(m.logs) > 0 {
		s.WriteString("\n")
		for _, r := range m.logs {
			s.WriteString(subtle.Render(fmt.Sprintf("%s %s %s", r.Time.Format("15:04:05"), r.Level, r.Message)))
			s.WriteString("\n")
		}
	}

	help := "q: quit"
	if m.result == nil {
		help = "q: stop"
	}
	s.WriteString("\n")
	s.WriteString(subtle.Render(help))
	return s.String()
}

func (m *model) statusLine() string {
	primary := lipgloss.NewStyle().Foreground(CurrentTheme.Primary)
	if m.result == nil {
		var msg string
		switch {
		case m.stopping:
			msg = "Stopping..."
		case m.state == poll.StateWaiting:
			msg = fmt.Sprintf("No match in %d networks after %d scan(s), retrying in %s", m.scanned, m.attempt, m.delay)
		default:
			msg = fmt.Sprintf("Scanning (attempt %d)...", max(m.attempt, 1))
		}
		return fmt.Sprintf("%s %s", m.spinner.View(), primary.Render(msg))
	}

	res := m.result
	switch res.State {
	case poll.StateMatched:
		return lipgloss.NewStyle().Foreground(CurrentTheme.Success).
			Render(fmt.Sprintf("Found %d network(s) after %d scan(s).", len(res.Networks), res.Scans))
	case poll.StateNoMatch, poll.StateExhausted:
		return lipgloss.NewStyle().Foreground(CurrentTheme.Warning).
			Render(fmt.Sprintf("No networks found matching the filter: %s", m.query))
	case poll.StateScanError:
		return lipgloss.NewStyle().Foreground(CurrentTheme.Error).
			Render(fmt.Sprintf("Scan failed: %v", res.Err))
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render("Interrupted.")
}

// bestMatch describes the first result, colored by its strength.
func (m *model) bestMatch() string {
	n := m.result.Networks[0]
	ssid, ok := n.String(wifi.FieldSSID)
	if !ok {
		ssid = "(hidden)"
	}
	text := "Best match: " + ssid
	strength, ok := n.Number(wifi.FieldStrength)
	if !ok {
		if dbm, hasSignal := n.Number(wifi.FieldSignal); hasSignal {
			strength, ok = float64(wifi.SignalToStrength(int(dbm))), true
		}
	}
	if !ok {
		return text
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.SignalColor(strength)).
		Render(fmt.Sprintf("%s (%.0f%%)", text, strength))
}
