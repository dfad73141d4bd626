package sink

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shazow/wifiseek/internal/tui"
	"github.com/shazow/wifiseek/wifi"
)

// Console prints the matched networks as JSON, colored when W is a
// terminal.
type Console struct {
	W io.Writer
}

// Emit implements poll.Sink.
func (c *Console) Emit(ctx context.Context, q wifi.Query, networks []wifi.Network) error {
	data, err := marshal(networks)
	if err != nil {
		return fmt.Errorf("failed to encode networks: %w", err)
	}
	style := lipgloss.NewRenderer(c.W).NewStyle().Foreground(tui.CurrentTheme.Result)

	// Styling line by line keeps lipgloss from padding lines to equal width.
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}
	_, err = io.WriteString(c.W, b.String())
	return err
}
