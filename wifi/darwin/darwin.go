//go:build darwin

package darwin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/shazow/wifiseek/wifi"
)

// runWithOutput wraps exec.Cmd to capture stderr and wrap errors.
func runWithOutput(c *exec.Cmd) ([]byte, string, error) {
	var stderr strings.Builder
	c.Stderr = &stderr
	out, err := c.Output()
	if err != nil {
		return out, stderr.String(), fmt.Errorf("failed to run command: %s: %w", c.String(), err)
	}
	return out, stderr.String(), nil
}

// Scanner implements wifi.Scanner for macOS using system_profiler, which
// still reports nearby networks now that the airport utility is gone.
type Scanner struct {
	logger *slog.Logger
}

// New creates a new darwin.Scanner.
func New(logger *slog.Logger) (*Scanner, error) {
	if _, err := exec.LookPath("system_profiler"); err != nil {
		return nil, fmt.Errorf("system_profiler not found: %w", wifi.ErrNotAvailable)
	}
	return &Scanner{logger: logger}, nil
}

// DefaultInterface returns the device name of the Wi-Fi hardware port.
func DefaultInterface(ctx context.Context) (string, error) {
	out, _, err := runWithOutput(exec.CommandContext(ctx, "networksetup", "-listallhardwareports"))
	if err != nil {
		return "", fmt.Errorf("failed to list hardware ports: %w: %w", wifi.ErrOperationFailed, err)
	}
	return findWifiDevice(string(out))
}

// Scan implements wifi.Scanner.
func (s *Scanner) Scan(ctx context.Context, iface string) ([]wifi.Network, error) {
	out, stderr, err := runWithOutput(exec.CommandContext(ctx, "system_profiler", "SPAirPortDataType"))
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			err = fmt.Errorf("%w: %w", wifi.ErrNotAvailable, err)
		}
		return nil, &wifi.ScanError{Backend: backendName, Interface: iface, Output: stderr, Err: err}
	}

	networks, found := parseSystemProfilerOutput(string(out), iface)
	if !found {
		return nil, &wifi.ScanError{Backend: backendName, Interface: iface, Err: wifi.ErrNotFound}
	}

	s.logger.Debug("system_profiler scan finished", "interface", iface, "networks", len(networks))
	return networks, nil
}
