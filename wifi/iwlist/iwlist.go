//go:build linux

package iwlist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/shazow/wifiseek/wifi"
)

// Scanner implements wifi.Scanner by running `iwlist <iface> scan`.
// Without root, iwlist only reports cached results.
type Scanner struct {
	Path   string
	logger *slog.Logger
}

// New looks up the iwlist binary.
func New(logger *slog.Logger) (*Scanner, error) {
	path, err := exec.LookPath("iwlist")
	if err != nil {
		return nil, fmt.Errorf("iwlist is not installed: %w", wifi.ErrNotAvailable)
	}
	return &Scanner{Path: path, logger: logger}, nil
}

// Scan implements wifi.Scanner.
func (s *Scanner) Scan(ctx context.Context, iface string) ([]wifi.Network, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Path, iface, "scan")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			err = fmt.Errorf("%w: %w", wifi.ErrNotAvailable, err)
		}
		return nil, scanError(iface, stderr.String(), err)
	}

	// iwlist exits 0 for some failures and only complains on stderr.
	networks := parseScanOutput(stdout.String())
	if len(networks) == 0 && classifyOutput(stderr.String()) != nil {
		return nil, scanError(iface, stderr.String(), nil)
	}

	s.logger.Debug("iwlist scan finished", "interface", iface, "cells", len(networks))
	return networks, nil
}
