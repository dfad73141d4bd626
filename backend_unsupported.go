//go:build !linux && !darwin && !mock

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shazow/wifiseek/wifi"
	"github.com/shazow/wifiseek/wifi/mock"
)

// GetScanner returns an error for unsupported operating systems, except
// for the mock backend.
func GetScanner(name string, logger *slog.Logger) (wifi.Scanner, error) {
	if name == backendMock {
		return mock.New(), nil
	}
	if !knownBackend(name) {
		return nil, unknownBackend(name)
	}
	return nil, fmt.Errorf("unsupported operating system: %w", wifi.ErrNotSupported)
}

func resolveInterface(ctx context.Context, iface string, logger *slog.Logger) string {
	return iface
}
