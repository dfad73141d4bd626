//go:build mock

package main

import (
	"context"
	"log/slog"

	"github.com/shazow/wifiseek/wifi"
	"github.com/shazow/wifiseek/wifi/mock"
)

// GetScanner always returns the mock scanner in mock builds.
func GetScanner(name string, logger *slog.Logger) (wifi.Scanner, error) {
	if !knownBackend(name) {
		return nil, unknownBackend(name)
	}
	return mock.New(), nil
}

func resolveInterface(ctx context.Context, iface string, logger *slog.Logger) string {
	return iface
}
