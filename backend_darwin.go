//go:build darwin && !mock

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shazow/wifiseek/internal/config"
	"github.com/shazow/wifiseek/wifi"
	"github.com/shazow/wifiseek/wifi/darwin"
	"github.com/shazow/wifiseek/wifi/mock"
)

// GetScanner returns the named scanner.
func GetScanner(name string, logger *slog.Logger) (wifi.Scanner, error) {
	switch name {
	case backendAuto, backendDarwin:
		return scanner(darwin.New(logger))
	case backendMock:
		return mock.New(), nil
	case backendNetworkManager, backendIwd, backendIwlist:
		return nil, fmt.Errorf("backend %q is only available on Linux: %w", name, wifi.ErrNotSupported)
	}
	return nil, unknownBackend(name)
}

// resolveInterface replaces the default interface with the actual Wi-Fi
// hardware port, which is not always en0.
func resolveInterface(ctx context.Context, iface string, logger *slog.Logger) string {
	if iface != config.DefaultInterface {
		return iface
	}
	found, err := darwin.DefaultInterface(ctx)
	if err != nil {
		logger.Debug("failed to detect Wi-Fi interface, using default", "interface", iface, "error", err)
		return iface
	}
	return found
}
