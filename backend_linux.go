//go:build linux && !mock

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shazow/wifiseek/wifi"
	"github.com/shazow/wifiseek/wifi/iwd"
	"github.com/shazow/wifiseek/wifi/iwlist"
	"github.com/shazow/wifiseek/wifi/mock"
	"github.com/shazow/wifiseek/wifi/networkmanager"
)

// GetScanner returns the named scanner. "auto" tries NetworkManager, then
// iwd, then falls back to iwlist.
func GetScanner(name string, logger *slog.Logger) (wifi.Scanner, error) {
	switch name {
	case backendAuto:
		s, err := networkmanager.New(logger)
		if err == nil {
			return s, nil
		}
		logger.Debug("failed to initialize networkmanager backend, falling back to iwd", "error", err)
		i, err := iwd.New(logger)
		if err == nil {
			return i, nil
		}
		logger.Debug("failed to initialize iwd backend, falling back to iwlist", "error", err)
		return scanner(iwlist.New(logger))
	case backendNetworkManager:
		return scanner(networkmanager.New(logger))
	case backendIwd:
		return scanner(iwd.New(logger))
	case backendIwlist:
		return scanner(iwlist.New(logger))
	case backendMock:
		return mock.New(), nil
	case backendDarwin:
		return nil, fmt.Errorf("backend %q is only available on macOS: %w", name, wifi.ErrNotSupported)
	}
	return nil, unknownBackend(name)
}

// resolveInterface returns iface unchanged, Linux has no reliable default
// to discover.
func resolveInterface(ctx context.Context, iface string, logger *slog.Logger) string {
	return iface
}
