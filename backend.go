package main

import (
	"fmt"
	"slices"

	"github.com/shazow/wifiseek/wifi"
)

// Scanner backend names accepted by -backend.
const (
	backendAuto           = "auto"
	backendIwlist         = "iwlist"
	backendNetworkManager = "networkmanager"
	backendIwd            = "iwd"
	backendDarwin         = "darwin"
	backendMock           = "mock"
)

var backends = []string{backendAuto, backendIwlist, backendNetworkManager, backendIwd, backendDarwin, backendMock}

func knownBackend(name string) bool {
	return slices.Contains(backends, name)
}

func unknownBackend(name string) error {
	return fmt.Errorf("unknown backend %q, expected one of %v", name, backends)
}

// scanner converts a constructor's concrete result into a wifi.Scanner
// without leaking a typed nil on error.
func scanner[S wifi.Scanner](s S, err error) (wifi.Scanner, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
