//go:build linux

package networkmanager

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/shazow/wifiseek/wifi"
)

const backendName = "networkmanager"

// Key management bits of the WpaFlags/RsnFlags access point properties.
const (
	apSecKeyMgmt8021X = 0x200
	apSecKeyMgmtSAE   = 0x400
)

var (
	scanTimeout      = 15 * time.Second
	scanPollInterval = 250 * time.Millisecond
)

// Scanner implements wifi.Scanner using D-Bus to communicate with NetworkManager.
type Scanner struct {
	NM      gonetworkmanager.NetworkManager
	Devices map[string]gonetworkmanager.DeviceWireless

	logger *slog.Logger
}

// New creates a new networkmanager.Scanner.
func New(logger *slog.Logger) (*Scanner, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create network manager client: %w", wifi.ErrNotAvailable)
	}
	return &Scanner{
		NM:      nm,
		Devices: make(map[string]gonetworkmanager.DeviceWireless),
		logger:  logger,
	}, nil
}

// Scan requests a fresh scan on iface, waits for it to finish and returns
// the access points NetworkManager knows about.
func (s *Scanner) Scan(ctx context.Context, iface string) ([]wifi.Network, error) {
	enabled, err := s.NM.GetPropertyWirelessEnabled()
	if err != nil {
		return nil, s.scanError(iface, fmt.Errorf("%w: %w", wifi.ErrOperationFailed, err))
	}
	if !enabled {
		return nil, s.scanError(iface, wifi.ErrWirelessDisabled)
	}

	dev, err := s.getWirelessDevice(iface)
	if err != nil {
		return nil, s.scanError(iface, err)
	}

	s.requestScan(ctx, dev, iface)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accessPoints, err := dev.GetAccessPoints()
	if err != nil {
		return nil, s.scanError(iface, fmt.Errorf("failed to list access points: %w: %w", wifi.ErrOperationFailed, err))
	}

	networks := make([]wifi.Network, 0, len(accessPoints))
	for _, ap := range accessPoints {
		n, err := accessPointRecord(ap)
		if err != nil {
			// Access points can vanish between listing and reading them.
			s.log().Debug("skipping access point", "interface", iface, "error", err)
			continue
		}
		networks = append(networks, n)
	}
	return networks, nil
}

// getWirelessDevice returns the wireless device named iface, or the first
// wireless device if iface is empty.
func (s *Scanner) getWirelessDevice(iface string) (gonetworkmanager.DeviceWireless, error) {
	if dev, ok := s.Devices[iface]; ok {
		return dev, nil
	}

	devices, err := s.NM.GetDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w: %w", wifi.ErrOperationFailed, err)
	}
	for _, device := range devices {
		dev, ok := device.(gonetworkmanager.DeviceWireless)
		if !ok {
			continue
		}
		name, err := dev.GetPropertyInterface()
		if err != nil {
			continue
		}
		if iface == "" || name == iface {
			if s.Devices == nil {
				s.Devices = make(map[string]gonetworkmanager.DeviceWireless)
			}
			s.Devices[iface] = dev
			return dev, nil
		}
	}
	return nil, fmt.Errorf("no wireless device %q: %w", iface, wifi.ErrNotFound)
}

// requestScan asks NetworkManager for a new scan and waits until the
// device's LastScan timestamp moves. NetworkManager rejects requests that
// come too soon after the previous scan, in which case the cached results
// are used.
func (s *Scanner) requestScan(ctx context.Context, dev gonetworkmanager.DeviceWireless, iface string) {
	before, err := dev.GetPropertyLastScan()
	if err != nil {
		s.log().Debug("failed to read last scan time", "interface", iface, "error", err)
	}
	if err := dev.RequestScan(); err != nil {
		s.log().Debug("scan request rejected, using cached results", "interface", iface, "error", err)
		return
	}

	ticker := time.NewTicker(scanPollInterval)
	defer ticker.Stop()
	timeout := time.NewTimer(scanTimeout)
	defer timeout.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timeout.C:
			s.log().Warn("timed out waiting for scan results", "interface", iface, "timeout", scanTimeout)
			return
		case <-ticker.C:
			last, err := dev.GetPropertyLastScan()
			if err != nil || last != before {
				return
			}
		}
	}
}

func accessPointRecord(ap gonetworkmanager.AccessPoint) (wifi.Network, error) {
	ssid, err := ap.GetPropertySSID()
	if err != nil {
		return nil, err
	}
	strength, err := ap.GetPropertyStrength()
	if err != nil {
		return nil, err
	}

	n := wifi.Network{
		wifi.FieldStrength: strength,
		wifi.FieldQuality:  strength,
		wifi.FieldSignal:   wifi.StrengthToSignal(strength),
		wifi.FieldMode:     "master",
	}
	if ssid != "" {
		n[wifi.FieldSSID] = ssid
	}
	if hw, err := ap.GetPropertyHWAddress(); err == nil && hw != "" {
		n[wifi.FieldAddress] = strings.ToLower(hw)
	}
	if mhz, err := ap.GetPropertyFrequency(); err == nil && mhz > 0 {
		n[wifi.FieldFrequency] = float64(mhz) / 1000
		if ch := wifi.FrequencyChannel(int(mhz)); ch > 0 {
			n[wifi.FieldChannel] = ch
		}
	}

	flags, _ := ap.GetPropertyFlags()
	wpaFlags, _ := ap.GetPropertyWPAFlags()
	rsnFlags, _ := ap.GetPropertyRSNFlags()
	n[wifi.FieldSecurity] = securityType(uint32(flags), uint32(wpaFlags), uint32(rsnFlags))
	return n, nil
}

func securityType(flags, wpaFlags, rsnFlags uint32) string {
	switch {
	case (rsnFlags|wpaFlags)&apSecKeyMgmt8021X != 0:
		return wifi.Security8021X
	case rsnFlags&apSecKeyMgmtSAE != 0:
		return wifi.SecurityWPA3
	case rsnFlags > 0:
		return wifi.SecurityWPA2
	case wpaFlags > 0:
		return wifi.SecurityWPA
	case flags&uint32(gonetworkmanager.Nm80211APFlagsPrivacy) != 0:
		return wifi.SecurityWEP
	}
	return wifi.SecurityOpen
}

func (s *Scanner) scanError(iface string, err error) *wifi.ScanError {
	return &wifi.ScanError{Backend: backendName, Interface: iface, Err: err}
}

func (s *Scanner) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
