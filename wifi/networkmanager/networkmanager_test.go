//go:build linux

package networkmanager

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/shazow/wifiseek/wifi"
)

type mockNM struct {
	gonetworkmanager.NetworkManager
	getDevicesFunc                 func() ([]gonetworkmanager.Device, error)
	getPropertyWirelessEnabledFunc func() (bool, error)
}

func (m *mockNM) GetDevices() ([]gonetworkmanager.Device, error) {
	if m.getDevicesFunc != nil {
		return m.getDevicesFunc()
	}
	return nil, nil
}

func (m *mockNM) GetPropertyWirelessEnabled() (bool, error) {
	if m.getPropertyWirelessEnabledFunc != nil {
		return m.getPropertyWirelessEnabledFunc()
	}
	return true, nil
}

type mockDeviceWireless struct {
	gonetworkmanager.DeviceWireless
	iface        string
	lastScan     int64
	scanErr      error
	scanRequests int
	accessPoints []gonetworkmanager.AccessPoint
}

func (m *mockDeviceWireless) GetPropertyInterface() (string, error) {
	return m.iface, nil
}

func (m *mockDeviceWireless) GetPropertyLastScan() (int64, error) {
	return m.lastScan, nil
}

func (m *mockDeviceWireless) RequestScan() error {
	m.scanRequests++
	if m.scanErr != nil {
		return m.scanErr
	}
	m.lastScan++
	return nil
}

func (m *mockDeviceWireless) GetAccessPoints() ([]gonetworkmanager.AccessPoint, error) {
	return m.accessPoints, nil
}

type mockAccessPoint struct {
	gonetworkmanager.AccessPoint
	ssid     string
	hw       string
	strength uint8
	freq     uint32
	flags    uint32
	wpaFlags uint32
	rsnFlags uint32
	err      error
}

func (m *mockAccessPoint) GetPropertySSID() (string, error)      { return m.ssid, m.err }
func (m *mockAccessPoint) GetPropertyStrength() (uint8, error)   { return m.strength, nil }
func (m *mockAccessPoint) GetPropertyHWAddress() (string, error) { return m.hw, nil }
func (m *mockAccessPoint) GetPropertyFrequency() (uint32, error) { return m.freq, nil }
func (m *mockAccessPoint) GetPropertyFlags() (uint32, error)     { return m.flags, nil }
func (m *mockAccessPoint) GetPropertyWPAFlags() (uint32, error)  { return m.wpaFlags, nil }
func (m *mockAccessPoint) GetPropertyRSNFlags() (uint32, error)  { return m.rsnFlags, nil }

func init() {
	scanPollInterval = time.Millisecond
}

func TestGetWirelessDevice_Caching(t *testing.T) {
	callCount := 0
	mockDev := &mockDeviceWireless{iface: "wlan0"}

	nm := &mockNM{
		getDevicesFunc: func() ([]gonetworkmanager.Device, error) {
			callCount++
			return []gonetworkmanager.Device{mockDev}, nil
		},
	}

	s := &Scanner{NM: nm}

	// First call
	dev, err := s.getWirelessDevice("wlan0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dev != mockDev {
		t.Errorf("expected device %v, got %v", mockDev, dev)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}

	// Second call (should be cached)
	dev2, err := s.getWirelessDevice("wlan0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dev2 != mockDev {
		t.Errorf("expected device %v, got %v", mockDev, dev2)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestGetWirelessDevice_ByName(t *testing.T) {
	wlan0 := &mockDeviceWireless{iface: "wlan0"}
	wlan1 := &mockDeviceWireless{iface: "wlan1"}
	nm := &mockNM{
		getDevicesFunc: func() ([]gonetworkmanager.Device, error) {
			return []gonetworkmanager.Device{wlan0, wlan1}, nil
		},
	}
	s := &Scanner{NM: nm}

	dev, err := s.getWirelessDevice("wlan1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dev != wlan1 {
		t.Errorf("expected wlan1, got %v", dev)
	}

	_, err = s.getWirelessDevice("wlan9")
	if !errors.Is(err, wifi.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestScan(t *testing.T) {
	dev := &mockDeviceWireless{
		iface: "wlan0",
		accessPoints: []gonetworkmanager.AccessPoint{
			&mockAccessPoint{ssid: "Dunder MiffLAN", hw: "AA:BB:CC:DD:EE:FF", strength: 80, freq: 2437, rsnFlags: 0x188},
			&mockAccessPoint{ssid: "Unencrypted_Honeypot", hw: "00:11:22:33:44:55", strength: 40, freq: 5180},
			&mockAccessPoint{err: errors.New("object vanished")},
		},
	}
	nm := &mockNM{
		getDevicesFunc: func() ([]gonetworkmanager.Device, error) {
			return []gonetworkmanager.Device{dev}, nil
		},
	}
	s := &Scanner{NM: nm}

	networks, err := s.Scan(context.Background(), "wlan0")
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	if dev.scanRequests != 1 {
		t.Errorf("expected 1 scan request, got %d", dev.scanRequests)
	}

	expected := []wifi.Network{
		{
			"ssid":      "Dunder MiffLAN",
			"address":   "aa:bb:cc:dd:ee:ff",
			"strength":  uint8(80),
			"quality":   uint8(80),
			"signal":    -60,
			"frequency": 2.437,
			"channel":   6,
			"security":  "wpa2",
			"mode":      "master",
		},
		{
			"ssid":      "Unencrypted_Honeypot",
			"address":   "00:11:22:33:44:55",
			"strength":  uint8(40),
			"quality":   uint8(40),
			"signal":    -80,
			"frequency": 5.18,
			"channel":   36,
			"security":  "open",
			"mode":      "master",
		},
	}
	if !reflect.DeepEqual(networks, expected) {
		t.Errorf("Scan() got = %v, want %v", networks, expected)
	}
}

func TestScanRejectedRequestUsesCache(t *testing.T) {
	dev := &mockDeviceWireless{
		iface:        "wlan0",
		scanErr:      errors.New("Scanning not allowed immediately following previous scan"),
		accessPoints: []gonetworkmanager.AccessPoint{&mockAccessPoint{ssid: "cached", strength: 50}},
	}
	nm := &mockNM{
		getDevicesFunc: func() ([]gonetworkmanager.Device, error) {
			return []gonetworkmanager.Device{dev}, nil
		},
	}
	s := &Scanner{NM: nm}

	networks, err := s.Scan(context.Background(), "wlan0")
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	if len(networks) != 1 {
		t.Errorf("expected cached network, got %v", networks)
	}
}

func TestScanWirelessDisabled(t *testing.T) {
	nm := &mockNM{
		getPropertyWirelessEnabledFunc: func() (bool, error) {
			return false, nil
		},
	}
	s := &Scanner{NM: nm}

	_, err := s.Scan(context.Background(), "wlan0")
	var scanErr *wifi.ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("expected *wifi.ScanError, got %v", err)
	}
	if !errors.Is(err, wifi.ErrWirelessDisabled) {
		t.Errorf("expected ErrWirelessDisabled, got %v", err)
	}
}

func TestSecurityType(t *testing.T) {
	privacy := uint32(gonetworkmanager.Nm80211APFlagsPrivacy)
	tests := []struct {
		flags, wpa, rsn uint32
		want            string
	}{
		{0, 0, 0, "open"},
		{privacy, 0, 0, "wep"},
		{privacy, 0x100, 0, "wpa"},
		{privacy, 0, 0x100, "wpa2"},
		{privacy, 0, 0x400, "wpa3"},
		{privacy, 0, 0x200, "8021x"},
	}
	for _, tt := range tests {
		if got := securityType(tt.flags, tt.wpa, tt.rsn); got != tt.want {
			t.Errorf("securityType(%#x, %#x, %#x) = %q, want %q", tt.flags, tt.wpa, tt.rsn, got, tt.want)
		}
	}
}
