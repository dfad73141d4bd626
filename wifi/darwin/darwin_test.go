package darwin

import (
	"reflect"
	"testing"

	"github.com/shazow/wifiseek/wifi"
)

func TestFindWifiDevice(t *testing.T) {
	mockedOutput := `Hardware Port: Wi-Fi
Device: en0
Ethernet Address: a1:b2:c3:d4:e5:f6

Hardware Port: Bluetooth PAN
Device: en8
Ethernet Address: a1:b2:c3:d4:e5:f7

Hardware Port: Thunderbolt Bridge
Device: bridge0
Ethernet Address: a1:b2:c3:d4:e5:f8`

	device, err := findWifiDevice(mockedOutput)
	if err != nil {
		t.Fatalf("findWifiDevice returned an error: %v", err)
	}
	if device != "en0" {
		t.Fatalf(`findWifiDevice returned "%s", want "en0"`, device)
	}

	_, err = findWifiDevice("Hardware Port: Ethernet\nDevice: en1\n")
	if err == nil {
		t.Fatal("findWifiDevice should fail without a Wi-Fi port")
	}
}

const systemProfilerOutput = `Wi-Fi:

      Software Versions:
          CoreWLAN: 16.0 (1657)
      Interfaces:
        en0:
          Card Type: Wi-Fi
          Status: Connected
          Current Network Information:
            MyHomeNetwork:
              PHY Mode: 802.11ac
              Channel: 36 (5GHz, 80MHz)
              Network Type: Infrastructure
              Security: WPA2 Personal
              Signal / Noise: -55 dBm / -95 dBm
              Transmit Rate: 866
          Other Local Wi-Fi Networks:
            NeighborWiFi:
              PHY Mode: 802.11n
              Channel: 6 (2GHz, 20MHz)
              Network Type: Infrastructure
              Security: WPA2 Personal
              Signal / Noise: -75 dBm / -90 dBm
            OpenCafe:
              PHY Mode: 802.11g
              Channel: 11 (2GHz, 20MHz)
              Network Type: Infrastructure
              Security: Open
            Office:
              Channel: 149 (5GHz, 80MHz)
              Security: WPA2 Enterprise
        awdl0:
          MAC Address: 00:11:22:33:44:55`

func TestParseSystemProfilerOutput(t *testing.T) {
	networks, found := parseSystemProfilerOutput(systemProfilerOutput, "en0")
	if !found {
		t.Fatal("en0 not found")
	}

	expected := []wifi.Network{
		{
			"ssid":      "MyHomeNetwork",
			"connected": true,
			"phy_mode":  "802.11ac",
			"channel":   36,
			"frequency": 5.18,
			"band":      "5GHz",
			"mode":      "master",
			"security":  "wpa2",
			"signal":    -55,
			"noise":     -95,
			"strength":  uint8(90),
		},
		{
			"ssid":      "NeighborWiFi",
			"connected": false,
			"phy_mode":  "802.11n",
			"channel":   6,
			"frequency": 2.437,
			"band":      "2GHz",
			"mode":      "master",
			"security":  "wpa2",
			"signal":    -75,
			"noise":     -90,
			"strength":  uint8(50),
		},
		{
			"ssid":      "OpenCafe",
			"connected": false,
			"phy_mode":  "802.11g",
			"channel":   11,
			"frequency": 2.462,
			"band":      "2GHz",
			"mode":      "master",
			"security":  "open",
		},
		{
			"ssid":      "Office",
			"connected": false,
			"channel":   149,
			"frequency": 5.745,
			"band":      "5GHz",
			"security":  "8021x",
		},
	}

	if len(networks) != len(expected) {
		t.Fatalf("expected %d networks, got %d: %v", len(expected), len(networks), networks)
	}
	for i := range expected {
		if !reflect.DeepEqual(networks[i], expected[i]) {
			t.Errorf("network %d:\n got  %v\n want %v", i, networks[i], expected[i])
		}
	}
}

func TestParseSystemProfilerOutputOtherInterface(t *testing.T) {
	networks, found := parseSystemProfilerOutput(systemProfilerOutput, "awdl0")
	if !found {
		t.Fatal("awdl0 not found")
	}
	if len(networks) != 0 {
		t.Errorf("expected no networks on awdl0, got %v", networks)
	}

	_, found = parseSystemProfilerOutput(systemProfilerOutput, "wlan0")
	if found {
		t.Error("wlan0 should not be found")
	}
}

func TestRssiToStrength(t *testing.T) {
	tests := []struct {
		rssi     int
		expected uint8
	}{
		{-50, 100}, // Strong signal
		{-70, 60},  // Medium signal
		{-90, 20},  // Weak signal
		{-100, 0},  // Minimum
		{-110, 0},  // Below minimum
		{0, 0},     // Invalid
		{10, 0},    // Invalid positive
	}

	for _, tt := range tests {
		result := rssiToStrength(tt.rssi)
		if result != tt.expected {
			t.Errorf("rssiToStrength(%d) = %d, want %d", tt.rssi, result, tt.expected)
		}
	}
}
