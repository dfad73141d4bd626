package darwin

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shazow/wifiseek/wifi"
)

const backendName = "darwin"

var (
	signalRe  = regexp.MustCompile(`Signal / Noise:\s*(-?\d+)\s*dBm\s*/\s*(-?\d+)\s*dBm`)
	channelRe = regexp.MustCompile(`Channel:\s*(\d+)(?:\s*\(([^,)]+))?`)
)

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// parseSystemProfilerOutput parses the output of `system_profiler
// SPAirPortDataType` and returns the networks listed under iface. The
// second result is false if iface does not appear in the output.
func parseSystemProfilerOutput(output, iface string) ([]wifi.Network, bool) {
	networks := []wifi.Network{}
	found := false

	var ifaceIndent = -1
	inIface := false
	inCurrentNetwork := false
	inOtherNetworks := false
	var current wifi.Network
	networkIndent := -1

	flush := func() {
		if current != nil {
			networks = append(networks, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		indent := indentOf(line)

		// Interface headers look like "        en0:".
		if strings.HasSuffix(trimmed, ":") && !strings.Contains(trimmed, ": ") && ifaceIndent >= 0 && indent == ifaceIndent {
			flush()
			inIface = strings.TrimSuffix(trimmed, ":") == iface
			inCurrentNetwork, inOtherNetworks = false, false
			found = found || inIface
			continue
		}
		if trimmed == "Interfaces:" {
			ifaceIndent = indent + 2
			continue
		}
		if !inIface {
			continue
		}

		// Section headers
		if trimmed == "Current Network Information:" {
			flush()
			inCurrentNetwork, inOtherNetworks = true, false
			networkIndent = -1
			continue
		}
		if trimmed == "Other Local Wi-Fi Networks:" {
			flush()
			inCurrentNetwork, inOtherNetworks = false, true
			networkIndent = -1
			continue
		}
		if !inCurrentNetwork && !inOtherNetworks {
			continue
		}

		// Network names are the first level below the section header.
		if strings.HasSuffix(trimmed, ":") && !strings.Contains(trimmed, ": ") && (networkIndent < 0 || indent == networkIndent) {
			flush()
			networkIndent = indent
			current = wifi.Network{
				wifi.FieldSSID:      strings.TrimSuffix(trimmed, ":"),
				wifi.FieldConnected: inCurrentNetwork,
			}
			continue
		}
		if current == nil {
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "PHY Mode":
			current["phy_mode"] = value
		case "Network Type":
			current[wifi.FieldMode] = networkMode(value)
		case "Security":
			current[wifi.FieldSecurity] = parseSecurityType(value)
		case "Channel":
			if m := channelRe.FindStringSubmatch(trimmed); m != nil {
				if ch, err := strconv.Atoi(m[1]); err == nil {
					current[wifi.FieldChannel] = ch
					if f := wifi.ChannelFrequency(ch); f > 0 {
						current[wifi.FieldFrequency] = f
					}
				}
				if m[2] != "" {
					current["band"] = strings.TrimSpace(m[2])
				}
			}
		case "Signal / Noise":
			if m := signalRe.FindStringSubmatch(trimmed); m != nil {
				signal, _ := strconv.Atoi(m[1])
				noise, _ := strconv.Atoi(m[2])
				current[wifi.FieldSignal] = signal
				current[wifi.FieldNoise] = noise
				current[wifi.FieldStrength] = rssiToStrength(signal)
			}
		}
	}
	flush()

	return networks, found
}

func networkMode(s string) string {
	switch strings.ToLower(s) {
	case "infrastructure":
		return "master"
	case "ibss", "ad-hoc", "adhoc":
		return "adhoc"
	}
	return strings.ToLower(s)
}

func parseSecurityType(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "enterprise"):
		return wifi.Security8021X
	case strings.Contains(s, "wpa3"):
		return wifi.SecurityWPA3
	case strings.Contains(s, "wpa2"):
		return wifi.SecurityWPA2
	case strings.Contains(s, "wpa"):
		return wifi.SecurityWPA
	case strings.Contains(s, "wep"):
		return wifi.SecurityWEP
	}
	return wifi.SecurityOpen
}

func rssiToStrength(rssi int) uint8 {
	return wifi.SignalToStrength(rssi)
}

// findWifiDevice parses the output of `networksetup -listallhardwareports` to find the Wi-Fi device.
func findWifiDevice(output string) (string, error) {
	// The output is a series of stanzas, separated by blank lines.
	// Each stanza describes a hardware port.
	stanzas := strings.Split(output, "\n\n")
	for _, stanza := range stanzas {
		var device string
		isWifiPort := false
		for _, line := range strings.Split(stanza, "\n") {
			if port, ok := strings.CutPrefix(line, "Hardware Port: "); ok {
				isWifiPort = strings.Contains(port, "Wi-Fi") || strings.Contains(port, "AirPort")
			}
			if d, ok := strings.CutPrefix(line, "Device: "); ok {
				device = d
			}
		}
		if isWifiPort && device != "" {
			return device, nil
		}
	}
	return "", fmt.Errorf("no Wi-Fi interface found: %w", wifi.ErrNotFound)
}
