package iwlist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shazow/wifiseek/wifi"
)

const backendName = "iwlist"

var (
	cellRe      = regexp.MustCompile(`Cell \d+ - Address: ([0-9A-Fa-f:]+)`)
	channelRe   = regexp.MustCompile(`Channel[:\s](\d{1,3})`)
	frequencyRe = regexp.MustCompile(`Frequency[:=](\d+(?:\.\d+)?) GHz`)
	modeRe      = regexp.MustCompile(`Mode:(\S+)`)
	qualityRe   = regexp.MustCompile(`Quality[:=](\d+)`)
	signalRe    = regexp.MustCompile(`Signal level[:=](-?\d+)`)
	noiseRe     = regexp.MustCompile(`Noise level[:=](-?\d+)`)
	essidRe     = regexp.MustCompile(`ESSID:"(.*)"`)
)

// parseScanOutput parses the output of `iwlist <iface> scan` into one
// record per cell, in the order iwlist reported them.
func parseScanOutput(output string) []wifi.Network {
	networks := []wifi.Network{}
	var current wifi.Network
	var encrypted, wpa, wpa2, wpa3 bool

	flush := func() {
		if current == nil {
			return
		}
		if _, ok := current[wifi.FieldSecurity]; ok {
			switch {
			case wpa3:
				current[wifi.FieldSecurity] = wifi.SecurityWPA3
			case wpa2:
				current[wifi.FieldSecurity] = wifi.SecurityWPA2
			case wpa:
				current[wifi.FieldSecurity] = wifi.SecurityWPA
			case encrypted:
				current[wifi.FieldSecurity] = wifi.SecurityWEP
			default:
				current[wifi.FieldSecurity] = wifi.SecurityOpen
			}
		}
		networks = append(networks, current)
		current = nil
	}

	for _, line := range strings.Split(output, "\n") {
		if m := cellRe.FindStringSubmatch(line); m != nil {
			flush()
			current = wifi.Network{wifi.FieldAddress: strings.ToLower(m[1])}
			encrypted, wpa, wpa2, wpa3 = false, false, false, false
			continue
		}
		if current == nil {
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Frequency"):
			if m := frequencyRe.FindStringSubmatch(trimmed); m != nil {
				if f, err := strconv.ParseFloat(m[1], 64); err == nil {
					current[wifi.FieldFrequency] = f
				}
			}
			// "Frequency:2.437 GHz (Channel 6)"
			if _, ok := current[wifi.FieldChannel]; !ok {
				setInt(current, wifi.FieldChannel, channelRe, trimmed)
			}
		case strings.HasPrefix(trimmed, "Channel"):
			setInt(current, wifi.FieldChannel, channelRe, trimmed)
		case strings.HasPrefix(trimmed, "Mode:"):
			if m := modeRe.FindStringSubmatch(trimmed); m != nil {
				current[wifi.FieldMode] = strings.ToLower(m[1])
			}
		case strings.HasPrefix(trimmed, "Quality"):
			setInt(current, wifi.FieldQuality, qualityRe, trimmed)
			setInt(current, wifi.FieldSignal, signalRe, trimmed)
			setInt(current, wifi.FieldNoise, noiseRe, trimmed)
		case strings.HasPrefix(trimmed, "Signal level"):
			setInt(current, wifi.FieldSignal, signalRe, trimmed)
			setInt(current, wifi.FieldNoise, noiseRe, trimmed)
		case strings.HasPrefix(trimmed, "ESSID:"):
			if m := essidRe.FindStringSubmatch(trimmed); m != nil && m[1] != "" {
				current[wifi.FieldSSID] = m[1]
			}
		case strings.HasPrefix(trimmed, "Encryption key:"):
			encrypted = strings.HasSuffix(trimmed, ":on")
			current[wifi.FieldSecurity] = ""
		case strings.HasPrefix(trimmed, "IE:"):
			switch {
			case strings.Contains(trimmed, "WPA2") || strings.Contains(trimmed, "802.11i"):
				wpa2 = true
			case strings.Contains(trimmed, "WPA Version"):
				wpa = true
			}
		case strings.HasPrefix(trimmed, "Authentication Suites") && strings.Contains(trimmed, "SAE"):
			wpa3 = true
		}
	}
	flush()
	return networks
}

func setInt(n wifi.Network, field string, re *regexp.Regexp, line string) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if v, err := strconv.Atoi(m[1]); err == nil {
		n[field] = v
	}
}

// classifyOutput maps the diagnostics iwlist prints for a failed scan to
// one of the wifi sentinel errors. It returns nil if the output does not
// describe a failure. iwlist prefixes most causes with "doesn't support
// scanning", so that one is checked last.
func classifyOutput(output string) error {
	switch {
	case strings.Contains(output, "No such device"):
		return wifi.ErrNotFound
	case strings.Contains(output, "Operation not permitted"):
		return wifi.ErrPermission
	case strings.Contains(output, "Network is down"):
		return wifi.ErrWirelessDisabled
	case strings.Contains(output, "Device or resource busy"):
		return wifi.ErrNotAvailable
	case strings.Contains(output, "Failed to read scan data"):
		return wifi.ErrOperationFailed
	case strings.Contains(output, "doesn't support scanning"):
		return wifi.ErrNotSupported
	}
	return nil
}

func scanError(iface, output string, err error) *wifi.ScanError {
	classified := classifyOutput(output)
	switch {
	case err == nil && classified == nil:
		err = wifi.ErrOperationFailed
	case err == nil:
		err = classified
	case classified != nil:
		err = fmt.Errorf("%w: %w", classified, err)
	}
	return &wifi.ScanError{
		Backend:   backendName,
		Interface: iface,
		Output:    output,
		Err:       err,
	}
}
