// Package sink delivers the networks a poll matched: to a JSON file, to
// the console, as a QR code, and as human-readable status lines.
package sink

import (
	"encoding/json"

	"github.com/shazow/wifiseek/wifi"
)

// marshal renders networks as the pretty JSON array shared by the file
// and console sinks.
func marshal(networks []wifi.Network) ([]byte, error) {
	if networks == nil {
		networks = []wifi.Network{}
	}
	data, err := json.MarshalIndent(networks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
