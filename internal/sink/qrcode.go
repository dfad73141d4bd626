package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/shazow/wifiseek/wifi"
)

// QRCode prints a Wi-Fi join QR code for the first matched network.
type QRCode struct {
	W io.Writer
}

// Emit implements poll.Sink.
func (s *QRCode) Emit(ctx context.Context, q wifi.Query, networks []wifi.Network) error {
	if len(networks) == 0 {
		return nil
	}
	code, err := GenerateWifiQRCode(networks[0])
	if err != nil {
		return err
	}
	_, err = io.WriteString(s.W, code)
	return err
}

var wifiEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
	`"`, `\"`,
)

// EscapeWifiString handles the special character escaping for SSID and Password.
func EscapeWifiString(s string) string {
	return wifiEscaper.Replace(s)
}

// JoinString builds the Wi-Fi join payload for n, without a password.
func JoinString(n wifi.Network) (string, error) {
	ssid, ok := n.String(wifi.FieldSSID)
	if !ok || ssid == "" {
		return "", errors.New("network has no ssid")
	}

	var b strings.Builder
	b.WriteString("WIFI:S:")
	b.WriteString(EscapeWifiString(ssid))
	b.WriteString(";")

	security, _ := n.String(wifi.FieldSecurity)
	switch security {
	case wifi.SecurityWPA, wifi.SecurityWPA2, wifi.SecurityWPA3, wifi.Security8021X:
		b.WriteString("T:WPA;")
	case wifi.SecurityWEP:
		b.WriteString("T:WEP;")
	case wifi.SecurityOpen:
		b.WriteString("T:nopass;")
	default:
		// Don't set T if security is unknown, most readers will assume WPA.
	}

	b.WriteString(";")
	return b.String(), nil
}

// GenerateWifiQRCode returns the TUI-friendly QR code for joining n.
func GenerateWifiQRCode(n wifi.Network) (string, error) {
	payload, err := JoinString(n)
	if err != nil {
		return "", err
	}
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}
	return q.ToSmallString(false), nil
}
