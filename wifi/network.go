package wifi

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Well-known record fields. Backends may add any other field.
const (
	FieldSSID      = "ssid"
	FieldAddress   = "address"
	FieldChannel   = "channel"
	FieldFrequency = "frequency" // GHz
	FieldQuality   = "quality"
	FieldSignal    = "signal"   // dBm
	FieldNoise     = "noise"    // dBm
	FieldStrength  = "strength" // 0-100
	FieldSecurity  = "security"
	FieldMode      = "mode"
	FieldConnected = "connected"
)

// Security values used in the FieldSecurity field.
const (
	SecurityOpen  = "open"
	SecurityWEP   = "wep"
	SecurityWPA   = "wpa"
	SecurityWPA2  = "wpa2"
	SecurityWPA3  = "wpa3"
	Security8021X = "8021x"
)

// Network is one access point observed in a single scan. Values are
// strings, numbers or bools, whatever the backend reported.
type Network map[string]any

// Value returns the raw value of field and whether it is present.
func (n Network) Value(field string) (any, bool) {
	v, ok := n[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the textual form of field. Numbers are rendered in their
// shortest decimal form so that 6 and "6" compare equal.
func (n Network) String(field string) (string, bool) {
	v, ok := n.Value(field)
	if !ok {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case fmt.Stringer:
		return v.String(), true
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return fmt.Sprint(v), true
}

// Number coerces field to a float64. Missing fields and values that do not
// parse as numbers report false.
func (n Network) Number(field string) (float64, bool) {
	v, ok := n.Value(field)
	if !ok {
		return 0, false
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return toFloat(v)
}

// Clone returns a shallow copy of the record.
func (n Network) Clone() Network {
	c := make(Network, len(n))
	for k, v := range n {
		c[k] = v
	}
	return c
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// Scanner runs a single scan on a wireless interface.
type Scanner interface {
	// Scan returns the networks visible on iface. A failure is reported as
	// a *ScanError.
	Scan(ctx context.Context, iface string) ([]Network, error)
}

// ScannerFunc adapts a function to the Scanner interface.
type ScannerFunc func(ctx context.Context, iface string) ([]Network, error)

// Scan calls f(ctx, iface).
func (f ScannerFunc) Scan(ctx context.Context, iface string) ([]Network, error) {
	return f(ctx, iface)
}
