package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Color wraps a lipgloss.TerminalColor so it can be read from a theme
// file, either as a single color or as a [light, dark] pair.
type Color struct {
	lipgloss.TerminalColor
}

// UnmarshalTOML implements toml.Unmarshaler.
func (c *Color) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		c.TerminalColor = lipgloss.Color(v)
		return nil
	case []any:
		if len(v) != 2 {
			return fmt.Errorf("adaptive color needs [light, dark], got %d values", len(v))
		}
		light, ok1 := v[0].(string)
		dark, ok2 := v[1].(string)
		if !ok1 || !ok2 {
			return fmt.Errorf("adaptive color values must be strings")
		}
		c.TerminalColor = lipgloss.AdaptiveColor{Light: light, Dark: dark}
		return nil
	}
	return fmt.Errorf("unsupported color value %v (%T)", v, v)
}

// Theme contains the colors for the application.
type Theme struct {
	Primary    Color
	Subtle     Color
	Success    Color
	Warning    Color
	Error      Color
	Normal     Color
	Border     Color
	Result     Color
	SignalHigh Color
	SignalLow  Color
}

// CurrentTheme is the active theme for the application.
var CurrentTheme = NewDefaultTheme()

// NewDefaultTheme creates a new default theme.
func NewDefaultTheme() Theme {
	return Theme{
		Primary:    Color{lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#D359E3"}}, // Purple/Pink
		Subtle:     Color{lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#616161"}}, // Gray
		Success:    Color{lipgloss.AdaptiveColor{Light: "#388E3C", Dark: "#81C784"}}, // Green
		Warning:    Color{lipgloss.AdaptiveColor{Light: "#F57C00", Dark: "#FFB74D"}}, // Orange
		Error:      Color{lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#E57373"}}, // Red
		Normal:     Color{lipgloss.AdaptiveColor{Light: "#212121", Dark: "#FFFFFF"}}, // Black/White
		Border:     Color{lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#616161"}}, // Gray
		Result:     Color{lipgloss.AdaptiveColor{Light: "#0277BD", Dark: "#4FC3F7"}}, // Blue
		SignalHigh: Color{lipgloss.AdaptiveColor{Light: "#00B300", Dark: "#00FF00"}},
		SignalLow:  Color{lipgloss.AdaptiveColor{Light: "#D05F00", Dark: "#BC3C00"}},
	}
}

// SignalColor blends between SignalLow and SignalHigh by strength (0-100).
func (t Theme) SignalColor(strength float64) lipgloss.TerminalColor {
	low, err := colorful.Hex(resolveHex(t.SignalLow))
	if err != nil {
		return t.SignalHigh.TerminalColor
	}
	high, err := colorful.Hex(resolveHex(t.SignalHigh))
	if err != nil {
		return t.SignalHigh.TerminalColor
	}
	p := strength / 100
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return lipgloss.Color(low.BlendRgb(high, p).Hex())
}

// resolveHex picks the variant of an adaptive color that matches the
// terminal background.
func resolveHex(c Color) string {
	switch v := c.TerminalColor.(type) {
	case lipgloss.AdaptiveColor:
		if lipgloss.HasDarkBackground() {
			return v.Dark
		}
		return v.Light
	case lipgloss.Color:
		return string(v)
	}
	return ""
}
