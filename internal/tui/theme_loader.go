package tui

import (
	"errors"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadTheme reads a TOML theme from r on top of the default theme, so a
// file only needs to name the colors it overrides.
func LoadTheme(r io.Reader) (Theme, error) {
	if r == nil {
		return Theme{}, errors.New("theme reader is nil")
	}
	theme := NewDefaultTheme()
	if _, err := toml.NewDecoder(r).Decode(&theme); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

// LoadThemeFile loads the theme at path into CurrentTheme. An empty path
// keeps the default theme.
func LoadThemeFile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	theme, err := LoadTheme(f)
	if err != nil {
		return err
	}
	CurrentTheme = theme
	return nil
}
