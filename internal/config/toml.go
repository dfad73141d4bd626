package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseTOML is an ff.ConfigFileParser for TOML files. Keys name flags,
// with underscores accepted in place of dashes. Arrays set the flag once
// per element.
func ParseTOML(r io.Reader, set func(name, value string) error) error {
	var values map[string]any
	if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
		return fmt.Errorf("invalid toml config: %w", err)
	}
	return setValues("", values, set)
}

func setValues(prefix string, values map[string]any, set func(name, value string) error) error {
	for key, val := range values {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "." + name
		}
		if table, ok := val.(map[string]any); ok {
			if err := setValues(name, table, set); err != nil {
				return err
			}
			continue
		}

		items, ok := val.([]any)
		if !ok {
			items = []any{val}
		}
		for _, item := range items {
			s, err := tomlString(item)
			if err != nil {
				return fmt.Errorf("config key %q: %w", key, err)
			}
			if err := set(name, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func tomlString(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return "", fmt.Errorf("unsupported value %v (%T)", v, v)
}
