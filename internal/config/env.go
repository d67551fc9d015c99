package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PIECECHAIN_"

// lookupFunc has the signature of os.LookupEnv.
type lookupFunc func(string) (string, bool)

// envSetting binds one environment variable to a field.
type envSetting struct {
	name string
	set  func(c *Config, value string) error
}

var envSettings = []envSetting{
	{"LOG_LEVEL", func(c *Config, v string) error { c.LogLevel = v; return nil }},
	{"LINE_BREAK_PIECES", func(c *Config, v string) error { return parseBool(v, &c.LineBreakPieces) }},
	{"VIEW_TAB_WIDTH", func(c *Config, v string) error { return parseInt(v, &c.View.TabWidth) }},
	{"VIEW_SHOW_PIECES", func(c *Config, v string) error { return parseBool(v, &c.View.ShowPieces) }},
	{"VIEW_ORIGINAL_COLOR", func(c *Config, v string) error { c.View.OriginalColor = v; return nil }},
	{"VIEW_PLAIN_COLOR", func(c *Config, v string) error { c.View.PlainColor = v; return nil }},
	{"VIEW_LINE_BREAK_MARKER", func(c *Config, v string) error { c.View.LineBreakMarker = v; return nil }},
}

// mergeEnv overlays PIECECHAIN_* variables found by lookup.
// Empty values are treated as set.
func (c *Config) mergeEnv(lookup lookupFunc) error {
	for _, s := range envSettings {
		name := EnvPrefix + s.name
		value, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.set(c, value); err != nil {
			return fmt.Errorf("environment %s: %w", name, err)
		}
	}
	return nil
}

func parseBool(s string, dst *bool) error {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		*dst = true
	case "false", "no", "off", "0":
		*dst = false
	default:
		return fmt.Errorf("%w: %q is not a boolean", ErrValidationFailed, s)
	}
	return nil
}

func parseInt(s string, dst *int) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrValidationFailed, s)
	}
	*dst = n
	return nil
}
