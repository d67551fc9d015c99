package config

import (
	"errors"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/piecechain/internal/logging"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "piecechain.toml"

// Config holds all piecechain settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LineBreakPieces loads and inserts '\n' as LineBreak pieces.
	LineBreakPieces bool `toml:"line_break_pieces"`

	// View configures the terminal viewer.
	View ViewConfig `toml:"view"`
}

// ViewConfig configures the terminal viewer.
type ViewConfig struct {
	// TabWidth is the number of cells a tab expands to.
	TabWidth int `toml:"tab_width"`

	// ShowPieces colours text by the piece it comes from.
	ShowPieces bool `toml:"show_pieces"`

	// OriginalColor is the hex colour of text from the original store.
	OriginalColor string `toml:"original_color"`

	// PlainColor is the hex colour of text from the added store.
	PlainColor string `toml:"plain_color"`

	// LineBreakMarker is drawn at the end of lines terminated by a line break.
	// Empty disables the marker.
	LineBreakMarker string `toml:"line_break_marker"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:        "info",
		LineBreakPieces: true,
		View: ViewConfig{
			TabWidth:        4,
			ShowPieces:      false,
			OriginalColor:   "#d0d0d0",
			PlainColor:      "#87d787",
			LineBreakMarker: "",
		},
	}
}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error

	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, &ValidationError{Setting: "log_level", Value: c.LogLevel, Reason: "must be debug, info, warn or error"})
	}
	if c.View.TabWidth < 1 || c.View.TabWidth > 16 {
		errs = append(errs, &ValidationError{Setting: "view.tab_width", Value: c.View.TabWidth, Reason: "must be between 1 and 16"})
	}
	if _, err := colorful.Hex(c.View.OriginalColor); err != nil {
		errs = append(errs, &ValidationError{Setting: "view.original_color", Value: c.View.OriginalColor, Reason: err.Error()})
	}
	if _, err := colorful.Hex(c.View.PlainColor); err != nil {
		errs = append(errs, &ValidationError{Setting: "view.plain_color", Value: c.View.PlainColor, Reason: err.Error()})
	}
	if utf8.RuneCountInString(c.View.LineBreakMarker) > 1 {
		errs = append(errs, &ValidationError{Setting: "view.line_break_marker", Value: c.View.LineBreakMarker, Reason: "must be a single character"})
	}

	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}
