// Package config loads piecechain settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, normally piecechain.toml in the working directory
//  3. PIECECHAIN_* environment variables
//
// Example file:
//
//	log_level = "debug"
//	line_break_pieces = true
//
//	[view]
//	tab_width = 8
//	show_pieces = true
//	original_color = "#d0d0d0"
//	plain_color = "#87d787"
//	line_break_marker = "¶"
//
// A missing file is not an error. Unknown keys are rejected so that typos do
// not silently fall back to defaults.
package config
