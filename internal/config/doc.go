// Package config loads rut's core settings.
//
// Settings are resolved in increasing precedence: built-in defaults, a TOML
// or YAML file, then RUT_* environment variables. Command line flags are
// applied on top by the caller.
//
// Example TOML:
//
//	[editor]
//	tab_width = 8
//	line_ending = "crlf"
//	max_undo = 500
//
//	[logging]
//	level = "debug"
//
//	[archive]
//	path = "history.xz"
package config
