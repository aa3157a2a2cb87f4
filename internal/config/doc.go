// Package config handles loading and validation of mrls configuration.
//
// Configuration is read from ~/.config/mrls/config.toml. The file is
// optional; defaults cover a stock mr setup.
//
// # Settings
//
//   - mrconfig: path to the mr configuration file (default: "~/.mrconfig",
//     overridable via the MRLS_MRCONFIG environment variable)
//   - group_file: path of the pinned-group state file
//     (default: "~/.mrconfig_group")
//   - tool: name of the multi-repo tool invoked by generated commands
//     (default: "mr")
//   - max_inline_length: commands longer than this are dispatched through a
//     temp file instead of an inline list (default: 240)
//
// # Path Validation
//
// Paths must be absolute or start with ~ (no relative paths like "." or
// "..") to avoid confusion about the working directory.
package config
