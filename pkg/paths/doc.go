// Package paths provides centralized path handling for xgappup.
//
// It implements the XDG Base Directory specification for the tool's own
// files (configuration, log file, caches) and knows where Maven keeps its
// user settings and local repository.
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - XGAPPUP_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/xgappup)
//   - XGAPPUP_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/xgappup)
//   - XDG_STATE_HOME: Base for the log file (default: ~/.local/state)
//   - M2_HOME_DIR: Override the Maven user directory (default: ~/.m2)
package paths
