// Package config handles configuration management for xgappup.
//
// Configuration is layered, later sources win:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file, TOML or YAML ($XDG_CONFIG_HOME/xgappup/config.toml
//     or the file given with --config)
//  3. environment variables prefixed with XGAPPUP_, using "__" between
//     section and key (XGAPPUP_REPOSITORY__OFFLINE=true)
//  4. explicit overrides from command line flags
//
// The package also reads the per-run overrides file (--overrides) that
// pins coordinates, versions and strategies for individual plugins.
package config
