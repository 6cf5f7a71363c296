package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
)

// Overrides pins plan decisions for individual plugins, read from --overrides
type Overrides struct {
	Plugins []PluginOverride `toml:"plugin"`
}

// PluginOverride applies to the plugin whose old path equals Old.
// Empty fields leave the suggested value in place.
type PluginOverride struct {
	Old      string `toml:"old"`
	Group    string `toml:"group"`
	Artifact string `toml:"artifact"`
	Version  string `toml:"version"`
	Strategy string `toml:"strategy"`
}

// HasCoordinates reports whether the override names a new artifact
func (o PluginOverride) HasCoordinates() bool {
	return o.Group != "" && o.Artifact != ""
}

// LoadOverrides reads and parses an overrides file
func LoadOverrides(path string) (*Overrides, error) {
	logger := logging.GetLogger("config").With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "overrides file %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read overrides file %s", path)
	}

	overrides, err := ParseOverrides(data)
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("plugins", len(overrides.Plugins)).Msg("Loaded overrides")
	return overrides, nil
}

// ParseOverrides parses overrides TOML
func ParseOverrides(data []byte) (*Overrides, error) {
	var overrides Overrides
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse overrides TOML")
	}

	for i := range overrides.Plugins {
		o := &overrides.Plugins[i]
		o.Old = strings.TrimSpace(o.Old)
		if o.Old == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "plugin override #%d has no old path", i+1)
		}
		if !strings.HasSuffix(o.Old, "/") {
			o.Old += "/"
		}
		if (o.Group == "") != (o.Artifact == "") {
			return nil, errors.Newf(errors.ErrConfigValid,
				"plugin override for %s must set group and artifact together", o.Old).
				WithDetail("old", o.Old)
		}
	}
	return &overrides, nil
}

// Find returns the override for an old path, or nil
func (o *Overrides) Find(oldPath string) *PluginOverride {
	if o == nil {
		return nil
	}
	if !strings.HasSuffix(oldPath, "/") {
		oldPath += "/"
	}
	for i := range o.Plugins {
		if o.Plugins[i].Old == oldPath {
			return &o.Plugins[i]
		}
	}
	return nil
}
