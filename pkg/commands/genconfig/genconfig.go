package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/xgappup/pkg/config"
	"github.com/arthur-debert/xgappup/pkg/display"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/paths"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	// Write saves the config instead of returning it for stdout
	Write bool
	// Target overrides the XDG config file location
	Target string
	// Paths locates the XDG config directory. Nil means paths.New().
	Paths *paths.Paths
}

// GenConfig outputs or writes the default configuration with every value
// commented out
func GenConfig(opts GenConfigOptions) (*display.ConfigView, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	result := &display.ConfigView{
		Content:      content,
		FilesWritten: []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	target := opts.Target
	if target == "" {
		p := opts.Paths
		if p == nil {
			p = paths.New()
		}
		target = p.ConfigFile(".toml")
	}

	if _, err := os.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to create directory %s", dir)
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
