package repository

import (
	"os"

	"github.com/arthur-debert/xgappup/pkg/config"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/paths"
)

// NewSession builds a Client from the configuration and Maven settings.
// Remotes from config come first, then the repositories of active settings
// profiles; mirrors and credentials are applied to the combined list.
func NewSession(cfg *config.Config, p *paths.Paths) (*Client, error) {
	logger := logging.GetLogger("repository")
	if p == nil {
		p = paths.New()
	}
	repoCfg := cfg.Repository

	settings, err := loadSessionSettings(repoCfg.SettingsFile, p)
	if err != nil {
		return nil, err
	}

	remotes := make([]Remote, 0, len(repoCfg.Remotes))
	for _, r := range repoCfg.Remotes {
		remotes = append(remotes, Remote{ID: r.ID, URL: r.URL, Username: r.Username, Password: r.Password})
	}
	remotes = append(remotes, settings.ActiveRepositories()...)
	remotes = settings.Apply(remotes)

	local := repoCfg.LocalPath
	if local == "" {
		local = paths.ExpandHome(settings.LocalRepository)
	}
	if local == "" {
		local = p.MavenLocalRepository()
	}

	client := NewClient(Options{
		Remotes:         remotes,
		LocalRepository: local,
		Offline:         repoCfg.Offline || settings.Offline,
		Timeout:         repoCfg.Timeout,
		Retries:         repoCfg.Retries,
		UserAgent:       repoCfg.UserAgent,
	})

	ids := make([]string, len(remotes))
	for i, r := range remotes {
		ids[i] = r.ID
	}
	logger.Debug().
		Strs("remotes", ids).
		Str("local", local).
		Bool("offline", client.Offline()).
		Msg("Repository session ready")

	return client, nil
}

func loadSessionSettings(explicit string, p *paths.Paths) (*Settings, error) {
	path := explicit
	if path == "" {
		path = p.MavenSettingsPath()
		if _, err := os.Stat(path); err != nil {
			return &Settings{}, nil
		}
	}

	settings, err := LoadSettings(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettings, "failed to load Maven settings from %s", path).
			WithDetail("path", path)
	}
	return settings, nil
}
