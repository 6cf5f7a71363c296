package config

import (
	"time"

	"github.com/arthur-debert/xgappup/pkg/errors"
)

// Match orders for resource URL rewriting
const (
	MatchLongest  = "longest"
	MatchDocument = "document"
)

// Config is the complete xgappup configuration
type Config struct {
	Repository RepositoryConfig `koanf:"repository"`
	Probe      ProbeConfig      `koanf:"probe"`
	Upgrade    UpgradeConfig    `koanf:"upgrade"`
}

// RepositoryConfig controls how artifacts are looked up
type RepositoryConfig struct {
	SettingsFile string         `koanf:"settings_file"`
	LocalPath    string         `koanf:"local_path"`
	Offline      bool           `koanf:"offline"`
	Timeout      time.Duration  `koanf:"timeout"`
	Retries      int            `koanf:"retries"`
	UserAgent    string         `koanf:"user_agent"`
	Remotes      []RemoteConfig `koanf:"remotes"`
}

// RemoteConfig is one remote Maven repository
type RemoteConfig struct {
	ID       string `koanf:"id" json:"id" yaml:"id"`
	URL      string `koanf:"url" json:"url" yaml:"url"`
	Username string `koanf:"username" json:"username,omitempty" yaml:"username,omitempty"`
	Password string `koanf:"password" json:"-" yaml:"-"`
}

// ProbeConfig controls the plugin compatibility probe
type ProbeConfig struct {
	MarkerFile  string `koanf:"marker_file"`
	Concurrency int    `koanf:"concurrency"`
}

// UpgradeConfig controls plan building and rewriting
type UpgradeConfig struct {
	DefaultGroup      string `koanf:"default_group"`
	BackupSuffix      string `koanf:"backup_suffix"`
	MatchOrder        string `koanf:"match_order"`
	IncludeUnresolved bool   `koanf:"include_unresolved"`
}

// Validate checks the values that cannot be fixed up later
func (c *Config) Validate() error {
	if len(c.Repository.Remotes) == 0 {
		return errors.New(errors.ErrConfigValid, "at least one remote repository is required")
	}
	seen := make(map[string]bool)
	for i, r := range c.Repository.Remotes {
		if r.ID == "" || r.URL == "" {
			return errors.Newf(errors.ErrConfigValid, "remote #%d needs both id and url", i+1).
				WithDetail("index", i)
		}
		if seen[r.ID] {
			return errors.Newf(errors.ErrConfigValid, "duplicate remote id %q", r.ID).
				WithDetail("id", r.ID)
		}
		seen[r.ID] = true
	}
	if c.Repository.Timeout < 0 {
		return errors.New(errors.ErrConfigValid, "repository.timeout must not be negative")
	}
	if c.Repository.Retries < 0 {
		return errors.New(errors.ErrConfigValid, "repository.retries must not be negative")
	}
	if c.Probe.MarkerFile == "" {
		return errors.New(errors.ErrConfigValid, "probe.marker_file must not be empty")
	}
	if c.Probe.Concurrency <= 0 {
		return errors.Newf(errors.ErrConfigValid, "probe.concurrency must be positive, got %d", c.Probe.Concurrency).
			WithDetail("concurrency", c.Probe.Concurrency)
	}
	if c.Upgrade.DefaultGroup == "" {
		return errors.New(errors.ErrConfigValid, "upgrade.default_group must not be empty")
	}
	if c.Upgrade.BackupSuffix == "" {
		return errors.New(errors.ErrConfigValid, "upgrade.backup_suffix must not be empty")
	}
	switch c.Upgrade.MatchOrder {
	case MatchLongest, MatchDocument:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown upgrade.match_order %q (want %q or %q)",
			c.Upgrade.MatchOrder, MatchLongest, MatchDocument).
			WithDetail("match_order", c.Upgrade.MatchOrder)
	}
	return nil
}
