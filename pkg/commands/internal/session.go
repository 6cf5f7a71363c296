// Package internal holds the steps shared by the plan and upgrade commands.
package internal

import (
	"context"

	"github.com/arthur-debert/xgappup/pkg/config"
	"github.com/arthur-debert/xgappup/pkg/document"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/paths"
	"github.com/arthur-debert/xgappup/pkg/repository"
	"github.com/arthur-debert/xgappup/pkg/resolver"
	"github.com/arthur-debert/xgappup/pkg/upgrade"
)

// SessionOptions is what every command needs to talk to the repositories
type SessionOptions struct {
	// Config defaults to config.Load with default options
	Config *config.Config
	// Paths locates settings.xml and the local repository
	Paths *paths.Paths
	// Resolver replaces the repository backed resolver
	Resolver upgrade.VersionResolver
}

// Session is a loaded configuration plus a version resolver
type Session struct {
	Config   *config.Config
	Resolver upgrade.VersionResolver
}

// NewSession loads missing pieces. The repository client is created on
// first use so commands that fail early never read settings.xml.
func NewSession(opts SessionOptions) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load(config.LoadOptions{Paths: opts.Paths})
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	r := opts.Resolver
	if r == nil {
		p := opts.Paths
		r = resolver.New(func() (resolver.Repository, error) {
			return repository.NewSession(cfg, p)
		}, resolver.Options{
			MarkerFile:  cfg.Probe.MarkerFile,
			Concurrency: cfg.Probe.Concurrency,
		})
	}
	return &Session{Config: cfg, Resolver: r}, nil
}

// Plan is a parsed document with its suggested and overridden plans
type Plan struct {
	Document        *document.Document
	Paths           []*upgrade.Path
	UnusedOverrides []string
}

// BuildPlan loads file, suggests a plan for every plugin and applies the
// overrides file when one is given
func (s *Session) BuildPlan(ctx context.Context, file, overridesFile string) (*Plan, error) {
	logger := logging.GetLogger("commands").With().Str("file", file).Logger()

	doc, err := document.LoadFile(file)
	if err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(logger, "suggest")
	paths, err := upgrade.Suggest(ctx, doc, s.Resolver, upgrade.SuggestOptions{
		DefaultGroup:      s.Config.Upgrade.DefaultGroup,
		IncludeUnresolved: s.Config.Upgrade.IncludeUnresolved,
	})
	done()
	if err != nil {
		return nil, err
	}

	plan := &Plan{Document: doc, Paths: paths}
	if overridesFile == "" {
		return plan, nil
	}

	overrides, err := config.LoadOverrides(overridesFile)
	if err != nil {
		return nil, err
	}
	plan.UnusedOverrides, err = upgrade.ApplyOverrides(ctx, paths, overrides, s.Resolver)
	if err != nil {
		return nil, err
	}
	for _, old := range plan.UnusedOverrides {
		logger.Warn().Str("old", old).Msg("Override matches no plugin")
	}
	return plan, nil
}
