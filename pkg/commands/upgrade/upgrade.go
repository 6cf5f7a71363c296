// Package upgrade runs a full migration of one application file.
package upgrade

import (
	"context"
	"time"

	"github.com/arthur-debert/xgappup/pkg/commands/internal"
	"github.com/arthur-debert/xgappup/pkg/display"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/persist"
	plans "github.com/arthur-debert/xgappup/pkg/upgrade"
)

// Editor lets a user change the plans before they are applied
type Editor interface {
	// Edit reports false when the user abandons the upgrade
	Edit(ctx context.Context, paths []*plans.Path, r plans.VersionResolver) (bool, error)
}

// UpgradeOptions defines the options for the Upgrade command.
type UpgradeOptions struct {
	internal.SessionOptions

	File          string
	OverridesFile string
	// DryRun computes the changes without writing
	DryRun bool
	// Force replaces an existing backup file
	Force bool
	// Editor is shown after the overrides are applied; nil skips it
	Editor Editor
}

// Upgrade rewrites an application file to the Maven plugin model.
func Upgrade(ctx context.Context, opts UpgradeOptions) (*display.ResultView, error) {
	log := logging.GetLogger("commands.upgrade").With().Str("file", opts.File).Logger()
	log.Debug().Bool("dryRun", opts.DryRun).Bool("force", opts.Force).Msg("Executing command")
	start := time.Now()

	session, err := internal.NewSession(opts.SessionOptions)
	if err != nil {
		return nil, err
	}

	plan, err := session.BuildPlan(ctx, opts.File, opts.OverridesFile)
	if err != nil {
		return nil, err
	}

	if opts.Editor != nil {
		accepted, err := opts.Editor.Edit(ctx, plan.Paths, session.Resolver)
		if err != nil {
			return nil, err
		}
		if !accepted {
			log.Info().Msg("Upgrade cancelled")
			return display.CancelledView(opts.File), nil
		}
	}

	effective := plans.FilterNoOps(plan.Paths)
	if len(effective) == 0 {
		log.Info().Msg("Nothing to do")
		return display.NothingToDoView(opts.File, opts.DryRun), nil
	}

	applied, err := plans.Apply(plan.Document, effective, plans.ApplyOptions{
		MatchOrder: session.Config.Upgrade.MatchOrder,
	})
	if err != nil {
		return nil, err
	}

	content, err := plan.Document.Bytes()
	if err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(log, "persist")
	written, err := persist.Write(ctx, opts.File, content, persist.Options{
		BackupSuffix: session.Config.Upgrade.BackupSuffix,
		Force:        opts.Force,
		DryRun:       opts.DryRun,
	})
	done()
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("plugins", len(applied.Plugins)).
		Int("resources", len(applied.Resources)).
		Bool("written", written.Written).
		Msg("Command finished")
	return display.NewResultView(opts.File, applied, written, opts.DryRun, time.Since(start)), nil
}
