package plan

import (
	"context"

	"github.com/arthur-debert/xgappup/pkg/commands/internal"
	"github.com/arthur-debert/xgappup/pkg/display"
	"github.com/arthur-debert/xgappup/pkg/logging"
)

// PlanOptions defines the options for the Plan command.
type PlanOptions struct {
	internal.SessionOptions

	// File is the application to inspect
	File string
	// OverridesFile adjusts the suggested plans
	OverridesFile string
}

// Plan classifies every plugin of an application and suggests an upgrade
// for each, without touching the file.
func Plan(ctx context.Context, opts PlanOptions) (*display.PlanView, error) {
	log := logging.GetLogger("commands.plan")
	log.Debug().Str("command", "Plan").Str("file", opts.File).Msg("Executing command")

	session, err := internal.NewSession(opts.SessionOptions)
	if err != nil {
		return nil, err
	}

	plan, err := session.BuildPlan(ctx, opts.File, opts.OverridesFile)
	if err != nil {
		return nil, err
	}

	view := display.NewPlanView(opts.File, plan.Paths, session.Config.Upgrade.DefaultGroup)
	view.UnusedOverrides = plan.UnusedOverrides

	log.Info().Str("command", "Plan").Int("plugins", len(view.Plugins)).Msg("Command finished")
	return view, nil
}
