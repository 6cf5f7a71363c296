// Package commands provides the command implementations behind the CLI.
//
// Each command lives in its own subdirectory:
//   - plan/      - Plan command
//   - upgrade/   - Upgrade command
//   - versions/  - Versions command
//   - genconfig/ - GenConfig command
//   - internal/  - session and plan building shared by plan and upgrade
//
// This file re-exports the command functions so callers need one import.
package commands

import (
	"context"

	"github.com/arthur-debert/xgappup/pkg/commands/genconfig"
	"github.com/arthur-debert/xgappup/pkg/commands/internal"
	"github.com/arthur-debert/xgappup/pkg/commands/plan"
	"github.com/arthur-debert/xgappup/pkg/commands/upgrade"
	"github.com/arthur-debert/xgappup/pkg/commands/versions"
	"github.com/arthur-debert/xgappup/pkg/display"
)

// SessionOptions carries the configuration shared by every command.
type SessionOptions = internal.SessionOptions

// Plan suggests an upgrade for every plugin of an application.
type PlanOptions = plan.PlanOptions

func Plan(ctx context.Context, opts PlanOptions) (*display.PlanView, error) {
	return plan.Plan(ctx, opts)
}

// Upgrade rewrites an application to Maven plugins.
type UpgradeOptions = upgrade.UpgradeOptions
type Editor = upgrade.Editor

func Upgrade(ctx context.Context, opts UpgradeOptions) (*display.ResultView, error) {
	return upgrade.Upgrade(ctx, opts)
}

// Versions lists the compatible versions of a plugin.
type VersionsOptions = versions.VersionsOptions

func Versions(ctx context.Context, opts VersionsOptions) (*display.VersionsView, error) {
	return versions.Versions(ctx, opts)
}

// GenConfig outputs or writes the default configuration.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*display.ConfigView, error) {
	return genconfig.GenConfig(opts)
}
