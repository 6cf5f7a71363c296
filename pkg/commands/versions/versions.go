package versions

import (
	"context"
	"strings"

	"github.com/arthur-debert/xgappup/pkg/commands/internal"
	"github.com/arthur-debert/xgappup/pkg/display"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
)

// VersionsOptions defines the options for the Versions command.
type VersionsOptions struct {
	internal.SessionOptions

	Group    string
	Artifact string
}

// Versions lists the versions of a plugin that pass the compatibility probe.
func Versions(ctx context.Context, opts VersionsOptions) (*display.VersionsView, error) {
	log := logging.GetLogger("commands.versions")

	group, artifact := strings.TrimSpace(opts.Group), strings.TrimSpace(opts.Artifact)
	if group == "" || artifact == "" {
		return nil, errors.New(errors.ErrInvalidArgument, "group and artifact are both required")
	}

	session, err := internal.NewSession(opts.SessionOptions)
	if err != nil {
		return nil, err
	}

	set := session.Resolver.ResolveVersions(ctx, group, artifact)
	log.Info().Str("group", group).Str("artifact", artifact).Int("versions", set.Len()).Msg("Command finished")
	return display.NewVersionsView(group, artifact, set), nil
}
