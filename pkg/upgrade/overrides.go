package upgrade

import (
	"context"

	"github.com/arthur-debert/xgappup/pkg/config"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/version"
)

// ApplyOverrides adjusts plans from an overrides file, using the same
// operations an interactive editor would: coordinates first, then the
// version, then the strategy. Overrides matching no plan are reported in
// the returned list.
func ApplyOverrides(ctx context.Context, paths []*Path, overrides *config.Overrides, r VersionResolver) ([]string, error) {
	if overrides == nil {
		return nil, nil
	}
	logger := logging.GetLogger("upgrade")

	used := make(map[string]bool)
	for _, p := range paths {
		o := overrides.Find(p.OldPath())
		if o == nil {
			continue
		}
		used[o.Old] = true

		if o.HasCoordinates() && (o.Group != p.GroupID() || o.Artifact != p.ArtifactID()) {
			if err := p.SetCoordinates(ctx, r, o.Group, o.Artifact); err != nil {
				return nil, errors.Wrapf(err, errors.GetErrorCode(err), "override for %s", o.Old)
			}
		}
		if o.Version != "" {
			v, err := version.Parse(o.Version)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "override for %s", o.Old)
			}
			if err := p.SetSelectedVersion(v); err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "override for %s", o.Old)
			}
		}
		if o.Strategy != "" {
			s, err := ParseStrategy(o.Strategy)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "override for %s", o.Old)
			}
			if err := p.SetStrategy(s); err != nil {
				return nil, errors.Wrapf(err, errors.ErrStrategyNotAllowed, "override for %s", o.Old)
			}
		}
		logger.Debug().Str("oldPath", p.OldPath()).Msg("Applied override")
	}

	var unused []string
	for _, o := range overrides.Plugins {
		if !used[o.Old] {
			unused = append(unused, o.Old)
		}
	}
	return unused, nil
}
