package upgrade

import (
	"context"
	"regexp"
	"strings"

	"github.com/arthur-debert/xgappup/pkg/document"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/version"
)

// DefaultGroup is the group of the plugins that used to ship with GATE
const DefaultGroup = "uk.ac.gate.plugins"

var separatorRuns = regexp.MustCompile(`[\s_]+`)

// SuggestOptions tunes plan building
type SuggestOptions struct {
	// DefaultGroup is the group tried for built-in and directory plugins
	DefaultGroup string
	// IncludeUnresolved keeps directory plugins with no matching artifact
	// as unresolved plans set to Skip
	IncludeUnresolved bool
}

// DeriveArtifactName turns a legacy plugin directory name into an artifact
// id: lower case with runs of whitespace and underscores collapsed to "-"
func DeriveArtifactName(name string) string {
	return separatorRuns.ReplaceAllString(strings.ToLower(name), "-")
}

// Suggest builds one plan per upgradable plugin reference, in document
// order. Built-in and coordinate references with no available versions
// are left out.
func Suggest(ctx context.Context, doc *document.Document, r VersionResolver, opts SuggestOptions) ([]*Path, error) {
	logger := logging.GetLogger("upgrade")
	done := logging.LogOperationStart(logger, "suggest")
	defer done()

	group := opts.DefaultGroup
	if group == "" {
		group = DefaultGroup
	}

	var paths []*Path
	for _, ref := range doc.References() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "suggest cancelled")
		}

		refLogger := logger.With().Str("kind", ref.Kind.String()).Str("oldPath", ref.OldPath()).Logger()

		switch ref.Kind {
		case document.KindBuiltin, document.KindDirectory:
			artifact := DeriveArtifactName(ref.Name())
			versions := r.ResolveVersions(ctx, group, artifact)
			if !versions.Empty() {
				paths = append(paths, newPath(ref, group, artifact, versions, version.Version{}))
				refLogger.Debug().Str("artifact", artifact).Int("versions", versions.Len()).Msg("Plugin can be upgraded")
				continue
			}
			if ref.Kind == document.KindDirectory && opts.IncludeUnresolved {
				paths = append(paths, newUnresolvedPath(ref))
				refLogger.Info().Msg("No artifact matches directory plugin, keeping it unresolved")
				continue
			}
			refLogger.Info().Str("artifact", artifact).Msg("No upgrade available")

		case document.KindCoordinate:
			current, err := version.Parse(ref.Version)
			if err != nil {
				refLogger.Warn().Err(err).Msg("Skipping plugin with unparsable version")
				continue
			}
			versions := r.ResolveVersions(ctx, ref.Group, ref.Artifact)
			if versions.Empty() {
				refLogger.Info().Msg("No upgrade available")
				continue
			}
			paths = append(paths, newPath(ref, ref.Group, ref.Artifact, versions, current))

		default:
			refLogger.Trace().Msg("Ignoring unknown plugin entry")
		}
	}

	return paths, nil
}
