package upgrade

import (
	"sort"
	"strings"

	"github.com/arthur-debert/xgappup/pkg/config"
	"github.com/arthur-debert/xgappup/pkg/document"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
)

// ResourcesSegment is inserted between a plugin URI and a resource path
const ResourcesSegment = "resources/"

// ApplyOptions tunes rewriting
type ApplyOptions struct {
	// MatchOrder picks the plan for a resource URL several old paths
	// match: config.MatchLongest (default) or config.MatchDocument
	MatchOrder string
}

// ApplyResult summarizes what Apply changed
type ApplyResult struct {
	Plugins   []PluginChange   `json:"plugins" yaml:"plugins"`
	Resources []ResourceChange `json:"resources" yaml:"resources"`
}

// PluginChange is one replaced plugin entry
type PluginChange struct {
	OldPath string `json:"old_path" yaml:"old_path"`
	NewPath string `json:"new_path" yaml:"new_path"`
}

// ResourceChange is one rewritten resource URL
type ResourceChange struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// RewriteURL moves a resource URL from under oldPath to under newPath,
// making sure it lands in the plugin's resources/ directory
func RewriteURL(value, oldPath, newPath string) string {
	suffix := strings.TrimPrefix(value, oldPath)
	if strings.HasPrefix(suffix, ResourcesSegment) {
		return newPath + suffix
	}
	return newPath + ResourcesSegment + suffix
}

// Apply rewrites doc for the given plans. Plugin entries are replaced
// first; resource URLs are rewritten after every replacement is done.
// On error the document is left partly rewritten and must be discarded.
func Apply(doc *document.Document, paths []*Path, opts ApplyOptions) (*ApplyResult, error) {
	logger := logging.GetLogger("upgrade")
	done := logging.LogOperationStart(logger, "apply")
	defer done()

	result := &ApplyResult{}

	for _, p := range paths {
		if !p.strategy.UpgradesPlugin() {
			continue
		}
		newPath := p.NewPath()
		if newPath == "" {
			return nil, errors.Newf(errors.ErrInvalidArgument, "plan for %s has no target plugin", p.oldPath).
				WithDetail("oldPath", p.oldPath)
		}
		if err := doc.ReplaceReference(p.ref, p.group, p.artifact, p.selected.String()); err != nil {
			return nil, err
		}
		result.Plugins = append(result.Plugins, PluginChange{OldPath: p.oldPath, NewPath: newPath})
		logger.Debug().Str("oldPath", p.oldPath).Str("newPath", newPath).Msg("Replaced plugin")
	}

	rewriting := resourcePlans(paths, opts.MatchOrder)
	if len(rewriting) == 0 {
		return result, nil
	}

	for _, u := range doc.ResourceURLs() {
		if doc.InPluginList(u) {
			continue
		}
		for _, p := range rewriting {
			if !strings.HasPrefix(u.Value, p.oldPath) {
				continue
			}
			uri := RewriteURL(u.Value, p.oldPath, p.NewPath())
			if err := doc.ReplaceResource(u, uri); err != nil {
				return nil, err
			}
			result.Resources = append(result.Resources, ResourceChange{Old: u.Value, New: uri})
			logger.Trace().Str("old", u.Value).Str("new", uri).Msg("Rewrote resource")
			break
		}
	}

	logger.Info().
		Int("plugins", len(result.Plugins)).
		Int("resources", len(result.Resources)).
		Msg("Applied upgrade")
	return result, nil
}

// resourcePlans returns the plans whose resources move, most specific
// old path first unless document order is requested
func resourcePlans(paths []*Path, order string) []*Path {
	var plans []*Path
	for _, p := range paths {
		if p.strategy.UpgradesResources() && p.NewPath() != "" {
			plans = append(plans, p)
		}
	}
	if order != config.MatchDocument {
		sort.SliceStable(plans, func(i, j int) bool {
			return len(plans[i].oldPath) > len(plans[j].oldPath)
		})
	}
	return plans
}
