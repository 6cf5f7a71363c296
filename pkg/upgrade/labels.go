package upgrade

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/xgappup/pkg/document"
)

// UnknownPlugin is shown for plans without a target plugin
const UnknownPlugin = "<unknown>"

// OldPluginLabel describes the plugin the application uses today
func OldPluginLabel(p *Path, defaultGroup string) string {
	ref := p.Reference()
	switch ref.Kind {
	case document.KindBuiltin:
		name := strings.TrimSuffix(strings.TrimPrefix(p.OldPath(), document.BuiltinPrefix), "/")
		return fmt.Sprintf("Pre-8.5 %s (built-in)", name)
	case document.KindCoordinate:
		return coordinateLabel(ref.Group, ref.Artifact, defaultGroup)
	default:
		return `Directory plugin "` + document.LastSegment(p.OldPath()) + `"`
	}
}

// NewPluginLabel describes the plugin the plan moves to
func NewPluginLabel(p *Path, defaultGroup string) string {
	if !p.HasCoordinates() {
		return UnknownPlugin
	}
	return coordinateLabel(p.GroupID(), p.ArtifactID(), defaultGroup)
}

func coordinateLabel(group, artifact, defaultGroup string) string {
	if defaultGroup == "" {
		defaultGroup = DefaultGroup
	}
	if group == defaultGroup {
		return artifact
	}
	return group + ":" + artifact
}
