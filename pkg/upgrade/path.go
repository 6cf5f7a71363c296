package upgrade

import (
	"context"
	"strings"

	"github.com/arthur-debert/xgappup/pkg/document"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/version"
)

// VersionResolver returns the compatible versions of an artifact, nil for none
type VersionResolver interface {
	ResolveVersions(ctx context.Context, group, artifact string) *version.Set
}

// Path is the upgrade plan for one plugin reference.
// When the version set is known the selected version is always one of its members.
type Path struct {
	ref      document.Reference
	oldPath  string
	group    string
	artifact string
	versions *version.Set
	current  version.Version
	selected version.Version
	strategy Strategy
}

func newPath(ref document.Reference, group, artifact string, versions *version.Set, current version.Version) *Path {
	p := &Path{
		ref:      ref,
		oldPath:  ref.OldPath(),
		group:    group,
		artifact: artifact,
		versions: versions,
		current:  current,
		strategy: Upgrade,
	}
	if highest, ok := versions.Highest(); ok {
		p.selected = highest
	}
	return p
}

func newUnresolvedPath(ref document.Reference) *Path {
	return &Path{ref: ref, oldPath: ref.OldPath(), strategy: Skip}
}

// Reference returns the plugin entry this plan is for
func (p *Path) Reference() document.Reference { return p.ref }

// Kind returns the legacy encoding of the reference
func (p *Path) Kind() document.Kind { return p.ref.Kind }

// OldPath returns the prefix of the plugin's resource URLs, ending in "/"
func (p *Path) OldPath() string { return p.oldPath }

// GroupID returns the target group, "" when unresolved
func (p *Path) GroupID() string { return p.group }

// ArtifactID returns the target artifact, "" when unresolved
func (p *Path) ArtifactID() string { return p.artifact }

// HasCoordinates reports whether a target artifact is known
func (p *Path) HasCoordinates() bool { return p.group != "" && p.artifact != "" }

// Versions returns the candidate versions, nil when unresolved
func (p *Path) Versions() *version.Set { return p.versions }

// CurrentVersion returns the version the reference already uses, if it encodes one
func (p *Path) CurrentVersion() (version.Version, bool) {
	return p.current, !p.current.IsZero()
}

// SelectedVersion returns the target version
func (p *Path) SelectedVersion() (version.Version, bool) {
	return p.selected, !p.selected.IsZero()
}

// Strategy returns the chosen strategy
func (p *Path) Strategy() Strategy { return p.strategy }

// AllowedStrategies returns the strategies SetStrategy accepts for this reference
func (p *Path) AllowedStrategies() []Strategy { return AllowedStrategies(p.ref.Kind) }

// VersionEditable reports whether SetSelectedVersion makes sense now
func (p *Path) VersionEditable() bool {
	return p.strategy.UpgradesPlugin() && !p.versions.Empty()
}

// NewPath returns creole://group;artifact;selected/, or "" when unresolved
func (p *Path) NewPath() string {
	if !p.HasCoordinates() || p.selected.IsZero() {
		return ""
	}
	return document.CreoleURI(p.group, p.artifact, p.selected.String())
}

// IsNoOp reports whether applying the plan would leave the document as it is:
// the plan skips, or it keeps a coordinate reference at its current version
func (p *Path) IsNoOp() bool {
	if !p.strategy.UpgradesPlugin() {
		return true
	}
	if p.current.IsZero() || p.selected.IsZero() {
		return false
	}
	return p.ref.Kind == document.KindCoordinate &&
		p.group == p.ref.Group &&
		p.artifact == p.ref.Artifact &&
		p.selected.Equal(p.current)
}

// SetCoordinates points the plan at another artifact. The versions are
// resolved again; on success the strategy becomes Upgrade and the selected
// version is kept if the new set contains it, else reset to the highest.
// On failure the plan is unchanged.
func (p *Path) SetCoordinates(ctx context.Context, r VersionResolver, group, artifact string) error {
	group, artifact = strings.TrimSpace(group), strings.TrimSpace(artifact)
	if group == "" || artifact == "" {
		return errors.New(errors.ErrInvalidArgument, "group and artifact are both required").
			WithDetail("group", group).
			WithDetail("artifact", artifact)
	}

	versions := r.ResolveVersions(ctx, group, artifact)
	highest, ok := versions.Highest()
	if !ok {
		return errors.Newf(errors.ErrNoVersions, "%s:%s is not a valid GATE plugin", group, artifact).
			WithDetail("group", group).
			WithDetail("artifact", artifact)
	}

	p.group = group
	p.artifact = artifact
	p.versions = versions
	p.strategy = Upgrade
	if p.selected.IsZero() || !versions.Contains(p.selected) {
		p.selected = highest
	} else {
		p.selected = versions.At(versions.Index(p.selected))
	}
	return nil
}

// SetStrategy changes the strategy. It must be allowed for the reference
// kind, and strategies that replace the plugin need coordinates. The
// selected version is not touched.
func (p *Path) SetStrategy(s Strategy) error {
	if !isAllowed(p.ref.Kind, s) {
		return errors.Newf(errors.ErrStrategyNotAllowed, "strategy %q is not available for %s plugins", s.Label(), p.ref.Kind).
			WithDetail("strategy", s.String()).
			WithDetail("kind", p.ref.Kind.String())
	}
	if s.UpgradesPlugin() && (!p.HasCoordinates() || p.selected.IsZero()) {
		return errors.Newf(errors.ErrStrategyNotAllowed, "strategy %q needs a target plugin first", s.Label()).
			WithDetail("strategy", s.String()).
			WithDetail("oldPath", p.oldPath)
	}
	p.strategy = s
	return nil
}

// SetSelectedVersion picks the target version, which must be in the version set
func (p *Path) SetSelectedVersion(v version.Version) error {
	idx := p.versions.Index(v)
	if idx < 0 {
		return errors.Newf(errors.ErrInvalidArgument, "version %q is not available for %s", v, p.coordinates()).
			WithDetail("version", v.String()).
			WithDetail("available", p.versions.Strings())
	}
	p.selected = p.versions.At(idx)
	return nil
}

func (p *Path) coordinates() string {
	if !p.HasCoordinates() {
		return p.oldPath
	}
	return p.group + ":" + p.artifact
}
