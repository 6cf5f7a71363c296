package document

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Element and prefix names used in application files
const (
	ElemURLList       = "urlList"
	ElemLocalList     = "localList"
	ElemURLHolder     = "gate.util.persistence.PersistenceManager-URLHolder"
	ElemMavenPlugin   = "gate.creole.Plugin-Maven"
	ElemRRPersistence = "gate.util.persistence.PersistenceManager-RRPersistence"
	ElemURLString     = "urlString"
	ElemURIString     = "uriString"
	ElemGroup         = "group"
	ElemArtifact      = "artifact"
	ElemVersion       = "version"

	// BuiltinPrefix marks plugins that shipped inside the GATE distribution
	BuiltinPrefix = "$gatehome$plugins/"
	// CreoleScheme prefixes coordinate based resource URIs
	CreoleScheme = "creole://"
)

// Kind is the legacy encoding of a plugin reference
type Kind int

const (
	// KindOther is any plugin list entry that is not a known plugin encoding
	KindOther Kind = iota
	// KindBuiltin is a URL holder under $gatehome$plugins/
	KindBuiltin
	// KindCoordinate is a Maven plugin with group, artifact and version
	KindCoordinate
	// KindDirectory is a URL holder pointing anywhere else
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindCoordinate:
		return "coordinate"
	case KindDirectory:
		return "directory"
	default:
		return "other"
	}
}

// Reference is one decoded entry of the plugin list
type Reference struct {
	Kind Kind
	// URL is the urlString of builtin and directory references
	URL string
	// Group, Artifact and Version are set for coordinate references
	Group    string
	Artifact string
	Version  string

	el *etree.Element
}

// Name returns the last path segment of the URL, or the artifact for
// coordinate references
func (r Reference) Name() string {
	if r.Kind == KindCoordinate {
		return r.Artifact
	}
	return LastSegment(r.URL)
}

// OldPath returns the prefix that resource URLs belonging to this plugin
// start with, always ending in "/"
func (r Reference) OldPath() string {
	if r.Kind == KindCoordinate {
		return CreoleURI(r.Group, r.Artifact, r.Version)
	}
	if strings.HasSuffix(r.URL, "/") {
		return r.URL
	}
	return r.URL + "/"
}

// Same reports whether both references are the same document node
func (r Reference) Same(o Reference) bool {
	return r.el != nil && r.el == o.el
}

// CreoleURI builds creole://group;artifact;version/
func CreoleURI(group, artifact, version string) string {
	return fmt.Sprintf("%s%s;%s;%s/", CreoleScheme, group, artifact, version)
}

// LastSegment returns the last non-empty "/" separated segment of a URL
func LastSegment(url string) string {
	parts := strings.Split(url, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

func decodeReference(el *etree.Element) (Reference, error) {
	ref := Reference{el: el}

	switch el.Tag {
	case ElemURLHolder:
		urlEl := el.SelectElement(ElemURLString)
		if urlEl == nil {
			return ref, fmt.Errorf("%s without %s", ElemURLHolder, ElemURLString)
		}
		ref.URL = strings.TrimSpace(urlEl.Text())
		if strings.HasPrefix(ref.URL, BuiltinPrefix) {
			ref.Kind = KindBuiltin
		} else {
			ref.Kind = KindDirectory
		}

	case ElemMavenPlugin:
		ref.Kind = KindCoordinate
		for _, f := range []struct {
			name string
			dst  *string
		}{
			{ElemGroup, &ref.Group},
			{ElemArtifact, &ref.Artifact},
			{ElemVersion, &ref.Version},
		} {
			child := el.SelectElement(f.name)
			if child == nil {
				return ref, fmt.Errorf("%s without %s", ElemMavenPlugin, f.name)
			}
			*f.dst = strings.TrimSpace(child.Text())
		}

	default:
		ref.Kind = KindOther
	}

	return ref, nil
}

func newMavenPlugin(group, artifact, version string) *etree.Element {
	plugin := etree.NewElement(ElemMavenPlugin)
	plugin.CreateElement(ElemGroup).SetText(group)
	plugin.CreateElement(ElemArtifact).SetText(artifact)
	plugin.CreateElement(ElemVersion).SetText(version)
	return plugin
}

func newRRPersistence(uri string) *etree.Element {
	rr := etree.NewElement(ElemRRPersistence)
	rr.CreateElement(ElemURIString).SetText(uri)
	return rr
}
