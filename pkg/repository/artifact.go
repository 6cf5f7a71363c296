package repository

import (
	"fmt"
	"path"
	"strings"
)

// Artifact identifies one file in a Maven repository
type Artifact struct {
	Group      string
	Artifact   string
	Version    string
	Extension  string
	Classifier string
}

// NewJar returns the main jar of group:artifact:version
func NewJar(group, artifact, version string) Artifact {
	return Artifact{Group: group, Artifact: artifact, Version: version, Extension: "jar"}
}

func (a Artifact) String() string {
	if a.Classifier != "" {
		return fmt.Sprintf("%s:%s:%s:%s:%s", a.Group, a.Artifact, a.Extension, a.Classifier, a.Version)
	}
	return fmt.Sprintf("%s:%s:%s:%s", a.Group, a.Artifact, a.Extension, a.Version)
}

// IsSnapshot reports whether the version is a SNAPSHOT
func (a Artifact) IsSnapshot() bool {
	return strings.HasSuffix(a.Version, "SNAPSHOT")
}

// FileName returns the file name for a version, which differs from
// a.Version for timestamped snapshots
func (a Artifact) FileName(fileVersion string) string {
	name := a.Artifact + "-" + fileVersion
	if a.Classifier != "" {
		name += "-" + a.Classifier
	}
	ext := a.Extension
	if ext == "" {
		ext = "jar"
	}
	return name + "." + ext
}

// Path returns the repository relative path of the artifact
func (a Artifact) Path() string {
	return a.PathFor(a.Version)
}

// PathFor returns the repository relative path for a file version
func (a Artifact) PathFor(fileVersion string) string {
	return path.Join(GroupPath(a.Group), a.Artifact, a.Version, a.FileName(fileVersion))
}

// VersionMetadataPath returns the path of the version level metadata used by snapshots
func (a Artifact) VersionMetadataPath() string {
	return path.Join(GroupPath(a.Group), a.Artifact, a.Version, MetadataFile)
}

// GroupPath turns a group id into a path ("uk.ac.gate" -> "uk/ac/gate")
func GroupPath(group string) string {
	return strings.ReplaceAll(group, ".", "/")
}

// MetadataPath returns the path of the artifact level maven-metadata.xml
func MetadataPath(group, artifact string) string {
	return path.Join(GroupPath(group), artifact, MetadataFile)
}
