package repository

import (
	"strings"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/beevik/etree"
)

// MetadataFile is the name of repository metadata files
const MetadataFile = "maven-metadata.xml"

// Metadata is the part of maven-metadata.xml xgappup reads
type Metadata struct {
	Group            string
	Artifact         string
	Version          string
	Latest           string
	Release          string
	Versions         []string
	Timestamp        string
	BuildNumber      string
	SnapshotVersions []SnapshotVersion
}

// SnapshotVersion maps one snapshot file to its timestamped version
type SnapshotVersion struct {
	Extension  string
	Classifier string
	Value      string
}

// ParseMetadata parses a maven-metadata.xml document
func ParseMetadata(data []byte) (*Metadata, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrRepository, "invalid maven-metadata.xml")
	}
	root := doc.SelectElement("metadata")
	if root == nil {
		return nil, errors.New(errors.ErrRepository, "maven-metadata.xml has no metadata element")
	}

	md := &Metadata{
		Group:    childText(root, "groupId"),
		Artifact: childText(root, "artifactId"),
		Version:  childText(root, "version"),
	}

	versioning := root.SelectElement("versioning")
	if versioning == nil {
		return md, nil
	}
	md.Latest = childText(versioning, "latest")
	md.Release = childText(versioning, "release")
	for _, v := range versioning.FindElements("versions/version") {
		if text := strings.TrimSpace(v.Text()); text != "" {
			md.Versions = append(md.Versions, text)
		}
	}
	if snapshot := versioning.SelectElement("snapshot"); snapshot != nil {
		md.Timestamp = childText(snapshot, "timestamp")
		md.BuildNumber = childText(snapshot, "buildNumber")
	}
	for _, sv := range versioning.FindElements("snapshotVersions/snapshotVersion") {
		md.SnapshotVersions = append(md.SnapshotVersions, SnapshotVersion{
			Extension:  childText(sv, "extension"),
			Classifier: childText(sv, "classifier"),
			Value:      childText(sv, "value"),
		})
	}
	return md, nil
}

// SnapshotFileVersion returns the timestamped file version of a snapshot
// artifact, or "" when the metadata does not know it
func (m *Metadata) SnapshotFileVersion(a Artifact) string {
	ext := a.Extension
	if ext == "" {
		ext = "jar"
	}
	for _, sv := range m.SnapshotVersions {
		if sv.Extension == ext && sv.Classifier == a.Classifier && sv.Value != "" {
			return sv.Value
		}
	}
	if m.Timestamp != "" && m.BuildNumber != "" {
		return strings.TrimSuffix(a.Version, "SNAPSHOT") + m.Timestamp + "-" + m.BuildNumber
	}
	return ""
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
