package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
)

// SnapshotTimestamp is the build stamp used for SNAPSHOT jars
const SnapshotTimestamp = "20240115.093000-3"

// MavenServer is an in-process Maven 2 layout repository
type MavenServer struct {
	*httptest.Server

	mu        sync.Mutex
	artifacts map[string]*fakeArtifact
	requests  []string
	down      bool
	username  string
	password  string
}

type fakeArtifact struct {
	group    string
	artifact string
	versions []string
	jars     map[string][]byte
	failing  map[string]bool
}

// NewMavenServer starts a server that is closed when the test ends
func NewMavenServer(t testing.TB) *MavenServer {
	t.Helper()
	s := &MavenServer{artifacts: make(map[string]*fakeArtifact)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// AddPlugin publishes versions of group:artifact, each with a valid plugin jar
func (s *MavenServer) AddPlugin(t testing.TB, group, artifact string, versions ...string) {
	t.Helper()
	for _, v := range versions {
		s.AddVersion(group, artifact, v, PluginJar(t))
	}
}

// AddVersion lists a version in the metadata and serves jar for it.
// A nil jar lists the version without a file behind it.
func (s *MavenServer) AddVersion(group, artifact, version string, jar []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.artifact(group, artifact)
	a.versions = append(a.versions, version)
	if jar != nil {
		a.jars[version] = jar
	}
}

// FailVersion makes the jar of a version answer 500
func (s *MavenServer) FailVersion(group, artifact, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact(group, artifact).failing[version] = true
}

// SetDown makes every request answer 503
func (s *MavenServer) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

// RequireAuth rejects requests without these basic auth credentials
func (s *MavenServer) RequireAuth(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username, s.password = username, password
}

// Requests returns the paths requested so far
func (s *MavenServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount counts requests whose path ends with suffix
func (s *MavenServer) RequestCount(suffix string) int {
	n := 0
	for _, r := range s.Requests() {
		if strings.HasSuffix(r, suffix) {
			n++
		}
	}
	return n
}

func (s *MavenServer) artifact(group, artifact string) *fakeArtifact {
	key := group + ":" + artifact
	a, ok := s.artifacts[key]
	if !ok {
		a = &fakeArtifact{
			group:    group,
			artifact: artifact,
			jars:     make(map[string][]byte),
			failing:  make(map[string]bool),
		}
		s.artifacts[key] = a
	}
	return a
}

func (s *MavenServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	s.requests = append(s.requests, path)

	if s.down {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
		return
	}
	if s.username != "" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.username || pass != s.password {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	for _, a := range s.artifacts {
		prefix := strings.ReplaceAll(a.group, ".", "/") + "/" + a.artifact + "/"
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := strings.TrimPrefix(path, prefix)
		if rest == "maven-metadata.xml" {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = fmt.Fprint(w, a.metadata())
			return
		}
		for _, v := range a.versions {
			if rest == v+"/maven-metadata.xml" && strings.HasSuffix(v, "SNAPSHOT") {
				_, _ = fmt.Fprint(w, a.snapshotMetadata(v))
				return
			}
			if rest != v+"/"+a.artifact+"-"+fileVersion(v)+".jar" {
				continue
			}
			if a.failing[v] {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			jar, ok := a.jars[v]
			if !ok {
				break
			}
			w.Header().Set("Content-Type", "application/java-archive")
			_, _ = w.Write(jar)
			return
		}
	}
	http.NotFound(w, r)
}

func (a *fakeArtifact) metadata() string {
	versions := append([]string(nil), a.versions...)
	sort.Strings(versions)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<metadata>\n")
	fmt.Fprintf(&b, "  <groupId>%s</groupId>\n  <artifactId>%s</artifactId>\n", a.group, a.artifact)
	b.WriteString("  <versioning>\n    <versions>\n")
	for _, v := range versions {
		fmt.Fprintf(&b, "      <version>%s</version>\n", v)
	}
	b.WriteString("    </versions>\n  </versioning>\n</metadata>\n")
	return b.String()
}

func (a *fakeArtifact) snapshotMetadata(v string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<metadata modelVersion="1.1.0">
  <groupId>%s</groupId>
  <artifactId>%s</artifactId>
  <version>%s</version>
  <versioning>
    <snapshot><timestamp>20240115.093000</timestamp><buildNumber>3</buildNumber></snapshot>
    <snapshotVersions>
      <snapshotVersion><extension>pom</extension><value>%s</value></snapshotVersion>
      <snapshotVersion><extension>jar</extension><value>%s</value></snapshotVersion>
    </snapshotVersions>
  </versioning>
</metadata>
`, a.group, a.artifact, v, fileVersion(v), fileVersion(v))
}

// fileVersion maps 1.0-SNAPSHOT to its timestamped file version
func fileVersion(v string) string {
	if strings.HasSuffix(v, "-SNAPSHOT") {
		return strings.TrimSuffix(v, "SNAPSHOT") + SnapshotTimestamp
	}
	return v
}
