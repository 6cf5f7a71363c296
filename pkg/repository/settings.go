package repository

import (
	"os"
	"regexp"
	"strings"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/beevik/etree"
)

// Settings is the part of a Maven settings.xml xgappup understands
type Settings struct {
	LocalRepository string
	Offline         bool
	Servers         []Server
	Mirrors         []Mirror
	Profiles        []Profile
	ActiveProfiles  []string
}

// Server holds credentials for a repository or mirror id
type Server struct {
	ID       string
	Username string
	Password string
}

// Mirror redirects requests for the repositories matched by MirrorOf
type Mirror struct {
	ID       string
	URL      string
	MirrorOf string
}

// Profile is a settings profile contributing repositories
type Profile struct {
	ID              string
	ActiveByDefault bool
	Repositories    []Remote
}

var propertyPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadSettings reads a Maven settings.xml
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "settings file %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrSettings, "failed to read settings file %s", path)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ParseSettings parses settings.xml content. ${user.home} and ${env.NAME}
// are expanded in every value.
func ParseSettings(data []byte) (*Settings, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettings, "invalid settings.xml")
	}
	root := doc.SelectElement("settings")
	if root == nil {
		return nil, errors.New(errors.ErrSettings, "settings.xml has no settings element")
	}

	s := &Settings{
		LocalRepository: settingText(root, "localRepository"),
		Offline:         strings.EqualFold(settingText(root, "offline"), "true"),
	}

	for _, el := range root.FindElements("servers/server") {
		s.Servers = append(s.Servers, Server{
			ID:       settingText(el, "id"),
			Username: settingText(el, "username"),
			Password: settingText(el, "password"),
		})
	}

	for _, el := range root.FindElements("mirrors/mirror") {
		s.Mirrors = append(s.Mirrors, Mirror{
			ID:       settingText(el, "id"),
			URL:      settingText(el, "url"),
			MirrorOf: settingText(el, "mirrorOf"),
		})
	}

	for _, el := range root.FindElements("profiles/profile") {
		p := Profile{
			ID:              settingText(el, "id"),
			ActiveByDefault: strings.EqualFold(settingText(el, "activation/activeByDefault"), "true"),
		}
		for _, repo := range el.FindElements("repositories/repository") {
			p.Repositories = append(p.Repositories, Remote{
				ID:  settingText(repo, "id"),
				URL: settingText(repo, "url"),
			})
		}
		s.Profiles = append(s.Profiles, p)
	}

	for _, el := range root.FindElements("activeProfiles/activeProfile") {
		if id := strings.TrimSpace(el.Text()); id != "" {
			s.ActiveProfiles = append(s.ActiveProfiles, id)
		}
	}

	return s, nil
}

// ActiveRepositories returns the repositories of active profiles, in profile order
func (s *Settings) ActiveRepositories() []Remote {
	active := make(map[string]bool, len(s.ActiveProfiles))
	for _, id := range s.ActiveProfiles {
		active[id] = true
	}

	var remotes []Remote
	for _, p := range s.Profiles {
		if p.ActiveByDefault || active[p.ID] {
			remotes = append(remotes, p.Repositories...)
		}
	}
	return remotes
}

// Server returns the server entry for an id
func (s *Settings) Server(id string) (Server, bool) {
	for _, srv := range s.Servers {
		if srv.ID == id {
			return srv, true
		}
	}
	return Server{}, false
}

// MirrorFor returns the mirror serving remote, or nil. An exact id match
// wins over patterns; otherwise the first matching mirror is used.
func (s *Settings) MirrorFor(remote Remote) *Mirror {
	for i, m := range s.Mirrors {
		if m.MirrorOf == remote.ID {
			return &s.Mirrors[i]
		}
	}
	for i, m := range s.Mirrors {
		if mirrorMatches(m.MirrorOf, remote) {
			return &s.Mirrors[i]
		}
	}
	return nil
}

// Apply routes remotes through their mirrors, drops duplicates and
// attaches server credentials
func (s *Settings) Apply(remotes []Remote) []Remote {
	seen := make(map[string]bool)
	var out []Remote
	for _, r := range remotes {
		if m := s.MirrorFor(r); m != nil {
			r = Remote{ID: m.ID, URL: m.URL}
		}
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true

		if srv, ok := s.Server(r.ID); ok && r.Username == "" {
			r.Username = srv.Username
			r.Password = srv.Password
		}
		out = append(out, r)
	}
	return out
}

// mirrorMatches implements mirrorOf patterns: "*", "external:*",
// comma separated ids and "!id" exclusions
func mirrorMatches(pattern string, remote Remote) bool {
	matched := false
	for _, part := range strings.Split(pattern, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case strings.HasPrefix(part, "!"):
			if part[1:] == remote.ID {
				return false
			}
		case part == "*":
			matched = true
		case part == "external:*":
			if !remote.IsLocalhost() {
				matched = true
			}
		case part == remote.ID:
			matched = true
		}
	}
	return matched
}

func settingText(el *etree.Element, path string) string {
	child := el.FindElement(path)
	if child == nil {
		return ""
	}
	return expandProperties(strings.TrimSpace(child.Text()))
}

func expandProperties(value string) string {
	return propertyPattern.ReplaceAllStringFunc(value, func(m string) string {
		name := m[2 : len(m)-1]
		switch {
		case name == "user.home":
			if home, err := os.UserHomeDir(); err == nil {
				return home
			}
		case strings.HasPrefix(name, "env."):
			if v, ok := os.LookupEnv(strings.TrimPrefix(name, "env.")); ok {
				return v
			}
		}
		return m
	})
}
