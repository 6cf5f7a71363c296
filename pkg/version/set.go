package version

import "sort"

// Set is an ascending, duplicate-free list of versions. A nil *Set means
// "no versions known" and behaves like an empty set.
type Set struct {
	versions []Version
}

// NewSet builds a set from versions in any order. Equivalent versions
// ("1.0", "1") keep the first spelling seen.
func NewSet(versions ...Version) *Set {
	s := &Set{}
	for _, v := range versions {
		s.add(v)
	}
	return s
}

// ParseSet parses every string, skipping those that fail
func ParseSet(raw ...string) *Set {
	s := &Set{}
	for _, r := range raw {
		if v, err := Parse(r); err == nil {
			s.add(v)
		}
	}
	return s
}

func (s *Set) add(v Version) {
	i := sort.Search(len(s.versions), func(i int) bool { return Compare(s.versions[i], v) >= 0 })
	if i < len(s.versions) && Compare(s.versions[i], v) == 0 {
		return
	}
	s.versions = append(s.versions, Version{})
	copy(s.versions[i+1:], s.versions[i:])
	s.versions[i] = v
}

// Len returns the number of versions
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.versions)
}

// Empty reports whether the set is nil or has no versions
func (s *Set) Empty() bool { return s.Len() == 0 }

// Index returns the position of v, or -1
func (s *Set) Index(v Version) int {
	if s == nil {
		return -1
	}
	i := sort.Search(len(s.versions), func(i int) bool { return Compare(s.versions[i], v) >= 0 })
	if i < len(s.versions) && Compare(s.versions[i], v) == 0 {
		return i
	}
	return -1
}

// Contains reports membership
func (s *Set) Contains(v Version) bool { return s.Index(v) >= 0 }

// At returns the i-th lowest version
func (s *Set) At(i int) Version { return s.versions[i] }

// Highest returns the highest version
func (s *Set) Highest() (Version, bool) {
	if s.Empty() {
		return Version{}, false
	}
	return s.versions[len(s.versions)-1], true
}

// Versions returns a copy of the versions in ascending order
func (s *Set) Versions() []Version {
	if s == nil {
		return nil
	}
	out := make([]Version, len(s.versions))
	copy(out, s.versions)
	return out
}

// Strings returns the versions as written, ascending
func (s *Set) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.versions))
	for i, v := range s.versions {
		out[i] = v.String()
	}
	return out
}

// Filter returns the versions for which keep is true
func (s *Set) Filter(keep func(int, Version) bool) *Set {
	out := &Set{}
	if s == nil {
		return out
	}
	for i, v := range s.versions {
		if keep(i, v) {
			out.versions = append(out.versions, v)
		}
	}
	return out
}

// Union returns a set with the versions of both sets
func (s *Set) Union(o *Set) *Set {
	out := &Set{versions: s.Versions()}
	for _, v := range o.Versions() {
		out.add(v)
	}
	return out
}
