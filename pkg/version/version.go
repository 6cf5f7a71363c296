package version

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/xgappup/pkg/errors"
)

// item kinds, ordered
const (
	kindQualifier = 2
	kindString    = 3
	kindInt       = 4
)

var qualifiers = map[string]int{
	"alpha":     -5,
	"beta":      -4,
	"milestone": -3,
	"cr":        -2,
	"rc":        -2,
	"snapshot":  -1,
	"ga":        0,
	"final":     0,
	"release":   0,
	"":          0,
	"sp":        1,
}

type item struct {
	kind   int
	digits string // kindInt, without leading zeros
	text   string // kindString, lower case
	rank   int    // kindQualifier
}

func (i item) isNumber() bool { return i.kind == kindInt }

func (i item) compare(o item) int {
	if i.kind != o.kind {
		return sign(i.kind - o.kind)
	}
	switch i.kind {
	case kindInt:
		if len(i.digits) != len(o.digits) {
			return sign(len(i.digits) - len(o.digits))
		}
		return strings.Compare(i.digits, o.digits)
	case kindString:
		return strings.Compare(i.text, o.text)
	default:
		return sign(i.rank - o.rank)
	}
}

// padding compares the item with an absent item
func (i item) padding() int {
	switch i.kind {
	case kindInt:
		if i.digits == "0" {
			return 0
		}
		return 1
	case kindString:
		return 1
	default:
		return sign(i.rank)
	}
}

// Version is a parsed Maven version. The zero value is not a valid version.
type Version struct {
	raw   string
	items []item
}

// Parse parses a version string. Empty strings and strings containing
// whitespace or range syntax are rejected.
func Parse(s string) (Version, error) {
	if strings.TrimSpace(s) == "" {
		return Version{}, errors.New(errors.ErrVersionParse, "empty version")
	}
	if i := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("[](),", r)
	}); i >= 0 {
		return Version{}, errors.Newf(errors.ErrVersionParse, "invalid character %q in version %q", s[i], s).
			WithDetail("version", s)
	}
	return Version{raw: s, items: trimPadding(tokenize(s))}, nil
}

// MustParse is Parse for literals, panicking on error
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as it was written
func (v Version) String() string { return v.raw }

// IsZero reports whether v is the zero Version
func (v Version) IsZero() bool { return v.raw == "" }

// IsSnapshot reports whether the version is a SNAPSHOT
func (v Version) IsSnapshot() bool {
	return strings.HasSuffix(strings.ToUpper(v.raw), "SNAPSHOT")
}

// MarshalText implements encoding.TextMarshaler
func (v Version) MarshalText() ([]byte, error) { return []byte(v.raw), nil }

// Equal reports whether the versions are equivalent ("1.0" equals "1")
func (v Version) Equal(o Version) bool { return Compare(v, o) == 0 }

// Less reports whether v sorts before o
func (v Version) Less(o Version) bool { return Compare(v, o) < 0 }

// Compare returns -1, 0 or 1 ordering a against b
func Compare(a, b Version) int {
	these, those := a.items, b.items
	number := true
	for i := 0; ; i++ {
		switch {
		case i >= len(these) && i >= len(those):
			return 0
		case i >= len(these):
			return -comparePadding(those, i, nil)
		case i >= len(those):
			return comparePadding(these, i, nil)
		}

		this, that := these[i], those[i]
		if this.isNumber() != that.isNumber() {
			if number == this.isNumber() {
				return comparePadding(these, i, &number)
			}
			return -comparePadding(those, i, &number)
		}
		if rel := this.compare(that); rel != 0 {
			return rel
		}
		number = this.isNumber()
	}
}

func comparePadding(items []item, from int, number *bool) int {
	rel := 0
	for _, it := range items[from:] {
		if number != nil && *number != it.isNumber() {
			break
		}
		if rel = it.padding(); rel != 0 {
			break
		}
	}
	return rel
}

func tokenize(s string) []item {
	var items []item
	for i := 0; i < len(s); {
		start := i
		state := -2 // -2 start, -1 letters, 0 zeros so far, 1 digits
		end := len(s)
		terminatedByNumber := false

	scan:
		for ; i < len(s); i++ {
			c := s[i]
			switch {
			case c == '.' || c == '-' || c == '_':
				end = i
				i++
				break scan
			case c >= '0' && c <= '9':
				if state == -1 {
					end = i
					terminatedByNumber = true
					break scan
				}
				if state == 0 {
					start++
				}
				if state > 0 || c > '0' {
					state = 1
				} else {
					state = 0
				}
			default:
				if state >= 0 {
					end = i
					break scan
				}
				state = -1
			}
		}

		if end-start <= 0 {
			items = append(items, item{kind: kindInt, digits: "0"})
			continue
		}
		token := s[start:end]
		if state >= 0 {
			items = append(items, item{kind: kindInt, digits: token})
			continue
		}
		items = append(items, textItem(strings.ToLower(token), terminatedByNumber))
	}
	if len(items) == 0 {
		items = append(items, item{kind: kindInt, digits: "0"})
	}
	return items
}

func textItem(token string, terminatedByNumber bool) item {
	if terminatedByNumber && len(token) == 1 {
		switch token {
		case "a":
			token = "alpha"
		case "b":
			token = "beta"
		case "m":
			token = "milestone"
		}
	}
	if rank, ok := qualifiers[token]; ok {
		return item{kind: kindQualifier, rank: rank}
	}
	return item{kind: kindString, text: token}
}

// trimPadding drops trailing items equal to padding within each run of
// numbers or non-numbers
func trimPadding(items []item) []item {
	numberSet := false
	number := false
	end := len(items) - 1
	for i := end; i > 0; i-- {
		it := items[i]
		if !numberSet || number != it.isNumber() {
			end = i
			number = it.isNumber()
			numberSet = true
		}
		if end == i && (i == len(items)-1 || items[i-1].isNumber() == it.isNumber()) && it.padding() == 0 {
			items = append(items[:i], items[i+1:]...)
			end--
		}
	}
	return items
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
