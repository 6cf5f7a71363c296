package upgrade

import (
	"strings"

	"github.com/arthur-debert/xgappup/pkg/document"
	"github.com/arthur-debert/xgappup/pkg/errors"
)

// Strategy decides what happens to one plugin reference
type Strategy int

const (
	// Upgrade replaces the plugin and rewrites its resource references
	Upgrade Strategy = iota
	// PluginOnly replaces the plugin and leaves resource references alone
	PluginOnly
	// Skip leaves the plugin as it is
	Skip
)

var strategyInfo = map[Strategy]struct {
	name, label, tooltip string
	plugin, resources    bool
}{
	Upgrade:    {"upgrade", "Upgrade", "Upgrade the plugin and its resource references", true, true},
	PluginOnly: {"plugin-only", "Plugin only", "Upgrade the plugin but leave resource references", true, false},
	Skip:       {"skip", "Skip", "Leave this plugin as it is", false, false},
}

// Strategies lists every strategy in display order
func Strategies() []Strategy {
	return []Strategy{Upgrade, PluginOnly, Skip}
}

// String returns the machine name ("plugin-only")
func (s Strategy) String() string {
	if info, ok := strategyInfo[s]; ok {
		return info.name
	}
	return "unknown"
}

// Label returns the display name ("Plugin only")
func (s Strategy) Label() string { return strategyInfo[s].label }

// Tooltip returns a one line explanation
func (s Strategy) Tooltip() string { return strategyInfo[s].tooltip }

// UpgradesPlugin reports whether the plugin entry is replaced, which is
// also when the target version can be chosen
func (s Strategy) UpgradesPlugin() bool { return strategyInfo[s].plugin }

// UpgradesResources reports whether resource URLs are rewritten
func (s Strategy) UpgradesResources() bool { return strategyInfo[s].resources }

// MarshalText implements encoding.TextMarshaler
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ParseStrategy accepts machine names and labels in any case
func ParseStrategy(s string) (Strategy, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "-", "_", "-").Replace(norm)
	for _, st := range Strategies() {
		if norm == st.String() {
			return st, nil
		}
	}
	return Skip, errors.Newf(errors.ErrInvalidArgument, "unknown strategy %q (want upgrade, plugin-only or skip)", s).
		WithDetail("strategy", s)
}

// AllowedStrategies returns the strategies a reference kind supports.
// Only directory plugins can keep their resources where they are.
func AllowedStrategies(kind document.Kind) []Strategy {
	if kind == document.KindDirectory {
		return []Strategy{Upgrade, PluginOnly, Skip}
	}
	return []Strategy{Upgrade, Skip}
}

func isAllowed(kind document.Kind, s Strategy) bool {
	for _, allowed := range AllowedStrategies(kind) {
		if allowed == s {
			return true
		}
	}
	return false
}
