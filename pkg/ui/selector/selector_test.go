package selector

import (
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/xgappup/pkg/document"
	"github.com/arthur-debert/xgappup/pkg/testutil"
	"github.com/arthur-debert/xgappup/pkg/upgrade"
	"github.com/arthur-debert/xgappup/pkg/version"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapResolver map[string][]string

func (m mapResolver) ResolveVersions(ctx context.Context, group, artifact string) *version.Set {
	raw, ok := m[group+":"+artifact]
	if !ok {
		return nil
	}
	return version.ParseSet(raw...)
}

func newModel(t *testing.T) (Model, []*upgrade.Path) {
	t.Helper()
	doc, err := document.Parse(testutil.NewXGapp().
		Builtin("Tools").
		Directory("$relpath$plugins/Mine/").
		Directory("$relpath$plugins/Unknown/").
		Bytes())
	require.NoError(t, err)

	r := mapResolver{
		"uk.ac.gate.plugins:tools": {"1.0", "1.1", "2.0"},
		"uk.ac.gate.plugins:mine":  {"0.1", "0.2"},
		"com.example:unknown":      {"3.0", "3.1"},
	}
	paths, err := upgrade.Suggest(context.Background(), doc, r, upgrade.SuggestOptions{IncludeUnresolved: true})
	require.NoError(t, err)
	require.Len(t, paths, 3)
	return New(context.Background(), paths, r, Options{}), paths
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, string(r))
	}
	return m
}

func clearInput(t *testing.T, m Model) Model {
	t.Helper()
	for len(m.input) > 0 {
		m, _ = press(t, m, "backspace")
	}
	return m
}

func selected(p *upgrade.Path) string {
	v, _ := p.SelectedVersion()
	return v.String()
}

func TestNavigation(t *testing.T) {
	m, _ := newModel(t)

	m, _ = press(t, m, "down", "j")
	assert.Equal(t, 2, m.Cursor())

	m, _ = press(t, m, "down")
	assert.Equal(t, 2, m.Cursor(), "cursor stops at the last row")

	m, _ = press(t, m, "k", "up", "up")
	assert.Equal(t, 0, m.Cursor(), "cursor stops at the first row")
}

func TestCycleStrategy(t *testing.T) {
	tests := []struct {
		name string
		row  int
		want []upgrade.Strategy
	}{
		{"builtin", 0, []upgrade.Strategy{upgrade.Skip, upgrade.Upgrade}},
		{"directory", 1, []upgrade.Strategy{upgrade.PluginOnly, upgrade.Skip, upgrade.Upgrade}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, paths := newModel(t)
			m.cursor = tt.row
			for _, want := range tt.want {
				m, _ = press(t, m, "s")
				assert.Equal(t, want, paths[tt.row].Strategy())
			}
		})
	}
}

func TestCycleStrategy_Unresolved(t *testing.T) {
	m, paths := newModel(t)
	m, _ = press(t, m, "down", "down", " ")

	assert.Equal(t, upgrade.Skip, paths[2].Strategy())
	assert.Contains(t, m.Status(), "needs a target plugin first")
}

func TestStepVersion(t *testing.T) {
	m, paths := newModel(t)
	tools := paths[0]
	require.Equal(t, "2.0", selected(tools))

	m, _ = press(t, m, "left")
	assert.Equal(t, "1.1", selected(tools))

	m, _ = press(t, m, "h", "left")
	assert.Equal(t, "1.0", selected(tools), "stepping stops at the lowest version")

	m, _ = press(t, m, "right", "l", "l")
	assert.Equal(t, "2.0", selected(tools), "stepping stops at the highest version")

	m, _ = press(t, m, "s", "left")
	assert.Equal(t, "2.0", selected(tools))
	assert.Contains(t, m.Status(), "only be changed when the plugin is upgraded")
}

func TestEditCoordinates(t *testing.T) {
	m, paths := newModel(t)
	unknown := paths[2]

	m, _ = press(t, m, "down", "down", "e")
	require.True(t, m.Editing())
	assert.Equal(t, "uk.ac.gate.plugins:", string(m.input), "unresolved rows start from the default group")

	m = clearInput(t, m)
	m = typeText(t, m, "com.example:unknown")
	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	assert.False(t, m.Editing())

	m, _ = press(t, m, "s")
	assert.Equal(t, upgrade.Skip, unknown.Strategy(), "keys are ignored while resolving")

	next, _ := m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, upgrade.Upgrade, unknown.Strategy())
	assert.Equal(t, "com.example", unknown.GroupID())
	assert.Equal(t, "3.1", selected(unknown))
	assert.Contains(t, m.Status(), "now upgrades to")
}

func TestEditCoordinates_Prefilled(t *testing.T) {
	m, _ := newModel(t)
	m, _ = press(t, m, "e")
	assert.Equal(t, "uk.ac.gate.plugins:tools", string(m.input))

	m, _ = press(t, m, "esc")
	assert.False(t, m.Editing())
	assert.False(t, m.Cancelled(), "esc closes the input, not the editor")
}

func TestEditCoordinates_Invalid(t *testing.T) {
	m, paths := newModel(t)
	tools := paths[0]

	m, _ = press(t, m, "e")
	m = clearInput(t, m)
	m = typeText(t, m, "nonsense")
	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.True(t, m.Editing())
	assert.Contains(t, m.Status(), "is not group:artifact")

	m = clearInput(t, m)
	m = typeText(t, m, "bogus.group:bogus-artifact")
	m, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)

	next, _ := m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, "bogus.group:bogus-artifact is not a valid GATE plugin", m.Status())
	assert.Equal(t, "tools", tools.ArtifactID(), "failed edit leaves the plan alone")
	assert.Equal(t, "2.0", selected(tools))
}

func TestAcceptAndCancel(t *testing.T) {
	tests := []struct {
		key      string
		accepted bool
	}{
		{"enter", true},
		{"q", false},
		{"esc", false},
		{"ctrl+c", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, _ := newModel(t)
			m, cmd := press(t, m, tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Equal(t, tt.accepted, m.Accepted())
			assert.Equal(t, !tt.accepted, m.Cancelled())
		})
	}
}

func TestAccept_NoPaths(t *testing.T) {
	m := New(context.Background(), nil, mapResolver{}, Options{})
	m, _ = press(t, m, "down", "s", "enter")
	assert.True(t, m.Accepted())
	assert.Contains(t, m.View(), "No upgradable plugins")
}

func TestView(t *testing.T) {
	m, _ := newModel(t)
	m, _ = press(t, m, "e")

	view := m.View()
	for _, want := range []string{
		"Old plugin", "Upgrade?", "Pre-8.5 Tools (built-in)", "‹ 2.0 ›",
		`Directory plugin "Unknown"`, "Skip", "New plugin (group:artifact): uk.ac.gate.plugins:tools",
	} {
		assert.True(t, strings.Contains(view, want), "view should contain %q:\n%s", want, view)
	}
}
