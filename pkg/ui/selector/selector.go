// Package selector is the interactive plan editor. It shows one row per
// plan and changes plans only through the mutation methods of
// upgrade.Path, so every edit keeps the plan consistent.
package selector

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/style"
	"github.com/arthur-debert/xgappup/pkg/upgrade"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const helpLine = "↑/↓ move • s cycle strategy • ←/→ version • e edit plugin • enter accept • q cancel"

// Options configures the editor
type Options struct {
	DefaultGroup string
	// Input and Output replace the terminal, mostly for tests
	Input  io.Reader
	Output io.Writer
}

// Model is the bubbletea model of the editor
type Model struct {
	ctx          context.Context
	paths        []*upgrade.Path
	resolver     upgrade.VersionResolver
	defaultGroup string

	cursor    int
	editing   bool
	input     []rune
	busy      bool
	status    string
	accepted  bool
	cancelled bool
	width     int
}

// coordinatesMsg reports that versions for an edited plugin are resolved
type coordinatesMsg struct {
	row      int
	group    string
	artifact string
}

// New returns an editor over paths
func New(ctx context.Context, paths []*upgrade.Path, r upgrade.VersionResolver, opts Options) Model {
	group := opts.DefaultGroup
	if group == "" {
		group = upgrade.DefaultGroup
	}
	return Model{
		ctx:          ctx,
		paths:        paths,
		resolver:     r,
		defaultGroup: group,
	}
}

// Accepted reports whether the user confirmed the plans
func (m Model) Accepted() bool { return m.accepted }

// Cancelled reports whether the user abandoned the editor
func (m Model) Cancelled() bool { return m.cancelled }

// Status returns the status line
func (m Model) Status() string { return m.status }

// Cursor returns the selected row
func (m Model) Cursor() int { return m.cursor }

// Editing reports whether the coordinate input is open
func (m Model) Editing() bool { return m.editing }

// Init implements tea.Model
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case coordinatesMsg:
		m.busy = false
		p := m.paths[msg.row]
		if err := p.SetCoordinates(m.ctx, m.resolver, msg.group, msg.artifact); err != nil {
			m.status = describe(err)
			return m, nil
		}
		m.status = fmt.Sprintf("%s now upgrades to %s", upgrade.OldPluginLabel(p, m.defaultGroup), upgrade.NewPluginLabel(p, m.defaultGroup))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if m.editing {
			return m.updateInput(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.paths) == 0 {
		switch msg.String() {
		case "enter":
			m.accepted = true
			return m, tea.Quit
		case "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil
	}

	p := m.paths[m.cursor]
	switch msg.String() {
	case "q", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "enter":
		m.accepted = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.status = ""

	case "down", "j":
		if m.cursor < len(m.paths)-1 {
			m.cursor++
		}
		m.status = ""

	case "s", " ":
		m.status = cycleStrategy(p)

	case "left", "h":
		m.status = stepVersion(p, -1)

	case "right", "l":
		m.status = stepVersion(p, 1)

	case "e":
		m.editing = true
		if p.HasCoordinates() {
			m.input = []rune(p.GroupID() + ":" + p.ArtifactID())
		} else {
			m.input = []rune(m.defaultGroup + ":")
		}
		m.status = ""
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input = nil
		return m, nil

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	case tea.KeyEnter:
		group, artifact, ok := splitCoordinates(string(m.input))
		if !ok {
			m.status = fmt.Sprintf("%q is not group:artifact", string(m.input))
			return m, nil
		}
		m.editing = false
		m.input = nil
		m.busy = true
		m.status = fmt.Sprintf("Resolving %s:%s…", group, artifact)
		return m, m.resolveCmd(m.cursor, group, artifact)

	case tea.KeyRunes, tea.KeySpace:
		m.input = append(m.input, msg.Runes...)
		return m, nil
	}
	return m, nil
}

// resolveCmd warms the resolver off the update loop; the plan itself is
// changed in Update once the versions are known
func (m Model) resolveCmd(row int, group, artifact string) tea.Cmd {
	ctx, r := m.ctx, m.resolver
	return func() tea.Msg {
		r.ResolveVersions(ctx, group, artifact)
		return coordinatesMsg{row: row, group: group, artifact: artifact}
	}
}

func splitCoordinates(s string) (string, string, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return "", "", false
	}
	group, artifact := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if group == "" || artifact == "" {
		return "", "", false
	}
	return group, artifact, true
}

// cycleStrategy moves to the next allowed strategy that the plan accepts
func cycleStrategy(p *upgrade.Path) string {
	allowed := p.AllowedStrategies()
	start := 0
	for i, s := range allowed {
		if s == p.Strategy() {
			start = i
			break
		}
	}
	var lastErr error
	for step := 1; step < len(allowed); step++ {
		next := allowed[(start+step)%len(allowed)]
		if err := p.SetStrategy(next); err != nil {
			lastErr = err
			continue
		}
		return ""
	}
	if lastErr != nil {
		return describe(lastErr)
	}
	return ""
}

// stepVersion selects the neighbouring version in the version set
func stepVersion(p *upgrade.Path, delta int) string {
	if !p.VersionEditable() {
		return "Version can only be changed when the plugin is upgraded"
	}
	versions := p.Versions()
	selected, _ := p.SelectedVersion()
	idx := versions.Index(selected) + delta
	if idx < 0 || idx >= versions.Len() {
		return ""
	}
	if err := p.SetSelectedVersion(versions.At(idx)); err != nil {
		return describe(err)
	}
	return ""
}

// describe turns plan errors into status line text
func describe(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Upgrade plugins") + "\n")

	if len(m.paths) == 0 {
		b.WriteString(style.MutedStyle.Render("No upgradable plugins") + "\n")
	} else {
		b.WriteString(m.renderTable() + "\n")
	}

	if m.editing {
		b.WriteString(fmt.Sprintf("New plugin (group:artifact): %s█\n", string(m.input)))
	}
	if m.status != "" {
		b.WriteString(style.StatusLineStyle.Render(m.status) + "\n")
	}
	b.WriteString(style.MutedStyle.Render(helpLine))
	return b.String()
}

func (m Model) renderTable() string {
	rows := make([][]string, 0, len(m.paths))
	for _, p := range m.paths {
		target := ""
		if v, ok := p.SelectedVersion(); ok {
			target = v.String()
			if p.VersionEditable() {
				target = "‹ " + target + " ›"
			}
		}
		rows = append(rows, []string{
			upgrade.OldPluginLabel(p, m.defaultGroup),
			upgrade.NewPluginLabel(p, m.defaultGroup),
			p.Strategy().Label(),
			target,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.BorderColor)).
		Headers("Old plugin", "New plugin", "Upgrade?", "Target version").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return style.HeaderStyle.Padding(0, 1)
			case row == m.cursor:
				return style.SelectedRowStyle.Padding(0, 1)
			case col == 2:
				return style.StrategyStyle(m.paths[row].Strategy().String()).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	if m.width > 0 {
		t = t.Width(m.width)
	}
	return t.Render()
}

// Run shows the editor and reports whether the user accepted the plans
func Run(ctx context.Context, paths []*upgrade.Path, r upgrade.VersionResolver, opts Options) (bool, error) {
	logger := logging.GetLogger("selector")

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	} else {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(New(ctx, paths, r, opts), programOpts...).Run()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "plan editor failed")
	}
	m, ok := final.(Model)
	if !ok {
		return false, errors.New(errors.ErrInternal, "plan editor returned an unexpected model")
	}
	logger.Debug().Bool("accepted", m.Accepted()).Msg("Plan editor closed")
	return m.Accepted(), nil
}

// Editor runs the interactive editor for the upgrade command
type Editor struct {
	Options Options
}

// Edit implements the upgrade command's editor hook
func (e Editor) Edit(ctx context.Context, paths []*upgrade.Path, r upgrade.VersionResolver) (bool, error) {
	return Run(ctx, paths, r, e.Options)
}
