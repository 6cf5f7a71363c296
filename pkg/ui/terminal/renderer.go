// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/xgappup/pkg/display"
	"github.com/arthur-debert/xgappup/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pterm/pterm"
)

// Renderer draws views with the lipgloss theme from pkg/style
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders a display view with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	var out string
	switch v := result.(type) {
	case *display.PlanView:
		out = renderPlan(v)
	case *display.ResultView:
		out = renderResult(v)
	case *display.VersionsView:
		out = renderVersions(v)
	case *display.ConfigView:
		out = renderConfig(v)
	default:
		out = fmt.Sprintf("%+v", result)
	}
	_, err := fmt.Fprintln(r.output, out)
	return err
}

func renderPlan(v *display.PlanView) string {
	if len(v.Plugins) == 0 {
		return style.MutedStyle.Render(fmt.Sprintf(display.MsgNoPlugins, v.File))
	}

	rows := make([][]string, 0, len(v.Plugins))
	for _, p := range v.Plugins {
		target := p.Target
		if p.NoOp && p.Strategy != "skip" {
			target += " " + display.MsgNoOpMarker
		}
		rows = append(rows, []string{p.OldPlugin, p.NewPlugin, p.Strategy, target, strings.Join(p.Versions, ", ")})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.BorderColor)).
		Headers(display.MsgColOldPlugin, display.MsgColNewPlugin, display.MsgColStrategy,
			display.MsgColTarget, display.MsgColAvailable).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.HeaderStyle.Padding(0, 1)
			}
			p := v.Plugins[row]
			switch col {
			case 2:
				return style.StrategyStyle(p.Strategy).Padding(0, 1)
			case 3:
				return style.VersionStyle.Padding(0, 1)
			case 4:
				return style.MutedStyle.Padding(0, 1)
			}
			if p.NoOp {
				return style.MutedStyle.Padding(0, 1)
			}
			return cell
		})

	var b strings.Builder
	b.WriteString(style.TitleStyle.Render(v.File) + "\n")
	b.WriteString(t.Render())
	for _, o := range v.UnusedOverrides {
		b.WriteString("\n" + style.WarningIndicator + " " + fmt.Sprintf(display.MsgUnusedOverride, style.PathStyle.Render(o)))
	}
	return b.String()
}

func renderResult(v *display.ResultView) string {
	switch {
	case v.Cancelled:
		return pterm.Warning.Sprint(fmt.Sprintf(display.MsgCancelled, v.File))
	case v.NothingToDo:
		return pterm.Info.Sprint(display.MsgNothingToDo)
	}

	var b strings.Builder
	if v.DryRun {
		b.WriteString(style.SubtitleStyle.Render(fmt.Sprintf(display.MsgWouldUpgrade, len(v.Plugins), len(v.Resources), v.File)))
	} else {
		b.WriteString(pterm.Success.Sprint(fmt.Sprintf(display.MsgUpgradedFormat, len(v.Plugins), len(v.Resources), v.File)))
	}
	b.WriteString("\n")

	for _, c := range v.Plugins {
		b.WriteString(style.Indent(fmt.Sprintf("%s %s → %s", style.SuccessIndicator,
			style.PathStyle.Render(c.OldPath), style.UpgradeStyle.Render(c.NewPath)), 1) + "\n")
	}
	for _, c := range v.Resources {
		b.WriteString(style.Indent(fmt.Sprintf("%s %s → %s", style.InfoIndicator,
			style.MutedStyle.Render(c.Old), c.New), 2) + "\n")
	}

	if v.DryRun {
		b.WriteString(style.WarningStyle.Render(display.MsgDryRun))
	} else if v.Written && v.BackupPath != "" {
		b.WriteString(style.MutedStyle.Render(fmt.Sprintf(display.MsgBackupFormat, v.BackupPath)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderVersions(v *display.VersionsView) string {
	if len(v.Versions) == 0 {
		return pterm.Warning.Sprint(fmt.Sprintf(display.MsgNoVersions, v.Group, v.Artifact))
	}
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render(v.Group+":"+v.Artifact) + "\n")
	for i := len(v.Versions) - 1; i >= 0; i-- {
		ver := v.Versions[i]
		if ver == v.Highest {
			b.WriteString(style.Indent(style.VersionStyle.Bold(true).Render(ver)+" "+style.MutedStyle.Render(display.MsgHighestMarker), 1) + "\n")
			continue
		}
		b.WriteString(style.Indent(ver, 1) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderConfig(v *display.ConfigView) string {
	if len(v.FilesWritten) == 0 {
		return strings.TrimRight(v.Content, "\n")
	}
	lines := make([]string, 0, len(v.FilesWritten))
	for _, f := range v.FilesWritten {
		lines = append(lines, pterm.Success.Sprint(fmt.Sprintf(display.MsgConfigWritten, style.PathStyle.Render(f))))
	}
	return strings.Join(lines, "\n")
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, style.ErrorIndicator+" "+style.ErrorStyle.Render("Error:")+" "+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, pterm.Info.Sprint(msg))
	return err
}
