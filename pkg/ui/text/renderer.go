// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/xgappup/pkg/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a display view as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.PlanView:
		return r.renderPlan(v)
	case *display.ResultView:
		return r.renderResult(v)
	case *display.VersionsView:
		return r.renderVersions(v)
	case *display.ConfigView:
		return r.renderConfig(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderPlan(v *display.PlanView) error {
	if len(v.Plugins) == 0 {
		_, err := fmt.Fprintf(r.output, display.MsgNoPlugins+"\n", v.File)
		return err
	}

	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		display.MsgColOldPlugin, display.MsgColNewPlugin, display.MsgColStrategy,
		display.MsgColTarget, display.MsgColAvailable)
	for _, p := range v.Plugins {
		target := p.Target
		if p.NoOp && p.Strategy != "skip" {
			target += " " + display.MsgNoOpMarker
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.OldPlugin, p.NewPlugin, p.Strategy, target, strings.Join(p.Versions, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, o := range v.UnusedOverrides {
		if _, err := fmt.Fprintf(r.output, display.MsgUnusedOverride+"\n", o); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderResult(v *display.ResultView) error {
	switch {
	case v.Cancelled:
		_, err := fmt.Fprintf(r.output, display.MsgCancelled+"\n", v.File)
		return err
	case v.NothingToDo:
		_, err := fmt.Fprintln(r.output, display.MsgNothingToDo)
		return err
	}

	format := display.MsgUpgradedFormat
	if v.DryRun {
		format = display.MsgWouldUpgrade
	}
	fmt.Fprintf(r.output, format+"\n", len(v.Plugins), len(v.Resources), v.File)
	for _, c := range v.Plugins {
		fmt.Fprintf(r.output, "  %s -> %s\n", c.OldPath, c.NewPath)
	}
	for _, c := range v.Resources {
		fmt.Fprintf(r.output, "  %s -> %s\n", c.Old, c.New)
	}

	var err error
	if v.DryRun {
		_, err = fmt.Fprintln(r.output, display.MsgDryRun)
	} else if v.Written && v.BackupPath != "" {
		_, err = fmt.Fprintf(r.output, display.MsgBackupFormat+"\n", v.BackupPath)
	}
	return err
}

func (r *Renderer) renderVersions(v *display.VersionsView) error {
	if len(v.Versions) == 0 {
		_, err := fmt.Fprintf(r.output, display.MsgNoVersions+"\n", v.Group, v.Artifact)
		return err
	}
	for _, ver := range v.Versions {
		line := ver
		if ver == v.Highest {
			line += " " + display.MsgHighestMarker
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderConfig(v *display.ConfigView) error {
	if len(v.FilesWritten) == 0 {
		_, err := io.WriteString(r.output, v.Content)
		return err
	}
	for _, f := range v.FilesWritten {
		if _, err := fmt.Fprintf(r.output, display.MsgConfigWritten+"\n", f); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
