package display

import (
	"time"

	"github.com/arthur-debert/xgappup/pkg/persist"
	"github.com/arthur-debert/xgappup/pkg/upgrade"
	"github.com/arthur-debert/xgappup/pkg/version"
)

// NewPlanView converts plans into rows, in plan order
func NewPlanView(file string, paths []*upgrade.Path, defaultGroup string) *PlanView {
	view := &PlanView{File: file, Plugins: make([]PlanItem, 0, len(paths))}
	for _, p := range paths {
		view.Plugins = append(view.Plugins, NewPlanItem(p, defaultGroup))
	}
	return view
}

// NewPlanItem converts a single plan
func NewPlanItem(p *upgrade.Path, defaultGroup string) PlanItem {
	item := PlanItem{
		OldPath:   p.OldPath(),
		OldPlugin: upgrade.OldPluginLabel(p, defaultGroup),
		NewPlugin: upgrade.NewPluginLabel(p, defaultGroup),
		NewPath:   p.NewPath(),
		Kind:      p.Kind().String(),
		Strategy:  p.Strategy().String(),
		Versions:  p.Versions().Strings(),
		NoOp:      p.IsNoOp(),
	}
	if item.Versions == nil {
		item.Versions = []string{}
	}
	if v, ok := p.CurrentVersion(); ok {
		item.Current = v.String()
	}
	if v, ok := p.SelectedVersion(); ok {
		item.Target = v.String()
	}
	return item
}

// NewResultView converts what Apply and persist did
func NewResultView(file string, applied *upgrade.ApplyResult, written *persist.Result, dryRun bool, elapsed time.Duration) *ResultView {
	view := &ResultView{
		File:      file,
		DryRun:    dryRun,
		Plugins:   []PluginChange{},
		Resources: []ResourceChange{},
		Duration:  elapsed,
	}
	if applied != nil {
		for _, c := range applied.Plugins {
			view.Plugins = append(view.Plugins, PluginChange{OldPath: c.OldPath, NewPath: c.NewPath})
		}
		for _, c := range applied.Resources {
			view.Resources = append(view.Resources, ResourceChange{Old: c.Old, New: c.New})
		}
	}
	if written != nil {
		view.Written = written.Written
		view.BackupPath = written.BackupPath
	}
	return view
}

// NothingToDoView is the result for a file that needs no change
func NothingToDoView(file string, dryRun bool) *ResultView {
	return &ResultView{
		File:        file,
		DryRun:      dryRun,
		NothingToDo: true,
		Plugins:     []PluginChange{},
		Resources:   []ResourceChange{},
	}
}

// CancelledView is the result when the user abandons the editor
func CancelledView(file string) *ResultView {
	return &ResultView{
		File:      file,
		Cancelled: true,
		Plugins:   []PluginChange{},
		Resources: []ResourceChange{},
	}
}

// NewVersionsView converts a version set
func NewVersionsView(group, artifact string, versions *version.Set) *VersionsView {
	view := &VersionsView{
		Group:    group,
		Artifact: artifact,
		Versions: versions.Strings(),
	}
	if view.Versions == nil {
		view.Versions = []string{}
	}
	if h, ok := versions.Highest(); ok {
		view.Highest = h.String()
	}
	return view
}
