// Package display holds the views commands hand to the output renderers.
// Every view is plain data with json and yaml tags so the machine readable
// formats and the terminal share one source.
package display

import "time"

// PlanView is the upgrade plan of one application file
type PlanView struct {
	File    string     `json:"file" yaml:"file"`
	Plugins []PlanItem `json:"plugins" yaml:"plugins"`

	// UnusedOverrides lists overrides that matched no plugin
	UnusedOverrides []string `json:"unused_overrides,omitempty" yaml:"unused_overrides,omitempty"`
}

// PlanItem is one row of a plan
type PlanItem struct {
	OldPath   string   `json:"old_path" yaml:"old_path"`
	OldPlugin string   `json:"old_plugin" yaml:"old_plugin"`
	NewPlugin string   `json:"new_plugin" yaml:"new_plugin"`
	NewPath   string   `json:"new_path,omitempty" yaml:"new_path,omitempty"`
	Kind      string   `json:"kind" yaml:"kind"`
	Strategy  string   `json:"strategy" yaml:"strategy"`
	Current   string   `json:"current_version,omitempty" yaml:"current_version,omitempty"`
	Target    string   `json:"target_version,omitempty" yaml:"target_version,omitempty"`
	Versions  []string `json:"versions" yaml:"versions"`
	NoOp      bool     `json:"no_op" yaml:"no_op"`
}

// HasWork reports whether any row would change the document
func (v *PlanView) HasWork() bool {
	for _, p := range v.Plugins {
		if !p.NoOp {
			return true
		}
	}
	return false
}

// ResultView is the outcome of an upgrade run
type ResultView struct {
	File        string           `json:"file" yaml:"file"`
	DryRun      bool             `json:"dry_run" yaml:"dry_run"`
	Cancelled   bool             `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
	NothingToDo bool             `json:"nothing_to_do" yaml:"nothing_to_do"`
	Written     bool             `json:"written" yaml:"written"`
	BackupPath  string           `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	Plugins     []PluginChange   `json:"plugins" yaml:"plugins"`
	Resources   []ResourceChange `json:"resources" yaml:"resources"`
	Duration    time.Duration    `json:"duration" yaml:"duration"`
}

// PluginChange is a replaced plugin entry
type PluginChange struct {
	OldPath string `json:"old_path" yaml:"old_path"`
	NewPath string `json:"new_path" yaml:"new_path"`
}

// ResourceChange is a rewritten resource URL
type ResourceChange struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// VersionsView lists the compatible versions of one artifact
type VersionsView struct {
	Group    string   `json:"group" yaml:"group"`
	Artifact string   `json:"artifact" yaml:"artifact"`
	Versions []string `json:"versions" yaml:"versions"`
	Highest  string   `json:"highest,omitempty" yaml:"highest,omitempty"`
}

// ConfigView carries generated configuration
type ConfigView struct {
	Content      string   `json:"content" yaml:"content"`
	FilesWritten []string `json:"files_written" yaml:"files_written"`
}
