package xgappup

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Upgrade GATE applications to Maven plugins"
	MsgPlanShort       = "Show the upgrade plan for an application"
	MsgUpgradeShort    = "Upgrade an application to Maven plugins"
	MsgVersionsShort   = "List the compatible versions of a plugin"
	MsgGenConfigShort  = "Generate the default configuration file"
	MsgGenConfigLong   = "Output the default configuration with every value commented out, or write it to the user config file."
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Version output
	MsgVersionFormat   = "xgappup version %s\n  commit: %s\n  built:  %s\n"
	MsgVersionTemplate = "xgappup version {{.Version}}\n"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default $XDG_CONFIG_HOME/xgappup/config.toml)"
	MsgFlagOffline     = "Use the local Maven repository only"
	MsgFlagFormat      = "Output format: auto, term, text, json or yaml"
	MsgFlagOverrides   = "TOML file pinning strategy, coordinates or version per plugin"
	MsgFlagDryRun      = "Show the changes without writing the file"
	MsgFlagInteractive = "Review and edit the plan before upgrading"
	MsgFlagForce       = "Replace an existing backup file"
	MsgFlagWrite       = "Write the config file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plan-example.txt
	msgPlanExampleRaw string
	MsgPlanExample    = strings.TrimRight(msgPlanExampleRaw, "\n")

	//go:embed msgs/upgrade-long.txt
	msgUpgradeLongRaw string
	MsgUpgradeLong    = strings.TrimSpace(msgUpgradeLongRaw)

	//go:embed msgs/upgrade-example.txt
	msgUpgradeExampleRaw string
	MsgUpgradeExample    = strings.TrimRight(msgUpgradeExampleRaw, "\n")

	//go:embed msgs/versions-long.txt
	msgVersionsLongRaw string
	MsgVersionsLong    = strings.TrimSpace(msgVersionsLongRaw)

	//go:embed msgs/versions-example.txt
	msgVersionsExampleRaw string
	MsgVersionsExample    = strings.TrimRight(msgVersionsExampleRaw, "\n")

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
