package display

// Messages shared by the text and terminal renderers
const (
	MsgNothingToDo    = "Nothing to do"
	MsgCancelled      = "Upgrade cancelled, %s left unchanged"
	MsgDryRun         = "Dry run, nothing was written"
	MsgUpgradedFormat = "Upgraded %d plugin(s) and %d resource(s) in %s"
	MsgWouldUpgrade   = "Would upgrade %d plugin(s) and %d resource(s) in %s"
	MsgBackupFormat   = "Original saved as %s"
	MsgUnusedOverride = "Override for %s matched no plugin"
	MsgNoPlugins      = "No upgradable plugins in %s"
	MsgNoVersions     = "No compatible versions of %s:%s"
	MsgHighestMarker  = "(highest)"
	MsgConfigWritten  = "Wrote config to %s"
	MsgColOldPlugin   = "Old plugin"
	MsgColNewPlugin   = "New plugin"
	MsgColStrategy    = "Upgrade?"
	MsgColTarget      = "Target version"
	MsgColAvailable   = "Available"
	MsgNoOpMarker     = "(no change)"
)
