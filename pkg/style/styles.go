package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	// Headers and titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// Code and path styles
	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Background(SurfaceColor).
			Padding(0, 1)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)
)

// Strategy styles
var (
	UpgradeStyle = lipgloss.NewStyle().
			Foreground(UpgradeColor).
			Bold(true)

	PluginOnlyStyle = lipgloss.NewStyle().
			Foreground(PluginOnlyColor).
			Bold(true)

	SkipStyle = lipgloss.NewStyle().
			Foreground(SkipColor)

	VersionStyle = lipgloss.NewStyle().
			Foreground(VersionColor)
)

// Table styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			Underline(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusLineStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// StrategyStyle returns the style for a strategy name as printed by the CLI
func StrategyStyle(strategy string) lipgloss.Style {
	switch strategy {
	case "upgrade":
		return UpgradeStyle
	case "plugin-only":
		return PluginOnlyStyle
	default:
		return SkipStyle
	}
}

// Operation indicator styles
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
)

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

func Italic(s string) string {
	return lipgloss.NewStyle().Italic(true).Render(s)
}

func Underline(s string) string {
	return lipgloss.NewStyle().Underline(true).Render(s)
}
