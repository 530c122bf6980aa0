package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	accentColor = lipgloss.Color("#5FAFD7") // Blue
	dangerColor = lipgloss.Color("#D70000") // Red
	noticeColor = lipgloss.Color("#D7AF00") // Amber
	okColor     = lipgloss.Color("#5FAF5F") // Green
	mutedColor  = lipgloss.Color("#888888") // Gray
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	ruleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(dangerColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	emptyTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(dangerColor)
	masterTagStyle = lipgloss.NewStyle().Bold(true).Foreground(noticeColor)
	okTagStyle     = lipgloss.NewStyle().Foreground(okColor)
)

// renderTag pads the tag to a fixed column width before styling so the
// filenames line up regardless of ANSI escape length.
func renderTag(style lipgloss.Style, tag string) string {
	return style.Render(fmt.Sprintf("%-9s", tag))
}
