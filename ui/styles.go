package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#626262"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	passColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	failColor = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F55081"}

	// Frame
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(subtle).
			Padding(0, 1)

	// Text
	titleStyle = lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(highlight)

	dimStyle = lipgloss.NewStyle().
			Foreground(subtle)

	passStyle = lipgloss.NewStyle().
			Foreground(passColor)

	failStyle = lipgloss.NewStyle().
			Foreground(failColor)

	noticeStyle = lipgloss.NewStyle().
			Foreground(passColor).
			Padding(0, 1)

	errNoticeStyle = lipgloss.NewStyle().
			Foreground(failColor).
			Padding(0, 1)
)
