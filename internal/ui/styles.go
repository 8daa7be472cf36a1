package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorPrimary = lipgloss.Color("#2AA8C4") // Harbour teal
	colorBar     = lipgloss.Color("#7FC8D9")
	colorAlarm   = lipgloss.Color("#E5534B")
	colorKPI     = lipgloss.Color("#F2B134")
	colorOK      = lipgloss.Color("#57B36A")
	colorDim     = lipgloss.Color("#7A828A")
	colorFrame   = lipgloss.Color("#3A6E8F")
	colorInk     = lipgloss.Color("#F4F6F8")
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	activeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInk).Background(colorPrimary)

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorDim)
	valueStyle = lipgloss.NewStyle().Foreground(colorInk)
	mutedStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpStyle  = mutedStyle.Padding(1, 0)

	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAlarm)
	successStyle = lipgloss.NewStyle().Foreground(colorOK)
)

// Fuel balance badges and voyage status
var (
	discrepantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInk).
			Background(colorAlarm).
			Padding(0, 1)
	reconciledStyle = successStyle.Bold(true)
	openStyle       = successStyle
	closedStyle     = mutedStyle
)

// Charts and tables
var (
	barStyle     = lipgloss.NewStyle().Foreground(colorBar)
	averageStyle = lipgloss.NewStyle().Foreground(colorPrimary)
	kpiStyle     = lipgloss.NewStyle().Foreground(colorKPI)

	tableHeaderStyle = titleStyle
	selectedRowStyle = lipgloss.NewStyle().
				Foreground(colorInk).
				Background(lipgloss.Color("#1F3B4D"))
)

// Panels
var (
	sectionHeaderStyle = titleStyle.Padding(0, 1).MarginTop(1)

	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame).
			Padding(0, 2)

	inputBoxStyle = sectionBoxStyle.
			BorderForeground(colorPrimary).
			Padding(1, 2).
			Width(64)
)
