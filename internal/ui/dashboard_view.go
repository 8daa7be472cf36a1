package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/vessel-console/internal/dashboard"
	"github.com/ngmaloney/vessel-console/internal/models"
)

const trendBarHeight = 6

func (m Model) enterDashboard() (tea.Model, tea.Cmd) {
	m.state = StateDashboard
	m.gen++
	m.summary = nil
	m.loading = true
	spin := m.startSpin()

	f := dashboard.Filter{Month: m.month, Year: m.year}
	if v, ok := m.selectedVessel(); ok {
		f.VesselID = v.ID
	}
	return m, tea.Batch(spin, fetchSummary(m.gen, m.deps.Dashboard, f))
}

func (m Model) onSummary(msg summaryMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		return m.fail(msg.err, StateDashboard)
	}
	m.summary = msg.summary
	return m, nil
}

// adjustFilter applies the filter keys shared by the dashboard and the
// voyage list. allVessels allows the "all vessels" position.
func (m *Model) adjustFilter(key string, allVessels bool) bool {
	switch key {
	case "v":
		if len(m.vessels) == 0 {
			return false
		}
		m.vesselIdx++
		if m.vesselIdx >= len(m.vessels) {
			m.vesselIdx = -1
			if !allVessels {
				m.vesselIdx = 0
			}
		}
	case "m":
		m.month = (m.month + 1) % 13
	case "[":
		m.year--
	case "]":
		m.year++
	default:
		return false
	}
	return true
}

// handleDashboardKey handles input on the dashboard
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.adjustFilter(key, true) {
		return m.enterDashboard()
	}

	switch key {
	case "R":
		return m.enterDashboard()
	case "tab":
		return m.enterVoyages()
	case "N":
		if m.canAdminFleet() {
			return m.openForm(newVesselForm())
		}
	case "A":
		if v, ok := m.selectedVessel(); ok && m.canAdminFleet() {
			return m.openForm(newAssignForm(v))
		}
	}
	return m, nil
}

func (m Model) filterLine(allVessels bool) string {
	vessel := "All vessels"
	if v, ok := m.selectedVessel(); ok {
		vessel = v.Name
	} else if !allVessels {
		vessel = "-"
	}
	return fmt.Sprintf("%s %s   %s %s   %s %d",
		labelStyle.Render("Vessel:"), valueStyle.Render(vessel),
		labelStyle.Render("Month:"), valueStyle.Render(monthLabel(m.month)),
		labelStyle.Render("Year:"), m.year)
}

// viewDashboard renders the fleet summary
func (m Model) viewDashboard() string {
	sections := []string{
		m.header("Fleet Dashboard"),
		m.filterLine(true),
	}

	s := m.summary
	if s == nil {
		sections = append(sections, "", mutedStyle.Render("Loading summary..."))
	} else {
		top := lipgloss.JoinHorizontal(lipgloss.Top,
			sectionBoxStyle.Render(m.renderTotals(s)),
			" ",
			sectionBoxStyle.Render(m.renderFuelByType(s)),
		)
		middle := lipgloss.JoinHorizontal(lipgloss.Top,
			sectionBoxStyle.Render(m.renderPorts(s)),
			" ",
			sectionBoxStyle.Render(m.renderTrend(s)),
		)
		sections = append(sections, top, middle, sectionBoxStyle.Render(m.renderRecent(s)))
	}

	if n := m.noticeLine(); n != "" {
		sections = append(sections, n)
	}
	help := []string{"v", "Vessel", "m", "Month", "[ ]", "Year", "Tab", "Voyages", "R", "Refresh"}
	if m.canAdminFleet() {
		help = append(help, "N", "New vessel", "A", "Assign vessel")
	}
	help = append(help, "L", "Sign out", "q", "Quit")
	sections = append(sections, keyHelp(help...))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTotals(s *dashboard.Summary) string {
	c := s.Containers
	rows := [][2]string{
		{"Vessels", formatNumber(float64(len(s.Vessels)), 0)},
		{"Voyages", formatNumber(float64(s.VoyageCount), 0)},
		{"Fuel used", formatLiters(s.Fuel.TotalUsed)},
		{"Containers", formatNumber(c.Total, 0)},
		{"  20'", formatNumber(c.C20, 0)},
		{"  40'", formatNumber(c.C40, 0)},
		{"  Reefer", formatNumber(c.Reefer, 0)},
		{"  DG", formatNumber(c.DG, 0)},
	}

	lines := []string{sectionHeaderStyle.Render("Totals")}
	for _, r := range rows {
		lines = append(lines, padRight(labelStyle.Render(r[0]), 14)+padLeft(valueStyle.Render(r[1]), 14))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFuelByType(s *dashboard.Summary) string {
	lines := []string{sectionHeaderStyle.Render("Fuel by activity")}
	total := s.Fuel.TotalUsed
	for _, t := range models.ActivityTypes {
		used := s.Fuel.ByActivityType[t]
		ratio := 0.0
		if total > 0 {
			ratio = used / total
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			padRight(t.Label(), 16),
			padLeft(formatLiters(used), 14),
			barStyle.Render(bar(ratio, 16))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPorts(s *dashboard.Summary) string {
	lines := []string{sectionHeaderStyle.Render("Port calls")}
	for _, z := range dashboard.Zones {
		pc := s.Ports[z]
		if pc == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(string(z)), valueStyle.Render(formatNumber(float64(pc.TotalCalls), 0))))
		for i, port := range pc.Ports() {
			if i == 4 {
				lines = append(lines, mutedStyle.Render(fmt.Sprintf("  … %d more", len(pc.ByPort)-i)))
				break
			}
			lines = append(lines, fmt.Sprintf("  %s %d", padRight(truncate(port, 20), 20), pc.ByPort[port]))
		}
	}
	return strings.Join(lines, "\n")
}

// renderTrend draws the voyage starts as vertical bars, one per bucket
func (m Model) renderTrend(s *dashboard.Summary) string {
	title := "Voyages per month"
	if s.Filter.Month > 0 {
		title = "Voyages per day"
	}
	lines := []string{sectionHeaderStyle.Render(title)}
	if len(s.Trend) == 0 {
		return strings.Join(append(lines, mutedStyle.Render("No voyages")), "\n")
	}

	peak := dashboard.TrendMax(s.Trend)
	for level := trendBarHeight; level >= 1; level-- {
		var row strings.Builder
		for _, b := range s.Trend {
			filled := b.Count * trendBarHeight
			if filled >= level*peak {
				row.WriteString("█")
			} else if filled > (level-1)*peak {
				row.WriteString(spark(filled-(level-1)*peak, peak))
			} else {
				row.WriteString(" ")
			}
		}
		lines = append(lines, barStyle.Render(row.String()))
	}
	first, last := s.Trend[0].Label, s.Trend[len(s.Trend)-1].Label
	axis := first + strings.Repeat(" ", max(len(s.Trend)-len(first)-len(last), 1)) + last
	lines = append(lines, mutedStyle.Render(axis), mutedStyle.Render(fmt.Sprintf("peak %d", peak)))
	return strings.Join(lines, "\n")
}

func (m Model) renderRecent(s *dashboard.Summary) string {
	lines := []string{sectionHeaderStyle.Render("Recent voyages")}
	if len(s.Recent) == 0 {
		return strings.Join(append(lines, mutedStyle.Render("No voyages in this period")), "\n")
	}
	rows := make([][]string, len(s.Recent))
	for i, v := range s.Recent {
		rows[i] = []string{v.VoyNo, v.VesselName, formatTime(v.StartAt, m.deps.Location), formatTime(v.EndAt, m.deps.Location), statusLabel(v.Status)}
	}
	lines = append(lines, renderTable([]string{"Voy", "Vessel", "Start", "End", "Status"}, rows, nil, -1))
	return strings.Join(lines, "\n")
}
