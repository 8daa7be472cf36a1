package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/vessel-console/internal/report"
)

const chartWidth = 40

// enterReport builds the fuel report of the listed voyages
func (m Model) enterReport() (tea.Model, tea.Cmd) {
	vessel, ok := m.selectedVessel()
	if !ok {
		m.notice = "No vessel selected"
		return m, nil
	}
	if m.month == 0 {
		m.notice = "Pick a month (m) to build a report"
		return m, nil
	}

	m.state = StateReport
	m.gen++
	m.report = nil
	m.loading = true
	spin := m.startSpin()
	req := report.Request{
		Vessel:  vessel,
		Month:   m.month,
		Year:    m.year,
		Voyages: m.voyages,
		KPI:     m.deps.KPI,
	}
	return m, tea.Batch(spin, buildReport(m.gen, m.deps.Reports, req))
}

func (m Model) onReport(msg reportMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		return m.fail(msg.err, StateVoyages)
	}
	m.report = msg.report
	return m, nil
}

func (m Model) onExport(msg exportMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		return m.fail(msg.err, StateReport)
	}
	m.notice = "Exported to " + msg.path
	return m, nil
}

var exportKeys = map[string]report.Format{
	"e": report.FormatXLSX,
	"p": report.FormatPDF,
	"c": report.FormatCSV,
	"j": report.FormatJSON,
	"y": report.FormatYAML,
}

// handleReportKey handles input on the report screen
func (m Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		m.state = StateVoyages
		m.gen++
		m.loading = false
		return m, nil
	}

	if format, ok := exportKeys[key]; ok && m.report != nil && !m.loading {
		m.loading = true
		spin := m.startSpin()
		return m, tea.Batch(spin, exportReport(m.gen, m.report, m.deps.ExportDir, format))
	}
	return m, nil
}

// viewReport renders the report table and the consumption chart
func (m Model) viewReport() string {
	r := m.report
	if r == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.header("Fuel Report"),
			"",
			m.spinner.View()+" Building report...",
			keyHelp("Esc", "Back", "Ctrl+C", "Quit"),
		)
	}

	sections := []string{m.header(r.Title())}
	if len(r.Rows) == 0 {
		sections = append(sections, "", mutedStyle.Render("No voyages in this period."))
	} else {
		sections = append(sections,
			sectionBoxStyle.Render(renderReportTable(r)),
			sectionBoxStyle.Render(renderChart(r.Chart)),
			mutedStyle.Render("Port calls are estimated until they are recorded per voyage."),
		)
	}

	if n := m.noticeLine(); n != "" {
		sections = append(sections, n)
	}
	sections = append(sections, keyHelp("e", "Excel", "p", "PDF", "c", "CSV", "j", "JSON", "y", "YAML", "Esc", "Back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderReportTable(r *report.Report) string {
	lines := r.Lines()
	rows := make([][]string, len(lines))
	numeric := map[int]bool{}
	for i, l := range lines {
		row := []string{l.Label}
		for _, v := range l.Values {
			row = append(row, formatNumber(v, l.Digits))
		}
		row = append(row, formatNumber(l.Total, l.Digits), formatNumber(l.Average, l.AverageDigits))
		rows[i] = row
	}
	header := r.Header()
	for i := 1; i < len(header); i++ {
		numeric[i] = true
	}
	return renderTable(header, rows, numeric, -1)
}

// renderChart draws one horizontal bar per voyage with the average and
// KPI markers below
func renderChart(c report.Chart) string {
	labelWidth := 6
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, len(b.Label))
	}

	lines := []string{sectionHeaderStyle.Render("Fuel consumption per voyage (L)")}
	for _, b := range c.Bars {
		style := barStyle
		if c.KPI > 0 && b.Value > c.KPI {
			style = errorStyle
		}
		lines = append(lines, fmt.Sprintf("%s │%s %s",
			padRight(b.Label, labelWidth),
			padRight(style.Render(bar(b.Ratio, chartWidth)), chartWidth),
			formatNumber(b.Value, 0)))
	}

	lines = append(lines,
		marker(averageStyle, "AVG", c.AverageRatio, c.Average, labelWidth),
		marker(kpiStyle, "KPI", c.KPIRatio, c.KPI, labelWidth),
	)
	return strings.Join(lines, "\n")
}

// marker draws a reference line position on the chart scale
func marker(style lipgloss.Style, label string, ratio, value float64, labelWidth int) string {
	pos := min(int(ratio*chartWidth), chartWidth-1)
	line := strings.Repeat("┄", max(pos, 0)) + "┃"
	return fmt.Sprintf("%s │%s %s", padRight(label, labelWidth), style.Render(padRight(line, chartWidth)), formatNumber(value, 0))
}
