package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/vessel-console/internal/fuel"
	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/voyage"
)

func (m Model) enterDetail(voyageID int64) (tea.Model, tea.Cmd) {
	m.state = StateDetail
	m.gen++
	m.detail = nil
	m.pane = paneActivities
	m.actCursor = 0
	m.bunkerCursor = 0
	m.loading = true
	spin := m.startSpin()
	return m, tea.Batch(spin, fetchDetail(m.gen, m.deps.Voyages, voyageID))
}

func (m Model) onDetail(msg detailMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.loading = false

	if m.state == StateForm && m.form != nil {
		if msg.err != nil {
			return m.formFailed(msg.err)
		}
		m.notice = m.form.title + " saved"
		m.form = nil
		m.state = StateDetail
	} else if msg.err != nil {
		back := StateDetail
		if m.detail == nil {
			back = StateVoyages
		}
		return m.fail(msg.err, back)
	}

	m.detail = msg.detail
	m.actCursor = clampCursor(m.actCursor, len(m.detail.Activities))
	m.bunkerCursor = clampCursor(m.bunkerCursor, len(m.detail.Fuel.Bunkers))
	return m, nil
}

func clampCursor(cursor, n int) int {
	return max(0, min(cursor, n-1))
}

func (m Model) selectedActivity() (models.Activity, bool) {
	if m.detail == nil || m.actCursor >= len(m.detail.Activities) {
		return models.Activity{}, false
	}
	return m.detail.Activities[m.actCursor], true
}

func (m Model) selectedBunker() (models.Bunker, bool) {
	if m.detail == nil || m.bunkerCursor >= len(m.detail.Fuel.Bunkers) {
		return models.Bunker{}, false
	}
	return m.detail.Fuel.Bunkers[m.bunkerCursor], true
}

// handleDetailKey handles input on the voyage detail screen
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.loading = false
		return m.enterVoyages()
	}

	d := m.detail
	if d == nil || m.loading {
		return m, nil
	}
	svc := m.deps.Voyages
	voyageID := d.Voyage.ID

	switch msg.String() {
	case "R":
		return m.enterDetail(voyageID)

	case "tab":
		if m.pane == paneActivities {
			m.pane = paneBunkers
		} else {
			m.pane = paneActivities
		}

	case "up", "k":
		if m.pane == paneActivities {
			m.actCursor = clampCursor(m.actCursor-1, len(d.Activities))
		} else {
			m.bunkerCursor = clampCursor(m.bunkerCursor-1, len(d.Fuel.Bunkers))
		}

	case "down", "j":
		if m.pane == paneActivities {
			m.actCursor = clampCursor(m.actCursor+1, len(d.Activities))
		} else {
			m.bunkerCursor = clampCursor(m.bunkerCursor+1, len(d.Fuel.Bunkers))
		}

	case "o":
		return m.openForm(newRobForm(d))

	case "b":
		return m.openForm(newBunkerForm(voyageID, nil))

	case "a":
		m.state = StateActivityType
		m.typeCursor = 0

	case "e":
		if m.pane == paneActivities {
			if a, ok := m.selectedActivity(); ok {
				return m.openForm(newActivityForm(voyageID, a.Type, &a))
			}
		} else if b, ok := m.selectedBunker(); ok {
			return m.openForm(newBunkerForm(voyageID, &b))
		}

	case "d":
		if m.pane == paneActivities {
			a, ok := m.selectedActivity()
			if !ok {
				return m, nil
			}
			return m.ask(fmt.Sprintf("Delete %s activity starting %s?", a.Type.Label(), formatTime(a.StartAt, m.deps.Location)), StateDetail, func(gen int) tea.Cmd {
				return saveDetail(gen, func(ctx context.Context) (*voyage.Detail, error) {
					return svc.DeleteActivity(ctx, voyageID, a.ID)
				})
			})
		}
		b, ok := m.selectedBunker()
		if !ok {
			return m, nil
		}
		return m.ask(fmt.Sprintf("Delete bunker of %s?", formatLiters(b.Amount.Float())), StateDetail, func(gen int) tea.Cmd {
			return saveDetail(gen, func(ctx context.Context) (*voyage.Detail, error) {
				return svc.DeleteBunker(ctx, voyageID, b.ID)
			})
		})
	}
	return m, nil
}

// handleActivityTypeKey picks the type of a new activity
func (m Model) handleActivityTypeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateDetail
	case "up", "k":
		m.typeCursor = clampCursor(m.typeCursor-1, len(models.ActivityTypes))
	case "down", "j":
		m.typeCursor = clampCursor(m.typeCursor+1, len(models.ActivityTypes))
	case "enter":
		if m.detail == nil {
			m.state = StateDetail
			return m, nil
		}
		t := models.ActivityTypes[m.typeCursor]
		return m.openForm(newActivityForm(m.detail.Voyage.ID, t, nil))
	}
	return m, nil
}

// viewDetail renders a voyage with its fuel balance, activities and bunkers
func (m Model) viewDetail() string {
	d := m.detail
	if d == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.header("Voyage"),
			"",
			m.spinner.View()+" Loading voyage...",
			keyHelp("Esc", "Back", "Ctrl+C", "Quit"),
		)
	}

	loc := m.deps.Location
	v := d.Voyage
	info := fmt.Sprintf("%s %s   %s %s   %s %s   %s %02d/%d   %s",
		labelStyle.Render("Vessel:"), valueStyle.Render(m.vesselName(v.VesselID)),
		labelStyle.Render("Start:"), formatTime(v.StartAt, loc),
		labelStyle.Render("End:"), formatTime(v.EndAt, loc),
		labelStyle.Render("Posted:"), v.PostingMonth, v.PostingYear,
		statusLabel(v.Status))

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		sectionBoxStyle.Render(m.renderMetrics(d.Metrics)),
		" ",
		sectionBoxStyle.Render(m.renderReconciliation(d)),
		" ",
		sectionBoxStyle.Render(m.renderBreakdown(d.Breakdown)),
	)

	sections := []string{
		m.header(d.Title()),
		info,
		top,
		m.renderActivities(d),
		m.renderBunkers(d),
	}
	if n := m.noticeLine(); n != "" {
		sections = append(sections, n)
	}
	sections = append(sections, keyHelp(
		"Tab", "Switch table", "↑/↓", "Select", "a", "Add activity", "b", "Add bunker",
		"o", "Edit ROB", "e", "Edit", "d", "Delete", "R", "Refresh", "Esc", "Back",
	))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) vesselName(id int64) string {
	for _, v := range m.vessels {
		if v.ID == id {
			return v.Name
		}
	}
	if v, ok := m.selectedVessel(); ok {
		return v.Name
	}
	return "-"
}

func kv(label, value string) string {
	return padRight(labelStyle.Render(label), 18) + padLeft(valueStyle.Render(value), 14)
}

func (m Model) renderMetrics(mt fuel.Metrics) string {
	lines := []string{
		sectionHeaderStyle.Render("Activities"),
		kv("Count", formatNumber(float64(mt.Count), 0)),
		kv("Duration", formatHours(mt.DurationHours)),
		kv("Fuel used", formatLiters(mt.FuelUsed)),
		kv("Reefers", formatNumber(mt.ReeferCount, 0)),
		kv("M/E hours", formatHours(mt.MainEngineHours)),
		kv("Gen hours", formatHours(mt.GeneratorHours)),
		kv("Containers", formatNumber(mt.ContainerCount, 0)),
		kv("Weight", formatNumber(mt.TotalContainerWeight, 2)),
		kv("FSW avg speed", formatNumber(mt.FSWAvg, 2)+" kn"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderReconciliation(d *voyage.Detail) string {
	r := d.Reconciliation
	status := reconciledStyle.Render("✓ Reconciled")
	if r.Status.Discrepant() {
		status = discrepantStyle.Render("Discrepancy")
	}
	lines := []string{
		sectionHeaderStyle.Render("Fuel balance"),
		kv("Opening ROB", formatLiters(d.Fuel.Rob.OpeningRob.Float())),
		kv("Bunkered", formatLiters(r.BunkeredTotal)),
		kv("Consumed", formatLiters(r.ConsumedFromActivities)),
		kv("Expected closing", formatLiters(r.ExpectedClosing)),
		kv("Reported closing", formatLiters(r.ReportedClosing)),
		kv("Difference", formatLiters(r.Diff)),
		"",
		status,
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderBreakdown(rows []fuel.BreakdownRow) string {
	lines := []string{sectionHeaderStyle.Render("Fuel by type")}
	for _, r := range rows {
		lines = append(lines, padRight(r.Label, 18)+padLeft(formatLiters(r.Fuel), 14))
	}
	return strings.Join(lines, "\n")
}

func (m Model) paneTitle(title string, p detailPane) string {
	if m.pane == p {
		return activeTitleStyle.Render(" " + title + " ")
	}
	return sectionHeaderStyle.Render(title)
}

func (m Model) renderActivities(d *voyage.Detail) string {
	title := m.paneTitle(fmt.Sprintf("Activities (%d)", len(d.Activities)), paneActivities)
	if len(d.Activities) == 0 {
		return title + "\n" + mutedStyle.Render("No activities recorded")
	}

	loc := m.deps.Location
	rows := make([][]string, len(d.Activities))
	for i, a := range d.Activities {
		rows[i] = []string{
			a.Type.Label(),
			formatTime(a.StartAt, loc),
			formatTime(a.EndAt, loc),
			formatNumber(fuel.HoursBetween(a.StartAt, a.EndAt), 2),
			formatNumber(a.FuelUsed.Float(), 2),
			truncate(a.Remark, 30),
		}
	}
	selected := -1
	if m.pane == paneActivities {
		selected = m.actCursor
	}
	table := renderTable([]string{"Type", "Start", "End", "Hours", "Fuel (L)", "Remark"}, rows, map[int]bool{3: true, 4: true}, selected)
	return title + "\n" + table
}

func (m Model) renderBunkers(d *voyage.Detail) string {
	bunkers := d.Fuel.Bunkers
	title := m.paneTitle(fmt.Sprintf("Bunkers (%d)", len(bunkers)), paneBunkers)
	if len(bunkers) == 0 {
		return title + "\n" + mutedStyle.Render("No bunkers recorded")
	}

	rows := make([][]string, len(bunkers))
	for i, b := range bunkers {
		rows[i] = []string{formatTime(b.At, m.deps.Location), formatNumber(b.Amount.Float(), 2), b.Unit, truncate(b.Remark, 30)}
	}
	selected := -1
	if m.pane == paneBunkers {
		selected = m.bunkerCursor
	}
	return title + "\n" + renderTable([]string{"Date", "Amount", "Unit", "Remark"}, rows, map[int]bool{1: true}, selected)
}

// viewActivityType renders the type picker for a new activity
func (m Model) viewActivityType() string {
	lines := []string{m.header("New activity"), "", labelStyle.Render("Activity type")}
	for i, t := range models.ActivityTypes {
		line := "  " + t.Label()
		if i == m.typeCursor {
			line = selectedRowStyle.Render("› " + t.Label())
		}
		lines = append(lines, line)
	}
	lines = append(lines, keyHelp("↑/↓", "Select", "Enter", "Continue", "Esc", "Cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
