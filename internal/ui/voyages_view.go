package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// enterVoyages lists the voyages of the selected vessel. The voyage list
// always works on one vessel, so "all vessels" falls back to the first.
func (m Model) enterVoyages() (tea.Model, tea.Cmd) {
	m.state = StateVoyages
	m.gen++
	if m.vesselIdx < 0 && len(m.vessels) > 0 {
		m.vesselIdx = 0
	}

	vessel, ok := m.selectedVessel()
	if !ok {
		m.voyages = nil
		m.voyageList = createVoyageList(nil, m.deps.Location, max(m.width-4, 0), listHeight(m.height))
		return m, nil
	}

	m.loading = true
	spin := m.startSpin()
	return m, tea.Batch(spin, fetchVoyages(m.gen, m.deps.Voyages, vessel, m.voyageFilter()))
}

func (m Model) onVoyages(msg voyagesMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		return m.fail(msg.err, StateVoyages)
	}
	m.voyages = msg.voyages
	m.voyageList = createVoyageList(m.voyages, m.deps.Location, max(m.width-4, 0), listHeight(m.height))
	return m, nil
}

func (m Model) onVoyageChanged(msg voyageChangedMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.loading = false

	if m.state == StateForm && m.form != nil {
		if msg.err != nil {
			return m.formFailed(msg.err)
		}
		m.form = nil
	} else if msg.err != nil {
		return m.fail(msg.err, StateVoyages)
	}

	next, cmd := m.enterVoyages()
	nm := next.(Model)
	nm.notice = msg.notice
	return nm, cmd
}

// handleVoyagesKey handles input on the voyage list
func (m Model) handleVoyagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.adjustFilter(key, false) {
		return m.enterVoyages()
	}

	switch key {
	case "R":
		return m.enterVoyages()

	case "tab", "esc":
		if m.isEmployee() {
			return m, nil
		}
		return m.enterDashboard()

	case "n":
		vessel, ok := m.selectedVessel()
		if !ok {
			m.notice = "No vessel selected"
			return m, nil
		}
		return m.openForm(newVoyageForm(vessel, nil, m.month, m.year))

	case "r":
		return m.enterReport()
	}

	v, ok := m.selectedVoyage()
	switch key {
	case "enter":
		if ok {
			return m.enterDetail(v.ID)
		}
		return m, nil

	case "e":
		if ok {
			vessel, _ := m.selectedVessel()
			return m.openForm(newVoyageForm(vessel, &v, m.month, m.year))
		}
		return m, nil

	case "c":
		if !ok || m.loading {
			return m, nil
		}
		next := v.NextStatus()
		svc := m.deps.Voyages
		m.loading = true
		spin := m.startSpin()
		return m, tea.Batch(spin, changeVoyage(m.gen, fmt.Sprintf("Voy %s is now %s", v.VoyNo, next), func(ctx context.Context) error {
			_, err := svc.ToggleStatus(ctx, v)
			return err
		}))

	case "x":
		if !ok {
			return m, nil
		}
		svc := m.deps.Voyages
		return m.ask(fmt.Sprintf("Delete voyage %s with all its activities?", v.VoyNo), StateVoyages, func(gen int) tea.Cmd {
			return changeVoyage(gen, fmt.Sprintf("Voy %s deleted", v.VoyNo), func(ctx context.Context) error {
				return svc.Delete(ctx, v.ID)
			})
		})
	}

	var cmd tea.Cmd
	m.voyageList, cmd = m.voyageList.Update(msg)
	return m, cmd
}

// viewVoyages renders the voyage list of the selected vessel
func (m Model) viewVoyages() string {
	sections := []string{
		m.header("Voyages"),
		m.filterLine(false),
		"",
	}

	switch {
	case len(m.vessels) == 0:
		sections = append(sections, mutedStyle.Render("No vessels are assigned to you."))
	case m.loading && len(m.voyages) == 0:
		sections = append(sections, mutedStyle.Render("Loading voyages..."))
	case len(m.voyages) == 0:
		sections = append(sections, mutedStyle.Render(fmt.Sprintf("No voyages posted in %s %d.", monthLabel(m.month), m.year)))
	default:
		sections = append(sections, m.voyageList.View())
	}

	if n := m.noticeLine(); n != "" {
		sections = append(sections, n)
	}

	help := []string{
		"↑/↓", "Navigate", "Enter", "Open", "n", "New", "e", "Edit", "c", "Open/close", "x", "Delete",
		"r", "Report", "v", "Vessel", "m", "Month", "[ ]", "Year",
	}
	if !m.isEmployee() {
		help = append(help, "Tab", "Dashboard")
	}
	help = append(help, "L", "Sign out", "q", "Quit")
	sections = append(sections, keyHelp(help...))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
