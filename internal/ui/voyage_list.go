package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/ngmaloney/vessel-console/internal/models"
)

// voyageItem wraps a Voyage for use in a list
type voyageItem struct {
	voyage models.Voyage
	loc    *time.Location
}

// FilterValue implements list.Item
func (v voyageItem) FilterValue() string {
	return v.voyage.VoyNo
}

// Title implements list.DefaultItem
func (v voyageItem) Title() string {
	title := "Voy " + v.voyage.VoyNo
	if v.voyage.VesselName != "" {
		title += " • " + v.voyage.VesselName
	}
	return title
}

// Description implements list.DefaultItem
func (v voyageItem) Description() string {
	desc := fmt.Sprintf("%s → %s", formatTime(v.voyage.StartAt, v.loc), formatTime(v.voyage.EndAt, v.loc))
	if start, ok := v.voyage.Start(); ok {
		if end, ok := v.voyage.End(); ok {
			desc += " (" + formatHours(end.Sub(start).Hours()) + ")"
		}
	}
	desc += fmt.Sprintf(" • posted %02d/%d", v.voyage.PostingMonth, v.voyage.PostingYear)
	return desc + " • " + statusLabel(v.voyage.Status)
}

// createVoyageList creates a list.Model from voyages
func createVoyageList(voyages []models.Voyage, loc *time.Location, width, height int) list.Model {
	items := make([]list.Item, len(voyages))
	for i, v := range voyages {
		items[i] = voyageItem{voyage: v, loc: loc}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Voyages"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	// q and / belong to the console, not the list
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	return l
}

// selectedVoyage returns the highlighted voyage
func (m Model) selectedVoyage() (models.Voyage, bool) {
	item, ok := m.voyageList.SelectedItem().(voyageItem)
	if !ok {
		return models.Voyage{}, false
	}
	return item.voyage, true
}
