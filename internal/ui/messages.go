package ui

import (
	"github.com/ngmaloney/vessel-console/internal/dashboard"
	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/report"
	"github.com/ngmaloney/vessel-console/internal/voyage"
)

// Message types for async operations. Each carries the view generation
// that requested it; results for a view that has been left are dropped.

// loginMsg is sent when a sign-in attempt completes
type loginMsg struct {
	gen  int
	user *models.User
	err  error
}

// vesselsMsg is sent when the vessel list has been fetched
type vesselsMsg struct {
	gen     int
	vessels []models.Vessel
	err     error
}

// summaryMsg is sent when the dashboard summary is ready
type summaryMsg struct {
	gen     int
	summary *dashboard.Summary
	err     error
}

// voyagesMsg is sent when a vessel's voyages have been fetched
type voyagesMsg struct {
	gen     int
	voyages []models.Voyage
	err     error
}

// detailMsg is sent when a voyage detail has been loaded, either on entry
// or after an edit
type detailMsg struct {
	gen    int
	detail *voyage.Detail
	err    error
}

// reportMsg is sent when the multi-voyage report is built
type reportMsg struct {
	gen    int
	report *report.Report
	err    error
}

// exportMsg is sent when a report export has been written
type exportMsg struct {
	gen  int
	path string
	err  error
}

// voyageChangedMsg is sent after a voyage was created, edited, toggled or
// deleted
type voyageChangedMsg struct {
	gen    int
	notice string
	err    error
}
