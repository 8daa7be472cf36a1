package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/vessel-console/internal/api"
	"github.com/ngmaloney/vessel-console/internal/dashboard"
	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/report"
	"github.com/ngmaloney/vessel-console/internal/session"
	"github.com/ngmaloney/vessel-console/internal/voyage"
)

// AppState represents the current screen of the console
type AppState int

const (
	StateLogin        AppState = iota // Email and password
	StateLoading                      // Loading vessels after sign-in
	StateDashboard                    // Fleet summary
	StateVoyages                      // Voyages of one vessel
	StateDetail                       // One voyage with activities and fuel
	StateReport                       // Multi-voyage fuel report
	StateActivityType                 // Pick the type of a new activity
	StateForm                         // Edit form
	StateConfirm                      // Yes/no before a delete
	StateError                        // Error state
)

// detailPane selects the table the cursor moves in on the voyage screen
type detailPane int

const (
	paneActivities detailPane = iota
	paneBunkers
)

// VesselLister loads the vessels offered by the filters
type VesselLister interface {
	ListVessels(ctx context.Context) ([]models.Vessel, error)
}

// Deps are the services the console drives.
type Deps struct {
	Session   *session.Session
	Auth      session.Authenticator
	Vessels   VesselLister
	Dashboard *dashboard.Aggregator
	Voyages   *voyage.Service
	Reports   *report.Builder
	Fleet     FleetAdmin
	KPI       float64
	ExportDir string
	Location  *time.Location
}

// confirmation is a pending yes/no question
type confirmation struct {
	prompt string
	back   AppState
	run    func(gen int) tea.Cmd
}

// Model represents the application's state
type Model struct {
	deps   Deps
	state  AppState
	gen    int
	width  int
	height int
	err    error
	// errBack is the screen any key returns to from StateError
	errBack AppState
	notice  string

	// Loading
	spinner  spinner.Model
	spinning bool
	loading  bool

	// Login
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loggingIn     bool
	loginErr      string

	// Filters shared by dashboard and voyage list; vesselIdx -1 is all vessels
	vessels   []models.Vessel
	vesselIdx int
	month     int
	year      int

	// Screens
	summary      *dashboard.Summary
	voyages      []models.Voyage
	voyageList   list.Model
	detail       *voyage.Detail
	pane         detailPane
	actCursor    int
	bunkerCursor int
	report       *report.Report
	typeCursor   int
	form         *form
	confirm      *confirmation
}

// NewModel creates a new application model. A restored session skips the
// login screen.
func NewModel(deps Deps) Model {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.KPI == 0 {
		deps.KPI = report.DefaultKPI
	}
	if deps.ExportDir == "" {
		deps.ExportDir = "reports"
	}

	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.CharLimit = 100
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 100
	password.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	now := time.Now().In(deps.Location)
	m := Model{
		deps:          deps,
		state:         StateLogin,
		spinner:       s,
		emailInput:    email,
		passwordInput: password,
		vesselIdx:     -1,
		month:         int(now.Month()),
		year:          now.Year(),
		voyageList:    createVoyageList(nil, deps.Location, 0, 0),
	}
	if deps.Session != nil && deps.Session.Authenticated() {
		m.state = StateLoading
		m.spinning = true
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading {
		return tea.Batch(m.spinner.Tick, fetchVessels(m.gen, m.deps.Vessels))
	}
	return textinput.Blink
}

// stale reports whether a result belongs to a view that has been left
func (m Model) stale(gen int) bool {
	return gen != m.gen
}

func (m Model) busy() bool {
	return m.state == StateLoading || m.loading || m.loggingIn || (m.form != nil && m.form.saving)
}

func (m *Model) startSpin() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// user is the signed-in user, or a zero user without a session
func (m Model) user() models.User {
	if m.deps.Session != nil {
		if u := m.deps.Session.User(); u != nil {
			return *u
		}
	}
	return models.User{}
}

// isEmployee reports whether the console runs in crew mode
func (m Model) isEmployee() bool {
	return m.deps.Session != nil && m.deps.Session.IsEmployee()
}

func (m Model) selectedVessel() (models.Vessel, bool) {
	if m.vesselIdx < 0 || m.vesselIdx >= len(m.vessels) {
		return models.Vessel{}, false
	}
	return m.vessels[m.vesselIdx], true
}

func (m Model) voyageFilter() models.VoyageFilter {
	return models.VoyageFilter{Year: m.year, Month: m.month}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.voyageList.SetSize(max(msg.Width-4, 0), listHeight(msg.Height))
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginMsg:
		return m.onLogin(msg)
	case vesselsMsg:
		return m.onVessels(msg)
	case summaryMsg:
		return m.onSummary(msg)
	case voyagesMsg:
		return m.onVoyages(msg)
	case detailMsg:
		return m.onDetail(msg)
	case reportMsg:
		return m.onReport(msg)
	case exportMsg:
		return m.onExport(msg)
	case voyageChangedMsg:
		return m.onVoyageChanged(msg)
	case fleetChangedMsg:
		return m.onFleetChanged(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.state {
	case StateLogin:
		if m.loginFocus == 0 {
			m.emailInput, cmd = m.emailInput.Update(msg)
		} else {
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		}
	case StateForm:
		if m.form != nil {
			cmd = m.form.update(msg)
		}
	case StateVoyages:
		m.voyageList, cmd = m.voyageList.Update(msg)
	}
	return m, cmd
}

// handleKey routes keyboard input to the current screen
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case StateLogin:
		return m.handleLoginKey(msg)
	case StateForm:
		return m.handleFormKey(msg)
	case StateConfirm:
		return m.handleConfirmKey(msg)
	case StateError:
		// Any key returns to the previous screen
		m.err = nil
		if m.errBack == StateLogin {
			return m.toLogin("")
		}
		m.state = m.errBack
		m.gen++
		return m, nil
	}

	m.notice = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "L":
		return m.logout()
	}

	switch m.state {
	case StateDashboard:
		return m.handleDashboardKey(msg)
	case StateVoyages:
		return m.handleVoyagesKey(msg)
	case StateDetail:
		return m.handleDetailKey(msg)
	case StateReport:
		return m.handleReportKey(msg)
	case StateActivityType:
		return m.handleActivityTypeKey(msg)
	}
	return m, nil
}

// fail shows err; an expired session goes back to the login screen
func (m Model) fail(err error, back AppState) (tea.Model, tea.Cmd) {
	m.loading = false
	if errors.Is(err, api.ErrUnauthorized) {
		return m.toLogin("Your session has expired. Please sign in again.")
	}
	m.err = err
	m.errBack = back
	m.state = StateError
	m.gen++
	return m, nil
}

func (m Model) toLogin(notice string) (tea.Model, tea.Cmd) {
	m.state = StateLogin
	m.gen++
	m.loading = false
	m.loggingIn = false
	m.notice = notice
	m.loginErr = ""
	m.summary = nil
	m.voyages = nil
	m.detail = nil
	m.report = nil
	m.form = nil
	m.confirm = nil
	m.vessels = nil
	m.vesselIdx = -1
	m.passwordInput.SetValue("")
	m.loginFocus = 0
	m.focusLogin()
	return m, textinput.Blink
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	next, blink := m.toLogin("Signed out.")
	if m.deps.Session == nil {
		return next, blink
	}
	return next, tea.Batch(blink, signOut(m.deps.Session))
}

// land loads the vessels after sign-in and routes by role
func (m Model) land() (tea.Model, tea.Cmd) {
	m.state = StateLoading
	m.gen++
	spin := m.startSpin()
	return m, tea.Batch(spin, fetchVessels(m.gen, m.deps.Vessels))
}

func (m Model) onVessels(msg vesselsMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	if msg.err != nil {
		return m.fail(msg.err, StateLogin)
	}
	m.vessels = msg.vessels
	m.vesselIdx = -1
	if m.isEmployee() {
		return m.enterVoyages()
	}
	return m.enterDashboard()
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateLogin:
		return m.viewLogin()
	case StateLoading:
		return m.viewLoading()
	case StateDashboard:
		return m.viewDashboard()
	case StateVoyages:
		return m.viewVoyages()
	case StateDetail:
		return m.viewDetail()
	case StateReport:
		return m.viewReport()
	case StateActivityType:
		return m.viewActivityType()
	case StateForm:
		return m.viewForm()
	case StateConfirm:
		return m.viewConfirm()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		titleStyle.Render("⚓ Vessel Console"),
		"",
		m.spinner.View()+" Loading vessels...",
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to go back • Ctrl+C: Quit")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, "")
	sections = append(sections, errorMsg)
	sections = append(sections, "")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// header renders the title line with the signed-in user and the spinner
func (m Model) header(title string) string {
	line := titleStyle.Render("⚓ " + title)
	if u := m.user(); u.Email != "" {
		line += "  " + mutedStyle.Render(u.DisplayName()+" ("+u.Role+")")
	}
	if m.busy() {
		line += "  " + m.spinner.View()
	}
	return line
}

// noticeLine renders the one-line status message, if any
func (m Model) noticeLine() string {
	if m.notice == "" {
		return ""
	}
	return successStyle.Render(m.notice)
}

func listHeight(height int) int {
	return max(height-12, 5)
}
