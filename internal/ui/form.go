package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/vessel-console/internal/api"
	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/validate"
	"github.com/ngmaloney/vessel-console/internal/voyage"
)

type formKind int

const (
	formRob formKind = iota
	formBunker
	formActivity
	formVoyageCreate
	formVoyageEdit
	formVessel
	formAssign
)

type formField struct {
	key   string
	label string
	input textinput.Model
}

// form is an edit screen of text inputs. Fields are keyed by the JSON name
// of the value they fill.
type form struct {
	kind   formKind
	title  string
	fields []formField
	focus  int
	saving bool
	errs   []string
	back   AppState

	voyageID int64
	// targetID is the activity or bunker being edited, 0 for a new one
	targetID     int64
	vesselID     int64
	activityType models.ActivityType
	voyage       models.Voyage
}

func (f *form) add(key, label, value, placeholder string) {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 40
	in.SetValue(value)
	f.fields = append(f.fields, formField{key: key, label: label, input: in})
}

func (f *form) setFocus(i int) {
	f.focus = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) field(key string) (formField, bool) {
	for _, fl := range f.fields {
		if fl.key == key {
			return fl, true
		}
	}
	return formField{}, false
}

func (f *form) value(key string) string {
	fl, _ := f.field(key)
	return strings.TrimSpace(fl.input.Value())
}

// float parses an optional number; absent or empty fields are nil
func (f *form) float(key string) (*float64, error) {
	fl, ok := f.field(key)
	if !ok {
		return nil, nil
	}
	s := strings.ReplaceAll(strings.TrimSpace(fl.input.Value()), ",", "")
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", fl.label)
	}
	return &v, nil
}

func (f *form) requiredFloat(key string) (float64, error) {
	v, err := f.float(key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		fl, _ := f.field(key)
		return 0, fmt.Errorf("%s is required", fl.label)
	}
	return *v, nil
}

func (f *form) integer(key string) (int, error) {
	s := f.value(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		fl, _ := f.field(key)
		return 0, fmt.Errorf("%s must be a whole number", fl.label)
	}
	return v, nil
}

const timePlaceholder = "YYYY-MM-DDTHH:MM"

func newRobForm(d *voyage.Detail) *form {
	f := &form{kind: formRob, title: "ROB", voyageID: d.Voyage.ID}
	f.add("openingRob", "Opening ROB (L)", inputNumber(d.Fuel.Rob.OpeningRob), "0")
	f.add("closingRob", "Closing ROB (L)", inputNumber(d.Fuel.Rob.ClosingRob), "0")
	return f
}

func newBunkerForm(voyageID int64, b *models.Bunker) *form {
	f := &form{kind: formBunker, title: "Bunker", voyageID: voyageID}
	var at, amount, remark string
	if b != nil {
		f.targetID = b.ID
		at, amount, remark = inputTime(b.At), inputNumber(b.Amount), b.Remark
	}
	f.add("at", "Date", at, timePlaceholder)
	f.add("amount", "Amount (L)", amount, "0")
	f.add("remark", "Remark", remark, "optional")
	return f
}

// newActivityForm offers the fields that apply to t
func newActivityForm(voyageID int64, t models.ActivityType, a *models.Activity) *form {
	f := &form{kind: formActivity, title: t.Label() + " activity", voyageID: voyageID, activityType: t}
	if a == nil {
		a = &models.Activity{}
	} else {
		f.targetID = a.ID
	}

	f.add("startAt", "Start", inputTime(a.StartAt), timePlaceholder)
	f.add("endAt", "End", inputTime(a.EndAt), timePlaceholder)
	f.add("fuelUsed", "Fuel used (L)", inputNumber(a.FuelUsed), "0")
	if t != models.Other {
		f.add("reeferCount", "Reefer count", inputNumber(a.ReeferCount), "0")
		f.add("mainEngineCount", "Main engines", inputNumber(a.MainEngineCount), "0")
		f.add("mainEngineHours", "Main engine hours", inputNumber(a.MainEngineHours), "0")
		f.add("generatorCount", "Generators", inputNumber(a.GeneratorCount), "0")
		f.add("generatorHours", "Generator hours", inputNumber(a.GeneratorHours), "0")
	}
	if t.IsCargo() {
		f.add("containerCount", "Containers", inputNumber(a.ContainerCount), "0")
		f.add("totalContainerWeight", "Container weight", inputNumber(a.TotalContainerWeight), "0")
	}
	if t == models.FullSpeedAway {
		f.add("avgSpeed", "Average speed (kn)", inputNumber(a.AvgSpeed), "0")
	}
	remark := "optional"
	if t == models.Other {
		remark = "required"
	}
	f.add("remark", "Remark", a.Remark, remark)
	return f
}

// newVoyageForm creates a voyage when v is nil, otherwise edits it
func newVoyageForm(vessel models.Vessel, v *models.Voyage, month, year int) *form {
	if v == nil {
		if month == 0 {
			month = int(time.Now().Month())
		}
		f := &form{kind: formVoyageCreate, title: "New voyage on " + vessel.Name, vesselID: vessel.ID}
		f.add("voyNo", "Voyage no.", "", "e.g. 2025-014")
		f.add("startAt", "Start", "", timePlaceholder)
		f.add("postingMonth", "Posting month", strconv.Itoa(month), "1-12")
		f.add("postingYear", "Posting year", strconv.Itoa(year), "")
		return f
	}

	f := &form{kind: formVoyageEdit, title: "Voy " + v.VoyNo, vesselID: vessel.ID, voyageID: v.ID, voyage: *v}
	f.add("voyNo", "Voyage no.", v.VoyNo, "")
	f.add("startAt", "Start", inputTime(v.StartAt), timePlaceholder)
	f.add("endAt", "End", inputTime(v.EndAt), "empty while the voyage is open")
	f.add("postingMonth", "Posting month", strconv.Itoa(v.PostingMonth), "1-12")
	f.add("postingYear", "Posting year", strconv.Itoa(v.PostingYear), "")
	return f
}

// openForm shows f on top of the current screen
func (m Model) openForm(f *form) (tea.Model, tea.Cmd) {
	f.back = m.state
	if m.state == StateActivityType {
		f.back = StateDetail
	}
	f.setFocus(0)
	m.form = f
	m.state = StateForm
	m.gen++
	return m, textinput.Blink
}

// formFailed shows a save error inside the form
func (m Model) formFailed(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, api.ErrUnauthorized) {
		return m.fail(err, StateLogin)
	}
	m.form.saving = false
	var verr *validate.Error
	if errors.As(err, &verr) {
		m.form.errs = verr.Problems
	} else {
		m.form.errs = []string{err.Error()}
	}
	return m, nil
}

// handleFormKey handles input on an edit form
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.state = StateDashboard
		return m, nil
	}
	if f.saving {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.state = f.back
		m.form = nil
		m.gen++
		return m, nil
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case "enter":
		cmd, err := m.submitForm()
		if err != nil {
			var verr *validate.Error
			if errors.As(err, &verr) {
				f.errs = verr.Problems
			} else {
				f.errs = []string{err.Error()}
			}
			return m, nil
		}
		f.errs = nil
		f.saving = true
		spin := m.startSpin()
		return m, tea.Batch(spin, cmd)
	}

	return m, f.update(msg)
}

// submitForm parses the form into its request and returns the command
// that saves it
func (m Model) submitForm() (tea.Cmd, error) {
	f := m.form
	svc := m.deps.Voyages
	gen := m.gen

	switch f.kind {
	case formRob:
		opening, err := f.requiredFloat("openingRob")
		if err != nil {
			return nil, err
		}
		closing, err := f.requiredFloat("closingRob")
		if err != nil {
			return nil, err
		}
		in := models.RobInput{OpeningRob: opening, ClosingRob: closing, Unit: models.UnitLiters}
		return saveDetail(gen, func(ctx context.Context) (*voyage.Detail, error) {
			return svc.SaveRob(ctx, f.voyageID, in)
		}), nil

	case formBunker:
		amount, err := f.requiredFloat("amount")
		if err != nil {
			return nil, err
		}
		in := models.BunkerInput{At: apiTime(f.value("at")), Amount: amount, Unit: models.UnitLiters, Remark: f.value("remark")}
		return saveDetail(gen, func(ctx context.Context) (*voyage.Detail, error) {
			return svc.SaveBunker(ctx, f.voyageID, f.targetID, in)
		}), nil

	case formActivity:
		in := models.ActivityInput{
			Type:    f.activityType,
			StartAt: apiTime(f.value("startAt")),
			EndAt:   apiTime(f.value("endAt")),
			Remark:  f.value("remark"),
		}
		numbers := map[string]**float64{
			"fuelUsed":             &in.FuelUsed,
			"reeferCount":          &in.ReeferCount,
			"mainEngineCount":      &in.MainEngineCount,
			"mainEngineHours":      &in.MainEngineHours,
			"generatorCount":       &in.GeneratorCount,
			"generatorHours":       &in.GeneratorHours,
			"containerCount":       &in.ContainerCount,
			"totalContainerWeight": &in.TotalContainerWeight,
			"avgSpeed":             &in.AvgSpeed,
		}
		for _, fl := range f.fields {
			target, ok := numbers[fl.key]
			if !ok {
				continue
			}
			v, err := f.float(fl.key)
			if err != nil {
				return nil, err
			}
			*target = v
		}
		return saveDetail(gen, func(ctx context.Context) (*voyage.Detail, error) {
			return svc.SaveActivity(ctx, f.voyageID, f.targetID, in)
		}), nil

	case formVoyageCreate, formVoyageEdit:
		month, err := f.integer("postingMonth")
		if err != nil {
			return nil, err
		}
		year, err := f.integer("postingYear")
		if err != nil {
			return nil, err
		}
		in := models.VoyageInput{
			VoyNo:        f.value("voyNo"),
			StartAt:      apiTime(f.value("startAt")),
			PostingMonth: month,
			PostingYear:  year,
		}

		if f.kind == formVoyageCreate {
			return changeVoyage(gen, fmt.Sprintf("Voy %s created", in.VoyNo), func(ctx context.Context) error {
				return svc.Create(ctx, f.vesselID, in)
			}), nil
		}

		end := apiTime(f.value("endAt"))
		in.EndAt = &end
		if s := models.VoyageStatus(strings.ToUpper(string(f.voyage.Status))); s == models.VoyageOpen || s == models.VoyageClosed {
			in.Status = s
		}
		return changeVoyage(gen, fmt.Sprintf("Voy %s updated", in.VoyNo), func(ctx context.Context) error {
			return svc.Update(ctx, f.voyageID, in)
		}), nil

	case formVessel, formAssign:
		return m.submitFleetForm()
	}
	return nil, errors.New("unknown form")
}

// viewForm renders the focused edit form
func (m Model) viewForm() string {
	f := m.form
	if f == nil {
		return ""
	}

	var rows []string
	for i, fl := range f.fields {
		label := labelStyle.Render(fl.label)
		if i == f.focus {
			label = titleStyle.Render("› " + fl.label)
		}
		rows = append(rows, label, fl.input.View(), "")
	}

	sections := []string{
		m.header(f.title),
		"",
		inputBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	}
	for _, e := range f.errs {
		sections = append(sections, errorStyle.Render("✗ "+e))
	}
	if f.saving {
		sections = append(sections, m.spinner.View()+" Saving...")
	}
	sections = append(sections, keyHelp("Tab/↑/↓", "Field", "Enter", "Save", "Esc", "Cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// ask shows a yes/no question; run receives the generation of the screen
// the answer returns to
func (m Model) ask(prompt string, back AppState, run func(gen int) tea.Cmd) (tea.Model, tea.Cmd) {
	m.confirm = &confirmation{prompt: prompt, back: back, run: run}
	m.state = StateConfirm
	m.gen++
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.confirm
	if c == nil {
		m.state = StateDashboard
		return m, nil
	}

	switch msg.String() {
	case "y", "Y":
		m.confirm = nil
		m.state = c.back
		m.gen++
		m.loading = true
		spin := m.startSpin()
		return m, tea.Batch(spin, c.run(m.gen))
	case "n", "N", "esc":
		m.confirm = nil
		m.state = c.back
		m.gen++
	}
	return m, nil
}

func (m Model) viewConfirm() string {
	if m.confirm == nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header("Confirm"),
		"",
		inputBoxStyle.Render(errorStyle.Render(m.confirm.prompt)),
		keyHelp("y", "Yes", "n", "No"),
	)
}
