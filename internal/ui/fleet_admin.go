package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/vessel-console/internal/api"
	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/validate"
)

// FleetAdmin creates vessels and assigns the users responsible for them.
// The server decides who may; the console offers it to SUPERVISOR and up.
type FleetAdmin interface {
	CreateVessel(ctx context.Context, in models.VesselInput) error
	AssignVessel(ctx context.Context, vesselID, userID int64) error
	ListUsers(ctx context.Context, q api.UserQuery) ([]models.User, error)
}

// fleetChangedMsg is sent after a vessel was created or assigned
type fleetChangedMsg struct {
	gen    int
	notice string
	err    error
}

func (m Model) canAdminFleet() bool {
	return m.deps.Fleet != nil && m.deps.Session != nil && m.deps.Session.CanManageUsers()
}

func newVesselForm() *form {
	f := &form{kind: formVessel, title: "New vessel"}
	f.add("name", "Name", "", "required")
	f.add("code", "Code", "", "optional")
	return f
}

func newAssignForm(vessel models.Vessel) *form {
	f := &form{kind: formAssign, title: "Assign " + vessel.Name, vesselID: vessel.ID}
	current := ""
	if u := vessel.Responsible(); u != nil {
		current = u.Email
	}
	f.add("user", "Responsible user", current, "email or name")
	return f
}

// changeFleet runs a fleet mutation from the dashboard
func changeFleet(gen int, run func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		notice, err := run(ctx)
		return fleetChangedMsg{gen: gen, notice: notice, err: err}
	}
}

// submitFleetForm builds the save command of the vessel and assign forms
func (m Model) submitFleetForm() (tea.Cmd, error) {
	f := m.form
	admin := m.deps.Fleet

	switch f.kind {
	case formVessel:
		in := models.VesselInput{Name: f.value("name"), Code: f.value("code")}
		if err := validate.Vessel(in); err != nil {
			return nil, err
		}
		return changeFleet(m.gen, func(ctx context.Context) (string, error) {
			if err := admin.CreateVessel(ctx, in); err != nil {
				return "", err
			}
			return fmt.Sprintf("Vessel %s created", in.Name), nil
		}), nil

	case formAssign:
		ref := f.value("user")
		if ref == "" {
			return nil, errors.New("Responsible user is required")
		}
		vesselID := f.vesselID
		return changeFleet(m.gen, func(ctx context.Context) (string, error) {
			users, err := admin.ListUsers(ctx, api.UserQuery{Q: ref, Minimal: true})
			if err != nil {
				return "", err
			}
			user, err := pickUser(users, ref)
			if err != nil {
				return "", err
			}
			if err := admin.AssignVessel(ctx, vesselID, user.ID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Assigned to %s", user.DisplayName()), nil
		}), nil
	}
	return nil, errors.New("unknown form")
}

// pickUser prefers an exact email match, then a single search result
func pickUser(users []models.User, ref string) (models.User, error) {
	for _, u := range users {
		if strings.EqualFold(u.Email, ref) {
			return u, nil
		}
	}
	switch len(users) {
	case 0:
		return models.User{}, fmt.Errorf("no user matches %q", ref)
	case 1:
		return users[0], nil
	}
	return models.User{}, fmt.Errorf("%d users match %q, enter the email", len(users), ref)
}

func (m Model) onFleetChanged(msg fleetChangedMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	if m.form != nil {
		if msg.err != nil {
			return m.formFailed(msg.err)
		}
		m.form = nil
	} else if msg.err != nil {
		return m.fail(msg.err, StateDashboard)
	}

	// the vessel list changed; reload it and land again
	m.notice = msg.notice
	return m.land()
}
