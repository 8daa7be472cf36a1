package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) focusLogin() {
	if m.loginFocus == 0 {
		m.emailInput.Focus()
		m.passwordInput.Blur()
	} else {
		m.emailInput.Blur()
		m.passwordInput.Focus()
	}
}

// handleLoginKey handles input on the login screen
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		m.focusLogin()
		return m, nil

	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.focusLogin()
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.loginErr = "Email and password are required"
			return m, nil
		}
		m.loginErr = ""
		m.notice = ""
		m.loggingIn = true
		m.gen++
		spin := m.startSpin()
		return m, tea.Batch(spin, signIn(m.gen, m.deps.Session, m.deps.Auth, email, password))
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) onLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.loggingIn = false
	if msg.err != nil {
		m.loginErr = msg.err.Error()
		return m, nil
	}
	m.passwordInput.SetValue("")
	return m.land()
}

// viewLogin renders the sign-in form
func (m Model) viewLogin() string {
	title := titleStyle.Render("⚓ Vessel Console")
	subtitle := mutedStyle.Render("Sign in to the fleet API")

	form := lipgloss.JoinVertical(
		lipgloss.Left,
		labelStyle.Render("Email"),
		m.emailInput.View(),
		"",
		labelStyle.Render("Password"),
		m.passwordInput.View(),
	)

	var status string
	switch {
	case m.loggingIn:
		status = m.spinner.View() + " Signing in..."
	case m.loginErr != "":
		status = errorStyle.Render("✗ " + m.loginErr)
	case m.notice != "":
		status = mutedStyle.Render(m.notice)
	}

	help := keyHelp("Tab", "Switch field", "Enter", "Sign in", "Ctrl+C", "Quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		title,
		subtitle,
		"",
		inputBoxStyle.Render(form),
		"",
		status,
		help,
	)
}
