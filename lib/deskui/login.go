// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
)

// loginField identifies which form element has focus.
type loginField int

const (
	fieldUsername loginField = iota
	fieldPassword
	fieldRole
)

// loginModel is the login form: username, password, and the role the
// user claims to sign in as. The role selector mirrors the two
// entrances of the original tool; picking the wrong one for a valid
// account is reported as a role mismatch, not bad credentials.
type loginModel struct {
	username textinput.Model
	password textinput.Model
	role     repair.Role
	focus    loginField
	busy     bool
	errMsg   string
}

func newLoginModel() loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{
		username: username,
		password: password,
		role:     repair.RoleTechnician,
	}
}

// updateLogin handles keys on the login screen.
func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		m.login.setFocus((m.login.focus + 1) % 3)
		return m, nil

	case "shift+tab", "up":
		m.login.setFocus((m.login.focus + 2) % 3)
		return m, nil

	case "left", "right", " ":
		if m.login.focus == fieldRole {
			if m.login.role == repair.RoleTechnician {
				m.login.role = repair.RoleAdmin
			} else {
				m.login.role = repair.RoleTechnician
			}
			return m, nil
		}

	case "enter":
		username := strings.TrimSpace(m.login.username.Value())
		password := m.login.password.Value()
		if username == "" || password == "" {
			m.login.errMsg = "username and password are required"
			return m, nil
		}
		m.login.busy = true
		m.login.errMsg = ""
		return m, m.loginCmd(username, password, m.login.role)
	}

	var cmd tea.Cmd
	switch m.login.focus {
	case fieldUsername:
		m.login.username, cmd = m.login.username.Update(msg)
	case fieldPassword:
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

// handleLoginResult applies the outcome of a login attempt.
func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		// ErrInvalidCredentials and ErrRoleMismatch carry distinct
		// messages; show whichever applies.
		m.login.errMsg = msg.err.Error()
		return m, nil
	}

	m.sessionState = sessionPresent
	m.user = msg.user
	m.screen = m.homeScreen()
	m.statusLine = ""
	return m, m.loadRequestsCmd()
}

// setFocus moves keyboard focus between the form fields.
func (l *loginModel) setFocus(target loginField) {
	l.focus = target
	l.username.Blur()
	l.password.Blur()
	switch target {
	case fieldUsername:
		l.username.Focus()
	case fieldPassword:
		l.password.Focus()
	}
}

// viewLogin renders the login form.
func (m Model) viewLogin() string {
	theme := m.theme

	title := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render("ระบบแจ้งซ่อมครุภัณฑ์ · repairdesk")

	roleLabel := "technician"
	if m.login.role.IsAdmin() {
		roleLabel = "admin"
	}
	roleStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	if m.login.focus == fieldRole {
		roleStyle = roleStyle.
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground)
	}

	lines := []string{
		title,
		"",
		"  username  " + m.login.username.View(),
		"  password  " + m.login.password.View(),
		"  sign in as  " + roleStyle.Render("< "+roleLabel+" >"),
		"",
	}

	if m.login.busy {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.FaintText).Render("  signing in..."))
	}
	if m.login.errMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ErrorText).Render("  "+m.login.errMsg))
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("  tab: next field · space: switch role · enter: sign in · ctrl+c: quit")
	lines = append(lines, "", help)

	form := strings.Join(lines, "\n")
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
