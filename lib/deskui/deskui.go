// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package deskui implements the interactive dashboard TUI: the login
// screen, the admin and technician dashboards, and the room map.
// The package owns the charmbracelet/bubbletea dependency so that
// only the dashboard command links the TUI stack.
package deskui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lc-facilities/repairdesk/lib/roomlayout"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/session"
	"github.com/lc-facilities/repairdesk/lib/ticket"
	"github.com/lc-facilities/repairdesk/lib/tui"
)

// Screen identifies which view the model is showing.
type Screen int

const (
	// ScreenLogin is the username/password/role form.
	ScreenLogin Screen = iota

	// ScreenAdmin is the administrator dashboard.
	ScreenAdmin

	// ScreenTechnician is the technician task list.
	ScreenTechnician

	// ScreenMap is the room map.
	ScreenMap
)

// sessionState is the tri-state knowledge of who is signed in. The
// UI renders a neutral loading view until the store has answered,
// rather than guessing.
type sessionState int

const (
	sessionUnknown sessionState = iota
	sessionAbsent
	sessionPresent
)

// Config holds the dependencies for the dashboard model.
type Config struct {
	// Session is the authentication gate.
	Session *session.Service

	// Repository is the request store.
	Repository *ticket.Repository

	// Plan is the room plan shown on the map screen.
	Plan *roomlayout.Plan

	// Theme overrides the default palette when non-zero.
	Theme *tui.Theme
}

// Model is the bubbletea model for the whole dashboard.
type Model struct {
	session    *session.Service
	repository *ticket.Repository
	plan       *roomlayout.Plan
	theme      tui.Theme
	keys       KeyMap

	screen Screen
	width  int
	height int

	sessionState sessionState
	user         repair.User
	requests     []repair.RepairRequest

	login   loginModel
	dash    dashModel
	roomMap mapModel

	// statusLine shows the outcome of the last action, or an error.
	statusLine string
	statusErr  bool
}

// NewModel constructs the dashboard model.
func NewModel(cfg Config) Model {
	theme := tui.DefaultTheme
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}
	plan := cfg.Plan
	if plan == nil {
		plan = roomlayout.LC207()
	}
	return Model{
		session:    cfg.Session,
		repository: cfg.Repository,
		plan:       plan,
		theme:      theme,
		keys:       DefaultKeyMap(),
		screen:     ScreenLogin,
		login:      newLoginModel(),
		dash:       newDashModel(),
		roomMap:    newMapModel(plan),
	}
}

// --- messages ---

// sessionLoadedMsg carries the persisted session, if any.
type sessionLoadedMsg struct {
	user  repair.User
	found bool
	err   error
}

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	user repair.User
	err  error
}

// requestsLoadedMsg carries a fresh copy of the request collection.
type requestsLoadedMsg struct {
	requests []repair.RepairRequest
	err      error
}

// actionResultMsg reports a completed mutation. Successful actions
// trigger a reload of the collection.
type actionResultMsg struct {
	info string
	err  error
}

// loggedOutMsg reports logout completion.
type loggedOutMsg struct {
	err error
}

// --- commands ---

func (m Model) loadSessionCmd() tea.Cmd {
	service := m.session
	return func() tea.Msg {
		user, found, err := service.Current(context.Background())
		return sessionLoadedMsg{user: user, found: found, err: err}
	}
}

func (m Model) loadRequestsCmd() tea.Cmd {
	repository := m.repository
	return func() tea.Msg {
		requests, err := repository.List(context.Background())
		return requestsLoadedMsg{requests: requests, err: err}
	}
}

func (m Model) loginCmd(username, password string, role repair.Role) tea.Cmd {
	service := m.session
	return func() tea.Msg {
		user, err := service.LoginAs(context.Background(), username, password, role)
		return loginResultMsg{user: user, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	service := m.session
	return func() tea.Msg {
		return loggedOutMsg{err: service.Logout(context.Background())}
	}
}

// --- bubbletea interface ---

// Init loads the persisted session so a previous login survives a
// restart.
func (m Model) Init() tea.Cmd {
	return m.loadSessionCmd()
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionLoadedMsg:
		if msg.err != nil {
			m.sessionState = sessionAbsent
			m.setError("loading session: " + msg.err.Error())
			return m, nil
		}
		if !msg.found {
			m.sessionState = sessionAbsent
			return m, nil
		}
		m.sessionState = sessionPresent
		m.user = msg.user
		m.screen = m.homeScreen()
		return m, m.loadRequestsCmd()

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case requestsLoadedMsg:
		if msg.err != nil {
			m.setError("loading requests: " + msg.err.Error())
			return m, nil
		}
		m.requests = msg.requests
		m.dash.clampCursor(len(m.visibleRequests()))
		return m, nil

	case actionResultMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		m.setInfo(msg.info)
		return m, m.loadRequestsCmd()

	case loggedOutMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		m.sessionState = sessionAbsent
		m.user = repair.User{}
		m.screen = ScreenLogin
		m.login = newLoginModel()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keys to the active screen's handler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenLogin:
		return m.updateLogin(msg)
	case ScreenAdmin, ScreenTechnician:
		return m.updateDashboard(msg)
	case ScreenMap:
		return m.updateMap(msg)
	}
	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	if m.sessionState == sessionUnknown {
		return "loading session..."
	}
	switch m.screen {
	case ScreenLogin:
		return m.viewLogin()
	case ScreenAdmin, ScreenTechnician:
		return m.viewDashboard()
	case ScreenMap:
		return m.viewMap()
	}
	return ""
}

// --- shared helpers ---

// homeScreen returns the dashboard for the signed-in user's role.
func (m Model) homeScreen() Screen {
	if m.user.Role.IsAdmin() {
		return ScreenAdmin
	}
	return ScreenTechnician
}

// visibleRequests applies the role scoping and active filters to the
// full collection.
func (m Model) visibleRequests() []repair.RepairRequest {
	requests := m.requests
	scope := ticket.ScopeAdmin
	if m.screen == ScreenTechnician {
		requests = ticket.TasksFor(requests, m.user.Name)
		scope = ticket.ScopeTechnician
	}
	return ticket.Filter(requests, m.dash.filterInput.Value(), m.dash.statusFilter, scope)
}

func (m *Model) setError(text string) {
	m.statusLine = text
	m.statusErr = true
}

func (m *Model) setInfo(text string) {
	m.statusLine = text
	m.statusErr = false
}
