// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lc-facilities/repairdesk/lib/roomlayout"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/session"
	"github.com/lc-facilities/repairdesk/lib/store"
	"github.com/lc-facilities/repairdesk/lib/ticket"
)

// newTestModel builds a model over a seeded in-memory store.
func newTestModel(t *testing.T) Model {
	t.Helper()
	s := store.NewMemory()
	return NewModel(Config{
		Session:    session.NewService(s),
		Repository: ticket.New(ticket.Config{Store: s}),
		Plan:       roomlayout.LC207(),
	})
}

// update unwraps the tea.Model interface back to the concrete type.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want deskui.Model", next)
	}
	return model, cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// --- session routing ---

func TestSessionAbsentShowsLogin(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, sessionLoadedMsg{found: false})

	if m.sessionState != sessionAbsent {
		t.Errorf("sessionState = %v, want sessionAbsent", m.sessionState)
	}
	if m.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", m.screen)
	}
}

func TestSessionPresentRoutesToRoleHome(t *testing.T) {
	admin := repair.User{ID: "1", Username: "admin", Role: repair.RoleAdmin, Name: "ผู้ดูแลระบบ"}
	technician := repair.User{ID: "2", Username: "tech1", Role: repair.RoleTechnician, Name: "ช่างสมชาย"}

	m := newTestModel(t)
	m, cmd := update(t, m, sessionLoadedMsg{user: admin, found: true})
	if m.screen != ScreenAdmin {
		t.Errorf("admin screen = %v, want ScreenAdmin", m.screen)
	}
	if cmd == nil {
		t.Error("expected a request-loading command after session restore")
	}

	m = newTestModel(t)
	m, _ = update(t, m, sessionLoadedMsg{user: technician, found: true})
	if m.screen != ScreenTechnician {
		t.Errorf("technician screen = %v, want ScreenTechnician", m.screen)
	}
}

func TestLoginFailureStaysOnLoginScreen(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, sessionLoadedMsg{found: false})

	m, _ = update(t, m, loginResultMsg{err: session.ErrInvalidCredentials})

	if m.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", m.screen)
	}
	if m.login.errMsg == "" {
		t.Error("expected an error message on the login form")
	}
}

func TestLogoutReturnsToFreshLoginForm(t *testing.T) {
	m := newTestModel(t)
	admin := repair.User{ID: "1", Username: "admin", Role: repair.RoleAdmin, Name: "ผู้ดูแลระบบ"}
	m, _ = update(t, m, sessionLoadedMsg{user: admin, found: true})

	m, _ = update(t, m, loggedOutMsg{})

	if m.screen != ScreenLogin {
		t.Errorf("screen = %v, want ScreenLogin", m.screen)
	}
	if m.user != (repair.User{}) {
		t.Errorf("user = %+v, want zero", m.user)
	}
}

// --- dashboard state ---

// loadedAdminModel returns a model signed in as the admin with the
// seed collection loaded.
func loadedAdminModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	admin := repair.User{ID: "1", Username: "admin", Role: repair.RoleAdmin, Name: "ผู้ดูแลระบบ"}
	m, _ = update(t, m, sessionLoadedMsg{user: admin, found: true})
	m, _ = update(t, m, requestsLoadedMsg{requests: store.SeedRequests()})
	return m
}

func TestCursorStaysInsideFilteredList(t *testing.T) {
	m := loadedAdminModel(t)
	m.dash.cursor = 2

	// Narrow the collection to the single completed seed request.
	m.dash.statusFilter = string(repair.StatusCompleted)
	m.dash.clampCursor(len(m.visibleRequests()))

	if got := len(m.visibleRequests()); got != 1 {
		t.Fatalf("visible = %d, want 1", got)
	}
	if m.dash.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.dash.cursor)
	}
}

func TestStatusFilterCycles(t *testing.T) {
	got := ticket.StatusAll
	var seen []string
	for range statusCycle {
		got = nextStatus(got)
		seen = append(seen, got)
	}
	if seen[len(seen)-1] != ticket.StatusAll {
		t.Errorf("cycle ends at %q, want wrap to %q", seen[len(seen)-1], ticket.StatusAll)
	}
	unique := make(map[string]bool)
	for _, status := range seen {
		unique[status] = true
	}
	if len(unique) != len(statusCycle) {
		t.Errorf("cycle visited %d distinct states, want %d", len(unique), len(statusCycle))
	}
}

func TestActionResultReloadsRequests(t *testing.T) {
	m := loadedAdminModel(t)

	m, cmd := update(t, m, actionResultMsg{info: "done"})

	if cmd == nil {
		t.Error("successful action should trigger a reload command")
	}
	if m.statusErr {
		t.Error("info result should not set the error flag")
	}
	if m.statusLine != "done" {
		t.Errorf("statusLine = %q, want %q", m.statusLine, "done")
	}
}

func TestTechnicianSeesOnlyOwnTasks(t *testing.T) {
	m := newTestModel(t)
	technician := repair.User{ID: "2", Username: "tech1", Role: repair.RoleTechnician, Name: "ช่างสมชาย"}
	m, _ = update(t, m, sessionLoadedMsg{user: technician, found: true})
	m, _ = update(t, m, requestsLoadedMsg{requests: store.SeedRequests()})

	for _, request := range m.visibleRequests() {
		if request.AssignedTo != technician.Name && request.Status != repair.StatusPending {
			t.Errorf("request %s (assigned to %q, %s) should not be visible",
				request.ID, request.AssignedTo, request.Status)
		}
	}
}

func TestMapKeySwitchesScreens(t *testing.T) {
	m := loadedAdminModel(t)

	m, _ = update(t, m, keyMsg("m"))
	if m.screen != ScreenMap {
		t.Fatalf("screen = %v, want ScreenMap", m.screen)
	}

	// Escape returns to the role home screen.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.screen != ScreenAdmin {
		t.Errorf("screen = %v, want ScreenAdmin", m.screen)
	}
}

// --- room map navigation ---

func TestMapSideSwapKeepsRowAndSeat(t *testing.T) {
	roomMap := newMapModel(roomlayout.LC207())

	// Left side, table 7: row 2, seat 2.
	roomMap.cursor = 6
	before, _ := roomMap.selected()
	roomMap.swapSide()
	after, ok := roomMap.selected()

	if !ok {
		t.Fatal("no selection after swap")
	}
	if after.Side != repair.SideRight {
		t.Errorf("side = %q, want right", after.Side)
	}
	if after.Row != before.Row || after.Seat != before.Seat {
		t.Errorf("swap moved to row %d seat %d, want row %d seat %d",
			after.Row, after.Seat, before.Row, before.Seat)
	}
	if after.TableNumber != before.TableNumber+25 {
		t.Errorf("table = %d, want %d", after.TableNumber, before.TableNumber+25)
	}
}

func TestMapRowMovementKeepsColumn(t *testing.T) {
	roomMap := newMapModel(roomlayout.LC207())
	roomMap.cursor = 2 // table 3: row 1, seat 3

	roomMap.moveRow(1)
	after, _ := roomMap.selected()

	if after.Row != 2 || after.Seat != 3 {
		t.Errorf("moved to row %d seat %d, want row 2 seat 3", after.Row, after.Seat)
	}
}

func TestMapConditionJoinsOpenRequests(t *testing.T) {
	m := loadedAdminModel(t)
	equipment, ok := m.roomMap.plan.FindByCode("PC-LC207-15")
	if !ok {
		t.Fatal("PC-LC207-15 missing from plan")
	}
	if equipment.Status != repair.EquipmentWorking {
		t.Fatalf("plan condition = %q, want working", equipment.Status)
	}

	m.requests = append(m.requests, repair.RepairRequest{
		ID:            "R000001XYZ",
		EquipmentCode: "PC-LC207-15",
		Status:        repair.StatusPending,
	})

	if got := m.conditionOf(equipment); got != repair.EquipmentRepair {
		t.Errorf("conditionOf = %q, want repair while a request is open", got)
	}

	// Completed requests stop overriding the plan.
	m.requests[len(m.requests)-1].Status = repair.StatusCompleted
	if got := m.conditionOf(equipment); got != repair.EquipmentWorking {
		t.Errorf("conditionOf = %q, want working after completion", got)
	}
}
