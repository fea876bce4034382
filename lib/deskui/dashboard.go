// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/ticket"
)

// inputMode says what the dashboard's bottom input line is
// collecting, if anything.
type inputMode int

const (
	inputNone inputMode = iota
	inputFilter
	inputAssign
	inputNotes
)

// statusCycle is the order the status filter steps through.
var statusCycle = []string{
	ticket.StatusAll,
	string(repair.StatusPending),
	string(repair.StatusAssigned),
	string(repair.StatusInProgress),
	string(repair.StatusCompleted),
}

// dashModel holds the state shared by the admin and technician
// dashboards: cursor, filters, the action input line, and the detail
// panel.
type dashModel struct {
	cursor       int
	statusFilter string
	filterInput  textinput.Model
	actionInput  textinput.Model
	mode         inputMode
	showDetail   bool
	detail       viewport.Model
	// actionID is the request the pending input applies to.
	actionID string
}

func newDashModel() dashModel {
	filter := textinput.New()
	filter.Placeholder = "search equipment, code..."
	filter.CharLimit = 80

	action := textinput.New()
	action.CharLimit = 200

	return dashModel{
		statusFilter: ticket.StatusAll,
		filterInput:  filter,
		actionInput:  action,
		detail:       viewport.New(0, 0),
	}
}

// clampCursor keeps the cursor inside the visible list after the
// collection or filters change.
func (d *dashModel) clampCursor(visible int) {
	if d.cursor >= visible {
		d.cursor = visible - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

// updateDashboard handles keys on both dashboards.
func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An active input line captures everything except escape/enter.
	if m.dash.mode != inputNone {
		return m.updateDashboardInput(msg)
	}

	if m.dash.showDetail {
		return m.updateDetail(msg)
	}

	visible := m.visibleRequests()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Logout):
		return m, m.logoutCmd()

	case key.Matches(msg, m.keys.Map):
		m.screen = ScreenMap
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.dash.cursor > 0 {
			m.dash.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.dash.cursor < len(visible)-1 {
			m.dash.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.dash.mode = inputFilter
		m.dash.filterInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Status):
		m.dash.statusFilter = nextStatus(m.dash.statusFilter)
		m.dash.clampCursor(len(m.visibleRequests()))
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if len(visible) == 0 {
			return m, nil
		}
		m.openDetail(visible[m.dash.cursor])
		return m, nil

	case key.Matches(msg, m.keys.Assign):
		if m.screen != ScreenAdmin || len(visible) == 0 {
			return m, nil
		}
		m.dash.mode = inputAssign
		m.dash.actionID = visible[m.dash.cursor].ID
		m.dash.actionInput.Placeholder = "technician name"
		m.dash.actionInput.SetValue("")
		m.dash.actionInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Start):
		if len(visible) == 0 {
			return m, nil
		}
		return m, m.startCmd(visible[m.dash.cursor].ID)

	case key.Matches(msg, m.keys.Complete):
		if len(visible) == 0 {
			return m, nil
		}
		m.dash.mode = inputNotes
		m.dash.actionID = visible[m.dash.cursor].ID
		m.dash.actionInput.Placeholder = "closing notes (optional)"
		m.dash.actionInput.SetValue("")
		m.dash.actionInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.screen != ScreenAdmin || len(visible) == 0 {
			return m, nil
		}
		return m, m.deleteCmd(visible[m.dash.cursor].ID)
	}

	return m, nil
}

// updateDashboardInput feeds keys into the active input line.
func (m Model) updateDashboardInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		mode := m.dash.mode
		m.dash.mode = inputNone
		m.dash.actionInput.Blur()
		if mode == inputFilter {
			m.dash.filterInput.SetValue("")
			m.dash.filterInput.Blur()
			m.dash.clampCursor(len(m.visibleRequests()))
		}
		return m, nil

	case "enter":
		mode := m.dash.mode
		m.dash.mode = inputNone
		switch mode {
		case inputFilter:
			// Keep the filter text active; just drop focus.
			m.dash.filterInput.Blur()
			m.dash.clampCursor(len(m.visibleRequests()))
			return m, nil
		case inputAssign:
			m.dash.actionInput.Blur()
			name := strings.TrimSpace(m.dash.actionInput.Value())
			if name == "" {
				m.setError("assignment needs a technician name")
				return m, nil
			}
			return m, m.assignCmd(m.dash.actionID, name)
		case inputNotes:
			m.dash.actionInput.Blur()
			return m, m.completeCmd(m.dash.actionID, strings.TrimSpace(m.dash.actionInput.Value()))
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.dash.mode == inputFilter {
		m.dash.filterInput, cmd = m.dash.filterInput.Update(msg)
		m.dash.clampCursor(len(m.visibleRequests()))
	} else {
		m.dash.actionInput, cmd = m.dash.actionInput.Update(msg)
	}
	return m, cmd
}

// updateDetail handles keys while the detail panel is open.
func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
		m.dash.showDetail = false
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.dash.detail, cmd = m.dash.detail.Update(msg)
	return m, cmd
}

// openDetail fills and shows the detail panel for a request.
func (m *Model) openDetail(request repair.RepairRequest) {
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height - 6
	if height < 5 {
		height = 5
	}
	m.dash.detail = viewport.New(width, height)
	m.dash.detail.SetContent(m.renderRequestDetail(request))
	m.dash.showDetail = true
}

// --- mutation commands ---

func (m Model) assignCmd(id, technician string) tea.Cmd {
	repository := m.repository
	return func() tea.Msg {
		_, err := repository.Assign(context.Background(), id, technician)
		return actionResultMsg{info: fmt.Sprintf("%s assigned to %s", id, technician), err: err}
	}
}

func (m Model) startCmd(id string) tea.Cmd {
	repository := m.repository
	technician := ""
	if m.user.Role.IsTechnician() {
		technician = m.user.Name
	}
	return func() tea.Msg {
		_, err := repository.Start(context.Background(), id, technician)
		return actionResultMsg{info: id + " started", err: err}
	}
}

func (m Model) completeCmd(id, notes string) tea.Cmd {
	repository := m.repository
	return func() tea.Msg {
		_, err := repository.Complete(context.Background(), id, notes)
		return actionResultMsg{info: id + " completed", err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	repository := m.repository
	return func() tea.Msg {
		err := repository.Delete(context.Background(), id)
		return actionResultMsg{info: id + " deleted", err: err}
	}
}

// nextStatus advances the status filter through its cycle.
func nextStatus(current string) string {
	for i, status := range statusCycle {
		if status == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return ticket.StatusAll
}

// --- rendering ---

// viewDashboard renders the admin or technician dashboard.
func (m Model) viewDashboard() string {
	theme := m.theme
	var b strings.Builder

	role := "technician"
	if m.screen == ScreenAdmin {
		role = "admin"
	}
	header := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).
		Render(fmt.Sprintf("repairdesk · %s · %s", role, m.user.Name))
	b.WriteString(header + "\n")

	b.WriteString(m.renderStats() + "\n")

	if m.screen == ScreenAdmin {
		urgent := ticket.Urgent(m.requests, -1)
		if len(urgent) > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.PriorityHigh).
				Render(fmt.Sprintf("! %d urgent open request(s)", len(urgent))) + "\n")
		}
	}

	if bar := m.renderFilterBar(); bar != "" {
		b.WriteString(bar + "\n")
	}

	if m.dash.showDetail {
		b.WriteString(m.dash.detail.View() + "\n")
	} else {
		b.WriteString(m.renderTable())
	}

	if m.dash.mode == inputAssign || m.dash.mode == inputNotes {
		b.WriteString("\n> " + m.dash.actionInput.View())
	}

	if m.statusLine != "" {
		style := lipgloss.NewStyle().Foreground(theme.FaintText)
		if m.statusErr {
			style = lipgloss.NewStyle().Foreground(theme.ErrorText)
		}
		b.WriteString("\n" + style.Render(m.statusLine))
	}

	b.WriteString("\n" + m.renderHelp())
	return b.String()
}

// renderStats renders the role-appropriate summary line. The admin
// "in progress" bucket includes assigned requests; the technician
// view keeps them separate.
func (m Model) renderStats() string {
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	if m.screen == ScreenAdmin {
		stats := ticket.ComputeAdminStats(m.requests)
		return faint.Render(fmt.Sprintf(
			"total %d · pending %d · in progress %d · completed %d",
			stats.Total, stats.Pending, stats.InProgress, stats.Completed))
	}
	stats := ticket.ComputeTechnicianStats(ticket.TasksFor(m.requests, m.user.Name))
	return faint.Render(fmt.Sprintf(
		"pending %d · assigned %d · in progress %d · completed %d",
		stats.Pending, stats.Assigned, stats.InProgress, stats.Completed))
}

// renderFilterBar shows the live filter input or the applied filter
// summary. Hidden when nothing is filtered.
func (m Model) renderFilterBar() string {
	theme := m.theme
	parts := []string{}
	if m.dash.statusFilter != ticket.StatusAll {
		parts = append(parts, "status: "+m.dash.statusFilter)
	}
	if m.dash.mode == inputFilter {
		parts = append(parts, "/ "+m.dash.filterInput.View())
	} else if m.dash.filterInput.Value() != "" {
		parts = append(parts, "filter: "+m.dash.filterInput.Value())
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.FaintText).Render(strings.Join(parts, " · "))
}

// tableColumn widths. ID and dates are fixed-width data; equipment
// and assignee get the leftovers.
const (
	colID       = 11
	colStatus   = 12
	colPriority = 7
	colAssignee = 16
	colDate     = 10
)

// renderTable renders the request list with the cursor row
// highlighted.
func (m Model) renderTable() string {
	theme := m.theme
	visible := m.visibleRequests()
	if len(visible) == 0 {
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("no requests match")
	}

	width := m.width
	if width <= 0 {
		width = 100
	}
	equipmentWidth := width - colID - colStatus - colPriority - colAssignee - colDate - 6
	if equipmentWidth < 12 {
		equipmentWidth = 12
	}

	var b strings.Builder
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	b.WriteString(headerStyle.Render(
		pad("ID", colID)+" "+pad("STATUS", colStatus)+" "+pad("PRIO", colPriority)+" "+
			pad("EQUIPMENT", equipmentWidth)+" "+pad("ASSIGNED", colAssignee)+" "+pad("DATE", colDate)) + "\n")

	for i, request := range visible {
		row := pad(request.ID, colID) + " " +
			pad(string(request.Status), colStatus) + " " +
			pad(string(request.Priority), colPriority) + " " +
			pad(request.EquipmentName, equipmentWidth) + " " +
			pad(request.AssignedTo, colAssignee) + " " +
			pad(request.ReportDate, colDate)

		if i == m.dash.cursor {
			b.WriteString(lipgloss.NewStyle().
				Background(theme.SelectedBackground).
				Foreground(theme.SelectedForeground).
				Render(row))
		} else {
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.StatusColor(request.Status)).
				Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderRequestDetail renders the full record for the detail panel.
func (m Model) renderRequestDetail(request repair.RepairRequest) string {
	lines := []string{
		"id          " + request.ID,
		"equipment   " + request.EquipmentName + " (" + request.EquipmentCode + ")",
		"location    " + request.Location.String(),
		"status      " + string(request.Status),
		"priority    " + string(request.Priority),
		"reporter    " + request.Reporter,
		"assigned    " + orDash(request.AssignedTo),
		"reported    " + request.ReportDate,
		"completed   " + orDash(request.CompletedDate),
		"",
		"description",
		"  " + request.Description,
	}
	if request.Notes != "" {
		lines = append(lines, "", "notes", "  "+request.Notes)
	}
	if len(request.Images) > 0 {
		lines = append(lines, "", "images", "  "+strings.Join(request.Images, ", "))
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the context help line.
func (m Model) renderHelp() string {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Filter, m.keys.Status}
	if m.screen == ScreenAdmin {
		bindings = append(bindings, m.keys.Assign, m.keys.Delete)
	}
	bindings = append(bindings, m.keys.Start, m.keys.Complete, m.keys.Map, m.keys.Logout, m.keys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(m.theme.HelpText).Render(strings.Join(parts, " · "))
}

// pad truncates or pads a string to an exact display width, honoring
// wide characters.
func pad(s string, width int) string {
	truncated := ansi.Truncate(s, width, "…")
	gap := width - ansi.StringWidth(truncated)
	if gap > 0 {
		truncated += strings.Repeat(" ", gap)
	}
	return truncated
}

// orDash substitutes a dash for empty optional fields.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
