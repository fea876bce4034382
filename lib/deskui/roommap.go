// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lc-facilities/repairdesk/lib/roomlayout"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/ticket"
)

// mapModel is the room map screen: a diagram of the plan's seats and
// devices with a cursor, a detail panel for the selected device, and
// a report-fault input that files a repair request for it.
type mapModel struct {
	plan *roomlayout.Plan

	// ordered is the navigation order: left seats, right seats, then
	// the fixed devices.
	ordered []repair.Equipment

	cursor      int
	reporting   bool
	description textinput.Model
}

func newMapModel(plan *roomlayout.Plan) mapModel {
	description := textinput.New()
	description.Placeholder = "describe the fault"
	description.CharLimit = 200

	ordered := append([]repair.Equipment{}, plan.Seats(repair.SideLeft)...)
	ordered = append(ordered, plan.Seats(repair.SideRight)...)
	ordered = append(ordered, plan.Devices()...)

	return mapModel{
		plan:        plan,
		ordered:     ordered,
		description: description,
	}
}

// selected returns the equipment under the cursor.
func (r *mapModel) selected() (repair.Equipment, bool) {
	if r.cursor < 0 || r.cursor >= len(r.ordered) {
		return repair.Equipment{}, false
	}
	return r.ordered[r.cursor], true
}

// move steps the cursor by delta, clamped to the list.
func (r *mapModel) move(delta int) {
	next := r.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(r.ordered) {
		next = len(r.ordered) - 1
	}
	r.cursor = next
}

// swapSide jumps the cursor to the same row and seat on the other
// side of the room. Non-seat devices stay put.
func (r *mapModel) swapSide() {
	current, ok := r.selected()
	if !ok || current.TableNumber == 0 {
		return
	}
	target := repair.SideRight
	if current.Side == repair.SideRight {
		target = repair.SideLeft
	}
	for i, equipment := range r.ordered {
		if equipment.Side == target && equipment.Row == current.Row && equipment.Seat == current.Seat {
			r.cursor = i
			return
		}
	}
}

// updateMap handles keys on the room map screen.
func (m Model) updateMap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.roomMap.reporting {
		return m.updateMapReport(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Map):
		m.screen = m.homeScreen()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		return m, m.logoutCmd()

	case key.Matches(msg, m.keys.Left):
		m.roomMap.move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.roomMap.move(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.roomMap.moveRow(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.roomMap.moveRow(1)
		return m, nil

	case key.Matches(msg, m.keys.SideSwap):
		m.roomMap.swapSide()
		return m, nil

	case key.Matches(msg, m.keys.Report):
		if _, ok := m.roomMap.selected(); !ok {
			return m, nil
		}
		m.roomMap.reporting = true
		m.roomMap.description.SetValue("")
		m.roomMap.description.Focus()
		return m, nil
	}

	return m, nil
}

// moveRow steps the cursor a row up or down on the same side,
// keeping the seat column. Devices fall back to linear movement.
func (r *mapModel) moveRow(delta int) {
	current, ok := r.selected()
	if !ok || current.TableNumber == 0 {
		r.move(delta)
		return
	}
	targetRow := current.Row + delta
	for i, equipment := range r.ordered {
		if equipment.Side == current.Side && equipment.Row == targetRow && equipment.Seat == current.Seat {
			r.cursor = i
			return
		}
	}
}

// updateMapReport collects the fault description and files the
// request.
func (m Model) updateMapReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.roomMap.reporting = false
		m.roomMap.description.Blur()
		return m, nil

	case "enter":
		m.roomMap.reporting = false
		m.roomMap.description.Blur()
		description := strings.TrimSpace(m.roomMap.description.Value())
		if description == "" {
			m.setError("a fault report needs a description")
			return m, nil
		}
		equipment, ok := m.roomMap.selected()
		if !ok {
			return m, nil
		}
		return m, m.reportFaultCmd(equipment, description)
	}

	var cmd tea.Cmd
	m.roomMap.description, cmd = m.roomMap.description.Update(msg)
	return m, cmd
}

// reportFaultCmd creates a pending request for the selected device,
// prefilled from the plan.
func (m Model) reportFaultCmd(equipment repair.Equipment, description string) tea.Cmd {
	repository := m.repository
	reporter := m.user.Name
	return func() tea.Msg {
		created, err := repository.Create(context.Background(), ticket.NewRequest{
			EquipmentCode: equipment.Code,
			EquipmentName: equipment.Name,
			Location: repair.Location{
				Building: equipment.Building,
				Floor:    equipment.Floor,
				Room:     equipment.Room,
			},
			Description: description,
			Reporter:    reporter,
			Priority:    repair.PriorityMedium,
		})
		if err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{info: "reported " + equipment.Code + " as " + created.ID}
	}
}

// --- rendering ---

// viewMap renders the room diagram with the legend and the detail
// panel for the selected device.
func (m Model) viewMap() string {
	theme := m.theme
	var b strings.Builder

	header := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).
		Render(fmt.Sprintf("%s · %s %s", m.roomMap.plan.Room, m.roomMap.plan.Building, m.roomMap.plan.Floor))
	b.WriteString(header + "\n\n")

	b.WriteString(m.renderDiagram() + "\n")
	b.WriteString(m.renderLegend() + "\n")

	if equipment, ok := m.roomMap.selected(); ok {
		b.WriteString("\n" + m.renderEquipmentDetail(equipment))
	}

	if m.roomMap.reporting {
		b.WriteString("\n> " + m.roomMap.description.View())
	}

	if m.statusLine != "" {
		style := lipgloss.NewStyle().Foreground(theme.FaintText)
		if m.statusErr {
			style = lipgloss.NewStyle().Foreground(theme.ErrorText)
		}
		b.WriteString("\n" + style.Render(m.statusLine))
	}

	help := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right,
		m.keys.SideSwap, m.keys.Report, m.keys.Back, m.keys.Quit}
	parts := make([]string, 0, len(help))
	for _, binding := range help {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.HelpText).Render(strings.Join(parts, " · ")))

	return b.String()
}

// Diagram grid size in character cells. Percentage positions scale
// into this grid; it is sized so adjacent seats never collide.
const (
	diagramWidth  = 60
	diagramHeight = 16
)

// renderDiagram paints every device onto a character grid at its
// scaled percentage position, colored by condition. A device with an
// open request shows as needing repair even when the plan says
// working.
func (m Model) renderDiagram() string {
	theme := m.theme

	type cell struct {
		text  string
		style lipgloss.Style
	}
	grid := make([][]cell, diagramHeight)
	for y := range grid {
		grid[y] = make([]cell, diagramWidth)
	}

	selected, _ := m.roomMap.selected()

	for _, equipment := range m.roomMap.ordered {
		x := equipment.Position.X * (diagramWidth - 3) / 100
		y := equipment.Position.Y * (diagramHeight - 1) / 100

		label := markerFor(equipment)
		style := lipgloss.NewStyle().Foreground(theme.EquipmentColor(m.conditionOf(equipment)))
		if equipment.ID == selected.ID {
			style = style.Reverse(true).Bold(true)
		}

		for i, r := range []rune(label) {
			if x+i < diagramWidth {
				grid[y][x+i] = cell{text: string(r), style: style}
			}
		}
	}

	var b strings.Builder
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	b.WriteString(border.Render("┌"+strings.Repeat("─", diagramWidth)+"┐") + "\n")
	for y := 0; y < diagramHeight; y++ {
		b.WriteString(border.Render("│"))
		for x := 0; x < diagramWidth; x++ {
			c := grid[y][x]
			if c.text == "" {
				b.WriteString(" ")
				continue
			}
			b.WriteString(c.style.Render(c.text))
		}
		b.WriteString(border.Render("│") + "\n")
	}
	b.WriteString(border.Render("└" + strings.Repeat("─", diagramWidth) + "┘"))
	return b.String()
}

// conditionOf joins open repair requests onto the plan: an open
// request for the device's code overrides the static condition.
func (m Model) conditionOf(equipment repair.Equipment) repair.EquipmentStatus {
	for _, request := range m.requests {
		if request.EquipmentCode == equipment.Code && request.Status != repair.StatusCompleted {
			return repair.EquipmentRepair
		}
	}
	return equipment.Status
}

// markerFor returns the short label drawn on the diagram.
func markerFor(equipment repair.Equipment) string {
	if equipment.TableNumber > 0 {
		return fmt.Sprintf("%02d", equipment.TableNumber)
	}
	switch equipment.Type {
	case repair.EquipmentProjector:
		return "PJ"
	case repair.EquipmentRouter:
		return "RT"
	case repair.EquipmentAC:
		return "AC"
	default:
		return "##"
	}
}

// renderLegend explains the condition colors.
func (m Model) renderLegend() string {
	theme := m.theme
	entries := []struct {
		color lipgloss.Color
		label string
	}{
		{theme.EquipmentWorking, "working"},
		{theme.EquipmentRepair, "repair"},
		{theme.EquipmentMaintenance, "maintenance"},
	}
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, lipgloss.NewStyle().Foreground(entry.color).Render("■ "+entry.label))
	}
	return strings.Join(parts, "  ")
}

// renderEquipmentDetail renders the selected device, including any
// open requests that reference its code.
func (m Model) renderEquipmentDetail(equipment repair.Equipment) string {
	theme := m.theme
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).
			Render(equipment.Name + " (" + equipment.Code + ")"),
		"condition  " + string(m.conditionOf(equipment)),
	}
	if equipment.TableNumber > 0 {
		lines = append(lines, fmt.Sprintf("seat       table %d, %s row %d seat %d",
			equipment.TableNumber, equipment.Side, equipment.Row, equipment.Seat))
	}
	if equipment.NeedsRepair && equipment.RepairDescription != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.EquipmentRepair).
			Render("fault      "+equipment.RepairDescription))
	}
	for _, request := range m.requests {
		if request.EquipmentCode == equipment.Code && request.Status != repair.StatusCompleted {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.StatusColor(request.Status)).
				Render(fmt.Sprintf("open       %s [%s] %s", request.ID, request.Status, request.Description)))
		}
	}
	return strings.Join(lines, "\n")
}
