// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the shared visual vocabulary for repairdesk's
// terminal surfaces: the dashboard TUI and the CLI's rendered
// tables both draw from the same theme.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
)

// Theme defines the color palette for repairdesk's terminal UIs.
// All colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Request priority colors.
	PriorityHigh   lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityLow    lipgloss.Color

	// Request lifecycle colors.
	StatusPending    lipgloss.Color
	StatusAssigned   lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusCompleted  lipgloss.Color

	// Equipment condition colors for the room map.
	EquipmentWorking     lipgloss.Color
	EquipmentRepair      lipgloss.Color
	EquipmentMaintenance lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color
}

// PriorityColor returns the color for a request priority. Unknown
// values render as normal text.
func (theme Theme) PriorityColor(priority repair.Priority) lipgloss.Color {
	switch priority {
	case repair.PriorityHigh:
		return theme.PriorityHigh
	case repair.PriorityMedium:
		return theme.PriorityMedium
	case repair.PriorityLow:
		return theme.PriorityLow
	default:
		return theme.NormalText
	}
}

// StatusColor returns the color for a request status. Unknown values
// render faint.
func (theme Theme) StatusColor(status repair.Status) lipgloss.Color {
	switch status {
	case repair.StatusPending:
		return theme.StatusPending
	case repair.StatusAssigned:
		return theme.StatusAssigned
	case repair.StatusInProgress:
		return theme.StatusInProgress
	case repair.StatusCompleted:
		return theme.StatusCompleted
	default:
		return theme.FaintText
	}
}

// EquipmentColor returns the color for an equipment condition on the
// room map.
func (theme Theme) EquipmentColor(status repair.EquipmentStatus) lipgloss.Color {
	switch status {
	case repair.EquipmentWorking:
		return theme.EquipmentWorking
	case repair.EquipmentRepair:
		return theme.EquipmentRepair
	case repair.EquipmentMaintenance:
		return theme.EquipmentMaintenance
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PriorityHigh:   lipgloss.Color("196"), // bright red
	PriorityMedium: lipgloss.Color("220"), // amber
	PriorityLow:    lipgloss.Color("245"), // gray

	StatusPending:    lipgloss.Color("220"), // amber: waiting for pickup
	StatusAssigned:   lipgloss.Color("75"),  // blue: claimed
	StatusInProgress: lipgloss.Color("208"), // orange: being worked
	StatusCompleted:  lipgloss.Color("114"), // green: done

	EquipmentWorking:     lipgloss.Color("114"), // green
	EquipmentRepair:      lipgloss.Color("196"), // red
	EquipmentMaintenance: lipgloss.Color("220"), // amber

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("196"),
}
