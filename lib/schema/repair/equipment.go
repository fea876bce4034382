// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package repair

import "fmt"

// EquipmentType classifies a piece of equipment on a room plan.
type EquipmentType string

const (
	EquipmentComputer   EquipmentType = "computer"
	EquipmentAC         EquipmentType = "ac"
	EquipmentProjector  EquipmentType = "projector"
	EquipmentElectrical EquipmentType = "electrical"
	EquipmentRouter     EquipmentType = "router"
)

var validEquipmentTypes = map[EquipmentType]bool{
	EquipmentComputer:   true,
	EquipmentAC:         true,
	EquipmentProjector:  true,
	EquipmentElectrical: true,
	EquipmentRouter:     true,
}

// Valid reports whether the type is one of the known constants.
func (t EquipmentType) Valid() bool { return validEquipmentTypes[t] }

// EquipmentStatus is the maintenance condition of a piece of
// equipment on the plan. It is independent of the repair-request
// lifecycle: a request can exist for working equipment and vice
// versa.
type EquipmentStatus string

const (
	EquipmentWorking     EquipmentStatus = "working"
	EquipmentRepair      EquipmentStatus = "repair"
	EquipmentMaintenance EquipmentStatus = "maintenance"
)

var validEquipmentStatuses = map[EquipmentStatus]bool{
	EquipmentWorking:     true,
	EquipmentRepair:      true,
	EquipmentMaintenance: true,
}

// Valid reports whether the status is one of the known constants.
func (s EquipmentStatus) Valid() bool { return validEquipmentStatuses[s] }

// Side is which half of the room a seat belongs to.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Position is a point on the room diagram in percentage coordinates:
// X and Y are 0-100 relative to the diagram's width and height, so
// the same plan renders at any terminal size.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Equipment is one device on a room plan. Plans are static reference
// data: generated in code or loaded from a plan file, never written
// back by the application.
type Equipment struct {
	// ID is unique within a plan, such as "pc-07" or "projector-1".
	ID string `json:"id"`

	// Name is the display name shown in the detail panel.
	Name string `json:"name"`

	// Code is the label repair requests reference via EquipmentCode,
	// such as "PC-LC207-07".
	Code string `json:"code"`

	// Type classifies the device for iconography and coloring.
	Type EquipmentType `json:"type"`

	// Status is the device's maintenance condition on the plan.
	Status EquipmentStatus `json:"status"`

	// Position locates the device on the diagram in percentage
	// coordinates.
	Position Position `json:"position"`

	// TableNumber is the seat's table number, 1-based across the whole
	// room. Zero for devices that are not seats (projector, router).
	TableNumber int `json:"tableNumber"`

	// Side, Row, and Seat describe where a seat sits in the room
	// grid. Row and Seat are 1-based within the side; all three are
	// zero values for non-seat devices.
	Side Side `json:"side,omitempty"`
	Row  int  `json:"row,omitempty"`
	Seat int  `json:"seat,omitempty"`

	// Room, Building, and Floor are the display location, matching
	// the Location strings used on repair requests.
	Room     string `json:"room"`
	Building string `json:"building"`
	Floor    string `json:"floor"`

	// NeedsRepair flags the device as faulty on the plan itself,
	// with RepairDescription describing the known fault.
	NeedsRepair       bool   `json:"needsRepair,omitempty"`
	RepairDescription string `json:"repairDescription,omitempty"`
}

// Validate checks that the equipment record is well-formed.
func (e *Equipment) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("equipment id is required")
	}
	if e.Name == "" {
		return fmt.Errorf("equipment %s: name is required", e.ID)
	}
	if e.Code == "" {
		return fmt.Errorf("equipment %s: code is required", e.ID)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("equipment %s: invalid type %q", e.ID, e.Type)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("equipment %s: invalid status %q", e.ID, e.Status)
	}
	if e.Position.X < 0 || e.Position.X > 100 || e.Position.Y < 0 || e.Position.Y > 100 {
		return fmt.Errorf("equipment %s: position (%d,%d) outside 0-100 percentage range",
			e.ID, e.Position.X, e.Position.Y)
	}
	if e.Room == "" {
		return fmt.Errorf("equipment %s: room is required", e.ID)
	}
	return nil
}
