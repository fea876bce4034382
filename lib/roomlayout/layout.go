// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package roomlayout provides the static equipment plans behind the
// room map view. A plan is read-only reference data: the application
// renders it and joins repair requests onto it by equipment code,
// but never writes it. The LC207 computer lab is built in; other
// rooms can be described in plan files.
package roomlayout

import (
	"fmt"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
)

// Plan is one room's equipment arrangement.
type Plan struct {
	// Room, Building, and Floor identify the room. Room is the short
	// code ("LC207"); Building and Floor are display strings.
	Room     string `json:"room"`
	Building string `json:"building"`
	Floor    string `json:"floor"`

	// Equipment lists every device in the room, seats first.
	Equipment []repair.Equipment `json:"equipment"`
}

// LC207 layout geometry. Positions are percentages of the diagram:
// two blocks of 25 seats flank a center aisle, five rows of five,
// with the projector at the front and the router on the right wall.
const (
	lc207Rows        = 5
	lc207SeatsPerRow = 5
	lc207LeftBaseX   = 15
	lc207RightBaseX  = 55
	lc207ColumnStep  = 5
	lc207BaseY       = 25
	lc207RowStep     = 10
)

// LC207 returns the built-in plan for the LC207 computer lab: 50
// numbered seats (1-25 left, 26-50 right), a projector, and a
// router. Each call returns a fresh Plan.
func LC207() *Plan {
	plan := &Plan{
		Room:     "LC207",
		Building: "ตึก LC",
		Floor:    "ชั้น 2",
	}

	for _, side := range []repair.Side{repair.SideLeft, repair.SideRight} {
		baseX := lc207LeftBaseX
		tableOffset := 0
		if side == repair.SideRight {
			baseX = lc207RightBaseX
			tableOffset = lc207Rows * lc207SeatsPerRow
		}
		for row := 1; row <= lc207Rows; row++ {
			for seat := 1; seat <= lc207SeatsPerRow; seat++ {
				table := tableOffset + (row-1)*lc207SeatsPerRow + seat
				equipment := repair.Equipment{
					ID:          fmt.Sprintf("%d", table),
					Name:        fmt.Sprintf("คอมพิวเตอร์ %02d", table),
					Code:        fmt.Sprintf("PC-LC207-%02d", table),
					Type:        repair.EquipmentComputer,
					Status:      repair.EquipmentWorking,
					Position:    seatPosition(baseX, row, seat),
					TableNumber: table,
					Side:        side,
					Row:         row,
					Seat:        seat,
					Room:        plan.Room,
					Building:    plan.Building,
					Floor:       plan.Floor,
				}
				applyKnownFaults(&equipment)
				plan.Equipment = append(plan.Equipment, equipment)
			}
		}
	}

	plan.Equipment = append(plan.Equipment,
		repair.Equipment{
			ID:       "51",
			Name:     "โปรเจคเตอร์",
			Code:     "PJ-LC207-01",
			Type:     repair.EquipmentProjector,
			Status:   repair.EquipmentWorking,
			Position: repair.Position{X: 45, Y: 10},
			Side:     repair.SideLeft,
			Room:     plan.Room,
			Building: plan.Building,
			Floor:    plan.Floor,
		},
		repair.Equipment{
			ID:       "53",
			Name:     "Router",
			Code:     "RT-LC207-01",
			Type:     repair.EquipmentRouter,
			Status:   repair.EquipmentWorking,
			Position: repair.Position{X: 85, Y: 50},
			Side:     repair.SideRight,
			Room:     plan.Room,
			Building: plan.Building,
			Floor:    plan.Floor,
		},
	)

	return plan
}

// seatPosition computes a seat's diagram position from the linear
// grid formula.
func seatPosition(baseX, row, seat int) repair.Position {
	return repair.Position{
		X: baseX + (seat-1)*lc207ColumnStep,
		Y: lc207BaseY + (row-1)*lc207RowStep,
	}
}

// applyKnownFaults marks the two seats that ship flagged on the
// plan: table 2 needs repair, table 8 is under maintenance.
func applyKnownFaults(equipment *repair.Equipment) {
	switch equipment.TableNumber {
	case 2:
		equipment.Status = repair.EquipmentRepair
		equipment.NeedsRepair = true
		equipment.RepairDescription = "จอไม่แสดงผล"
	case 8:
		equipment.Status = repair.EquipmentMaintenance
	}
}

// FindByCode returns the equipment with the given code. The boolean
// is false when no device matches: repair requests may reference
// codes outside the plan and that is not an error.
func (p *Plan) FindByCode(code string) (repair.Equipment, bool) {
	for _, equipment := range p.Equipment {
		if equipment.Code == code {
			return equipment, true
		}
	}
	return repair.Equipment{}, false
}

// Seats returns the numbered seats on the given side, in table
// order.
func (p *Plan) Seats(side repair.Side) []repair.Equipment {
	var result []repair.Equipment
	for _, equipment := range p.Equipment {
		if equipment.TableNumber > 0 && equipment.Side == side {
			result = append(result, equipment)
		}
	}
	return result
}

// Devices returns the non-seat equipment (projector, router, and
// anything a plan file adds).
func (p *Plan) Devices() []repair.Equipment {
	var result []repair.Equipment
	for _, equipment := range p.Equipment {
		if equipment.TableNumber == 0 {
			result = append(result, equipment)
		}
	}
	return result
}

// Validate checks every device on the plan and that codes are
// unique within it.
func (p *Plan) Validate() error {
	if p.Room == "" {
		return fmt.Errorf("roomlayout: plan room is required")
	}
	codes := make(map[string]bool, len(p.Equipment))
	for i := range p.Equipment {
		equipment := &p.Equipment[i]
		if err := equipment.Validate(); err != nil {
			return fmt.Errorf("roomlayout: plan %s: %w", p.Room, err)
		}
		if codes[equipment.Code] {
			return fmt.Errorf("roomlayout: plan %s: duplicate code %q", p.Room, equipment.Code)
		}
		codes[equipment.Code] = true
	}
	return nil
}
