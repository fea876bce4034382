// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package repair

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a repair request.
type Status string

const (
	// StatusPending means the request has been reported and no
	// technician has picked it up. Pending work is visible to every
	// technician as claimable.
	StatusPending Status = "pending"

	// StatusAssigned means an administrator has assigned the request
	// to a named technician who has not started work yet.
	StatusAssigned Status = "assigned"

	// StatusInProgress means the assigned technician is actively
	// working on the repair.
	StatusInProgress Status = "in-progress"

	// StatusCompleted means the repair is finished. Completed requests
	// carry a CompletedDate and optionally closing Notes.
	StatusCompleted Status = "completed"
)

var validStatuses = map[Status]bool{
	StatusPending:    true,
	StatusAssigned:   true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// Valid reports whether the status is one of the known constants.
func (s Status) Valid() bool { return validStatuses[s] }

// statusTransitions is the forward-only lifecycle. A request never
// moves backward: once work has started it cannot become pending or
// assigned again, and completed is terminal. Writing the current
// status again is always allowed.
var statusTransitions = map[Status]map[Status]bool{
	StatusPending:    {StatusAssigned: true, StatusInProgress: true},
	StatusAssigned:   {StatusInProgress: true},
	StatusInProgress: {StatusCompleted: true},
	StatusCompleted:  {},
}

// CanTransition reports whether a request may move from one status to
// another. A no-op write (from == to) is permitted.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	return statusTransitions[from][to]
}

// Priority is the urgency of a repair request.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var validPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// Valid reports whether the priority is one of the known constants.
func (p Priority) Valid() bool { return validPriorities[p] }

// DateFormat is the layout of ReportDate and CompletedDate. Dates are
// stored as calendar days, not instants.
const DateFormat = "2006-01-02"

// Location is the free-text position of a piece of equipment. The
// three parts are display strings, not foreign keys: nothing checks
// them against a building registry.
type Location struct {
	Building string `json:"building"`
	Floor    string `json:"floor"`
	Room     string `json:"room"`
}

// String renders the location the way dashboards display and search
// it: the three parts joined by single spaces.
func (l Location) String() string {
	return l.Building + " " + l.Floor + " " + l.Room
}

// RepairRequest is one reported equipment fault and its repair
// lifecycle. Requests reference equipment by code string only; a
// request may name a code that no room plan contains.
type RepairRequest struct {
	// ID is the request identifier, formatted "R" + 6 timestamp
	// digits + 3 random base-36 characters (seed records use short
	// IDs like "R001").
	ID string `json:"id"`

	// EquipmentCode is the code of the faulty equipment, such as
	// "PC-LC207-02". Free text: no referential check against a plan.
	EquipmentCode string `json:"equipmentCode"`

	// EquipmentName is the human-readable equipment name shown in
	// lists and searched by the dashboard filter.
	EquipmentName string `json:"equipmentName"`

	// Location is where the equipment lives.
	Location Location `json:"location"`

	// Status is the lifecycle state. New requests derive it from
	// AssignedTo: assigned when a technician is named, else pending.
	Status Status `json:"status"`

	// Description is the reporter's account of the fault. Required.
	Description string `json:"description"`

	// Reporter is the display name of whoever reported the fault.
	Reporter string `json:"reporter"`

	// AssignedTo is the display name of the responsible technician,
	// or empty while the request is unclaimed. Matched against
	// User.Name, not User.ID.
	AssignedTo string `json:"assignedTo,omitempty"`

	// ReportDate is the calendar day the fault was reported, in
	// DateFormat.
	ReportDate string `json:"reportDate"`

	// Priority is the urgency assigned at creation.
	Priority Priority `json:"priority"`

	// Images are optional attachment references (file paths or URLs).
	Images []string `json:"images,omitempty"`

	// CompletedDate is the calendar day the repair finished, in
	// DateFormat. Set when the request transitions to completed.
	CompletedDate string `json:"completedDate,omitempty"`

	// Notes is the technician's closing summary, recorded at
	// completion.
	Notes string `json:"notes,omitempty"`
}

// Validate checks that the request is well-formed enough to store.
// It enforces the fields the creation form requires; AssignedTo,
// Images, CompletedDate, and Notes are optional at every stage.
func (r *RepairRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("request id is required")
	}
	if r.EquipmentCode == "" {
		return fmt.Errorf("request %s: equipment code is required", r.ID)
	}
	if r.EquipmentName == "" {
		return fmt.Errorf("request %s: equipment name is required", r.ID)
	}
	if r.Location.Building == "" || r.Location.Floor == "" || r.Location.Room == "" {
		return fmt.Errorf("request %s: location requires building, floor, and room", r.ID)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("request %s: invalid status %q", r.ID, r.Status)
	}
	if r.Description == "" {
		return fmt.Errorf("request %s: description is required", r.ID)
	}
	if r.Reporter == "" {
		return fmt.Errorf("request %s: reporter is required", r.ID)
	}
	if r.ReportDate == "" {
		return fmt.Errorf("request %s: report date is required", r.ID)
	}
	if _, err := time.Parse(DateFormat, r.ReportDate); err != nil {
		return fmt.Errorf("request %s: report date %q is not YYYY-MM-DD", r.ID, r.ReportDate)
	}
	if r.CompletedDate != "" {
		if _, err := time.Parse(DateFormat, r.CompletedDate); err != nil {
			return fmt.Errorf("request %s: completed date %q is not YYYY-MM-DD", r.ID, r.CompletedDate)
		}
	}
	if !r.Priority.Valid() {
		return fmt.Errorf("request %s: invalid priority %q", r.ID, r.Priority)
	}
	return nil
}
