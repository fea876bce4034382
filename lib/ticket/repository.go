// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket implements the repair request repository and the
// derived views the dashboards are built from. The repository is a
// thin lifecycle layer over the store: every operation loads the
// whole request collection, works on it in memory, and writes the
// whole collection back.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/lc-facilities/repairdesk/lib/clock"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/store"
)

// ErrNotFound is returned when an operation references a request ID
// that is not in the collection.
var ErrNotFound = errors.New("repair request not found")

// ErrInvalidTransition is returned when an update would move a
// request backward through its lifecycle, such as reopening a
// completed repair.
var ErrInvalidTransition = errors.New("invalid status transition")

// Config holds the parameters for constructing a Repository. Store
// is required; Clock and Rand default to the real clock and a
// time-seeded generator.
type Config struct {
	// Store is the backing persistence layer.
	Store store.Store

	// Clock supplies the current time for request IDs and report and
	// completion dates. Nil means the system clock.
	Clock clock.Clock

	// Rand supplies the random suffix of generated request IDs. Nil
	// means a generator seeded from the clock.
	Rand *rand.Rand
}

// Repository manages the repair request collection. Safe for
// concurrent use within one process: a mutex serializes the
// read-modify-write cycle of every mutation.
type Repository struct {
	mu     sync.Mutex
	store  store.Store
	clock  clock.Clock
	random *rand.Rand
}

// New constructs a Repository from the config.
func New(cfg Config) *Repository {
	c := cfg.Clock
	if c == nil {
		c = clock.Real()
	}
	random := cfg.Rand
	if random == nil {
		now := c.Now()
		random = rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
	}
	return &Repository{store: cfg.Store, clock: c, random: random}
}

// List returns every repair request in collection order.
func (r *Repository) List(ctx context.Context) ([]repair.RepairRequest, error) {
	return r.store.Requests(ctx)
}

// Get returns the request with the given ID, or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (repair.RepairRequest, error) {
	requests, err := r.store.Requests(ctx)
	if err != nil {
		return repair.RepairRequest{}, err
	}
	for _, request := range requests {
		if request.ID == id {
			return request, nil
		}
	}
	return repair.RepairRequest{}, fmt.Errorf("request %s: %w", id, ErrNotFound)
}

// NewRequest carries the fields the creation form collects. ID,
// status, and report date are filled in by Create.
type NewRequest struct {
	EquipmentCode string
	EquipmentName string
	Location      repair.Location
	Description   string
	Reporter      string
	AssignedTo    string
	Priority      repair.Priority
	Images        []string
}

// Create validates the new request, fills in the generated ID, the
// derived status, and today's report date, and appends it to the
// collection. Status derives from AssignedTo at creation only:
// assigned when a technician is named, pending otherwise. Later
// assignment changes never rederive it.
func (r *Repository) Create(ctx context.Context, newRequest NewRequest) (repair.RepairRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests, err := r.store.Requests(ctx)
	if err != nil {
		return repair.RepairRequest{}, err
	}

	status := repair.StatusPending
	if newRequest.AssignedTo != "" {
		status = repair.StatusAssigned
	}

	id, err := r.generateID("R", requests)
	if err != nil {
		return repair.RepairRequest{}, err
	}

	request := repair.RepairRequest{
		ID:            id,
		EquipmentCode: newRequest.EquipmentCode,
		EquipmentName: newRequest.EquipmentName,
		Location:      newRequest.Location,
		Status:        status,
		Description:   newRequest.Description,
		Reporter:      newRequest.Reporter,
		AssignedTo:    newRequest.AssignedTo,
		ReportDate:    r.clock.Now().Format(repair.DateFormat),
		Priority:      newRequest.Priority,
		Images:        newRequest.Images,
	}
	if err := request.Validate(); err != nil {
		return repair.RepairRequest{}, fmt.Errorf("ticket: invalid request: %w", err)
	}

	requests = append(requests, request)
	if err := r.store.SetRequests(ctx, requests); err != nil {
		return repair.RepairRequest{}, err
	}
	return request, nil
}

// Patch is a partial update. Nil fields are left unchanged; set
// fields replace the stored value. Clearing a string field means
// setting it to a pointer to the empty string.
type Patch struct {
	EquipmentCode *string
	EquipmentName *string
	Location      *repair.Location
	Status        *repair.Status
	Description   *string
	Reporter      *string
	AssignedTo    *string
	ReportDate    *string
	Priority      *repair.Priority
	Images        *[]string
	CompletedDate *string
	Notes         *string
}

// Update applies the patch to the request with the given ID. Unknown
// IDs return ErrNotFound. A status change must follow the forward
// lifecycle or the update fails with ErrInvalidTransition. A
// transition landing on completed stamps today's completion date
// unless the patch supplies one.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (repair.RepairRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(ctx, id, patch)
}

// update is the lock-held body of Update, shared by the lifecycle
// helpers.
func (r *Repository) update(ctx context.Context, id string, patch Patch) (repair.RepairRequest, error) {
	requests, err := r.store.Requests(ctx)
	if err != nil {
		return repair.RepairRequest{}, err
	}

	index := -1
	for i := range requests {
		if requests[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return repair.RepairRequest{}, fmt.Errorf("request %s: %w", id, ErrNotFound)
	}

	request := requests[index]
	if patch.Status != nil && !repair.CanTransition(request.Status, *patch.Status) {
		return repair.RepairRequest{}, fmt.Errorf("request %s: %s -> %s: %w",
			id, request.Status, *patch.Status, ErrInvalidTransition)
	}

	applyPatch(&request, patch)

	if request.Status == repair.StatusCompleted && request.CompletedDate == "" {
		request.CompletedDate = r.clock.Now().Format(repair.DateFormat)
	}

	if err := request.Validate(); err != nil {
		return repair.RepairRequest{}, fmt.Errorf("ticket: invalid update: %w", err)
	}

	requests[index] = request
	if err := r.store.SetRequests(ctx, requests); err != nil {
		return repair.RepairRequest{}, err
	}
	return request, nil
}

// applyPatch merges set fields into the request.
func applyPatch(request *repair.RepairRequest, patch Patch) {
	if patch.EquipmentCode != nil {
		request.EquipmentCode = *patch.EquipmentCode
	}
	if patch.EquipmentName != nil {
		request.EquipmentName = *patch.EquipmentName
	}
	if patch.Location != nil {
		request.Location = *patch.Location
	}
	if patch.Status != nil {
		request.Status = *patch.Status
	}
	if patch.Description != nil {
		request.Description = *patch.Description
	}
	if patch.Reporter != nil {
		request.Reporter = *patch.Reporter
	}
	if patch.AssignedTo != nil {
		request.AssignedTo = *patch.AssignedTo
	}
	if patch.ReportDate != nil {
		request.ReportDate = *patch.ReportDate
	}
	if patch.Priority != nil {
		request.Priority = *patch.Priority
	}
	if patch.Images != nil {
		request.Images = *patch.Images
	}
	if patch.CompletedDate != nil {
		request.CompletedDate = *patch.CompletedDate
	}
	if patch.Notes != nil {
		request.Notes = *patch.Notes
	}
}

// Delete removes the request with the given ID. Unknown IDs return
// ErrNotFound; deleting twice reports the second delete as not
// found.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests, err := r.store.Requests(ctx)
	if err != nil {
		return err
	}

	filtered := requests[:0:0]
	found := false
	for _, request := range requests {
		if request.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, request)
	}
	if !found {
		return fmt.Errorf("request %s: %w", id, ErrNotFound)
	}
	return r.store.SetRequests(ctx, filtered)
}

// Assign puts the request in the assigned state under the named
// technician. Only claimable (pending) or already-assigned requests
// can be assigned; work that has started cannot move backward.
func (r *Repository) Assign(ctx context.Context, id, technicianName string) (repair.RepairRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := repair.StatusAssigned
	return r.update(ctx, id, Patch{
		Status:     &status,
		AssignedTo: &technicianName,
	})
}

// Start moves the request to in-progress. If the request is still
// unclaimed and technicianName is non-empty, starting also claims it.
func (r *Repository) Start(ctx context.Context, id, technicianName string) (repair.RepairRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := repair.StatusInProgress
	patch := Patch{Status: &status}
	if technicianName != "" {
		current, err := r.Get(ctx, id)
		if err != nil {
			return repair.RepairRequest{}, err
		}
		if current.AssignedTo == "" {
			patch.AssignedTo = &technicianName
		}
	}
	return r.update(ctx, id, patch)
}

// Complete finishes the request, recording the closing notes and
// stamping today's completion date.
func (r *Repository) Complete(ctx context.Context, id, notes string) (repair.RepairRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := repair.StatusCompleted
	patch := Patch{Status: &status}
	if notes != "" {
		patch.Notes = &notes
	}
	return r.update(ctx, id, patch)
}
