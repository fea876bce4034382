// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/lc-facilities/repairdesk/lib/clock"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/store"
	"github.com/lc-facilities/repairdesk/lib/ticket"
)

var testDay = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// newRepository returns a repository over a seeded memory store with
// a frozen clock and deterministic randomness.
func newRepository(t *testing.T) (*ticket.Repository, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(testDay)
	repository := ticket.New(ticket.Config{
		Store: store.NewMemory(),
		Clock: fake,
		Rand:  rand.New(rand.NewPCG(1, 2)),
	})
	return repository, fake
}

func validNewRequest() ticket.NewRequest {
	return ticket.NewRequest{
		EquipmentCode: "PC-LC207-15",
		EquipmentName: "คอมพิวเตอร์ 15",
		Location:      repair.Location{Building: "ตึก LC", Floor: "ชั้น 2", Room: "ห้อง LC207"},
		Description:   "เครื่องค้างบ่อย",
		Reporter:      "อาจารย์สมชาย",
		Priority:      repair.PriorityHigh,
	}
}

// --- create ---

func TestCreateDerivesStatusFromAssignment(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	unassigned, err := repository.Create(ctx, validNewRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if unassigned.Status != repair.StatusPending {
		t.Errorf("unassigned request status = %s, want pending", unassigned.Status)
	}
	if unassigned.ReportDate != "2024-03-10" {
		t.Errorf("report date = %s, want the clock's date", unassigned.ReportDate)
	}

	assigned := validNewRequest()
	assigned.AssignedTo = "ช่างสมชาย"
	created, err := repository.Create(ctx, assigned)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != repair.StatusAssigned {
		t.Errorf("assigned request status = %s, want assigned", created.Status)
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	incomplete := validNewRequest()
	incomplete.Description = ""
	if _, err := repository.Create(ctx, incomplete); err == nil {
		t.Fatal("expected validation error for missing description")
	}

	// The failed create must not have touched the collection.
	requests, err := repository.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(requests) != 3 {
		t.Fatalf("collection has %d requests after failed create, want the 3 seeds", len(requests))
	}
}

// --- id generation ---

func TestGeneratedIDFormat(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	created, err := repository.Create(ctx, validNewRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	pattern := regexp.MustCompile(`^R\d{6}[0-9A-Z]{3}$`)
	if !pattern.MatchString(created.ID) {
		t.Fatalf("id %q does not match R + 6 digits + 3 base-36 chars", created.ID)
	}
}

func TestGeneratedIDsUniqueWithFrozenClock(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	// With a frozen clock every ID shares the same timestamp digits,
	// so uniqueness rests entirely on the random suffix and the
	// collision check.
	seen := make(map[string]bool)
	for range 25 {
		created, err := repository.Create(ctx, validNewRequest())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[created.ID] {
			t.Fatalf("duplicate id %q", created.ID)
		}
		seen[created.ID] = true
	}
}

// --- get / update / delete ---

func TestGetUnknownID(t *testing.T) {
	repository, _ := newRepository(t)
	_, err := repository.Get(context.Background(), "R999999XYZ")
	if !errors.Is(err, ticket.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	before, err := repository.Get(ctx, "R001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	description := "อาการใหม่: จอดับสนิท"
	updated, err := repository.Update(ctx, "R001", ticket.Patch{Description: &description})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Description != description {
		t.Errorf("description not updated: %q", updated.Description)
	}
	// Everything not in the patch is untouched.
	if updated.EquipmentCode != before.EquipmentCode ||
		updated.Reporter != before.Reporter ||
		updated.Status != before.Status ||
		updated.Priority != before.Priority ||
		updated.ReportDate != before.ReportDate {
		t.Errorf("patch disturbed unrelated fields: %+v", updated)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	repository, _ := newRepository(t)
	notes := "x"
	_, err := repository.Update(context.Background(), "R999999XYZ", ticket.Patch{Notes: &notes})
	if !errors.Is(err, ticket.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateRejectsBackwardTransition(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	// R003 is the completed seed request.
	status := repair.StatusPending
	_, err := repository.Update(ctx, "R003", ticket.Patch{Status: &status})
	if !errors.Is(err, ticket.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	if err := repository.Delete(ctx, "R002"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repository.Get(ctx, "R002"); !errors.Is(err, ticket.ErrNotFound) {
		t.Fatal("request still present after delete")
	}

	// Deleting again reports not found and leaves the rest intact.
	if err := repository.Delete(ctx, "R002"); !errors.Is(err, ticket.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
	requests, err := repository.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("collection has %d requests, want 2", len(requests))
	}
}

// --- lifecycle helpers ---

func TestAssignStartComplete(t *testing.T) {
	ctx := context.Background()
	repository, fake := newRepository(t)

	assigned, err := repository.Assign(ctx, "R001", "ช่างสมชาย")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if assigned.Status != repair.StatusAssigned || assigned.AssignedTo != "ช่างสมชาย" {
		t.Fatalf("after assign: %+v", assigned)
	}

	started, err := repository.Start(ctx, "R001", "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if started.Status != repair.StatusInProgress {
		t.Fatalf("after start: status = %s", started.Status)
	}

	fake.Advance(48 * time.Hour)
	completed, err := repository.Complete(ctx, "R001", "เปลี่ยนสายจอแล้ว")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != repair.StatusCompleted {
		t.Fatalf("after complete: status = %s", completed.Status)
	}
	if completed.CompletedDate != "2024-03-12" {
		t.Errorf("completed date = %s, want the clock's date", completed.CompletedDate)
	}
	if completed.Notes != "เปลี่ยนสายจอแล้ว" {
		t.Errorf("notes = %q", completed.Notes)
	}
}

func TestStartClaimsUnassignedRequest(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	started, err := repository.Start(ctx, "R001", "ช่างสมหญิง")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if started.AssignedTo != "ช่างสมหญิง" {
		t.Fatalf("start did not claim the request: %+v", started)
	}
}

func TestAssignStartedRequestRejected(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	if _, err := repository.Start(ctx, "R002", ""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	_, err := repository.Assign(ctx, "R002", "ช่างสมหญิง")
	if !errors.Is(err, ticket.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

// --- end to end ---

func TestAdminScenario(t *testing.T) {
	ctx := context.Background()
	repository, _ := newRepository(t)

	created, err := repository.Create(ctx, validNewRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != repair.StatusPending || created.Priority != repair.PriorityHigh {
		t.Fatalf("created: %+v", created)
	}

	assigned, err := repository.Assign(ctx, created.ID, "ช่างสมชาย")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if assigned.Status != repair.StatusAssigned {
		t.Fatalf("after assign: status = %s, want assigned", assigned.Status)
	}

	// The stored collection reflects the change.
	stored, err := repository.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Status != repair.StatusAssigned || stored.AssignedTo != "ช่างสมชาย" {
		t.Fatalf("stored: %+v", stored)
	}
}
