// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package backup_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lc-facilities/repairdesk/lib/backup"
	"github.com/lc-facilities/repairdesk/lib/clock"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/store"
	"github.com/lc-facilities/repairdesk/lib/testutil"
)

var exportDay = clock.Fake(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()

	source := store.NewMemory()
	requests, _ := source.Requests(ctx)
	requests[0].Notes = "touched before export"
	if err := source.SetRequests(ctx, requests); err != nil {
		t.Fatalf("SetRequests: %v", err)
	}

	var archive bytes.Buffer
	summary, err := backup.Export(ctx, source, exportDay, &archive)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if summary.Users != 3 || summary.Requests != 3 || summary.CreatedAt != "2024-05-01" {
		t.Fatalf("export summary = %+v", summary)
	}

	// Restore into a store whose collections differ.
	target := store.NewMemory()
	if err := target.SetRequests(ctx, nil); err != nil {
		t.Fatalf("SetRequests: %v", err)
	}

	restored, err := backup.Import(ctx, target, bytes.NewReader(archive.Bytes()))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if restored.Requests != 3 {
		t.Fatalf("import summary = %+v", restored)
	}

	got, err := target.Requests(ctx)
	if err != nil {
		t.Fatalf("Requests: %v", err)
	}
	if len(got) != 3 || got[0].Notes != "touched before export" {
		t.Fatalf("restored collection = %+v", got)
	}
}

func TestImportDoesNotTouchSession(t *testing.T) {
	ctx := context.Background()

	target := store.NewMemory()
	admin := store.SeedUsers()[0]
	if err := target.SetCurrentUser(ctx, admin); err != nil {
		t.Fatalf("SetCurrentUser: %v", err)
	}

	var archive bytes.Buffer
	if _, err := backup.Export(ctx, store.NewMemory(), exportDay, &archive); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := backup.Import(ctx, target, &archive); err != nil {
		t.Fatalf("Import: %v", err)
	}

	current, found, err := target.CurrentUser(ctx)
	if err != nil || !found || current.Username != "admin" {
		t.Fatalf("session disturbed by import: found=%v user=%+v err=%v", found, current, err)
	}
}

func TestImportRejectsTamperedArchive(t *testing.T) {
	ctx := context.Background()

	var archive bytes.Buffer
	if _, err := backup.Export(ctx, store.NewMemory(), exportDay, &archive); err != nil {
		t.Fatalf("Export: %v", err)
	}

	raw := archive.Bytes()
	raw[len(raw)-1] ^= 0xFF
	_, err := backup.Import(ctx, store.NewMemory(), bytes.NewReader(raw))
	if !errors.Is(err, backup.ErrCorrupt) {
		t.Fatalf("got %v, want ErrCorrupt", err)
	}
}

func TestImportRejectsForeignData(t *testing.T) {
	_, err := backup.Import(context.Background(), store.NewMemory(),
		bytes.NewReader([]byte("definitely not an archive")))
	if !errors.Is(err, backup.ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestExportIsDeterministic(t *testing.T) {
	ctx := context.Background()
	source := store.NewMemory()

	var first, second bytes.Buffer
	if _, err := backup.Export(ctx, source, exportDay, &first); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := backup.Export(ctx, source, exportDay, &second); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("same data exported to different archive bytes")
	}
}

func TestExportImportFile(t *testing.T) {
	ctx := context.Background()
	path := testutil.DBPath(t) + ".bk"

	if _, err := backup.ExportFile(ctx, store.NewMemory(), exportDay, path); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}

	target := store.NewMemory()
	extra := append(store.SeedUsers(), repair.User{
		ID: "9", Username: "ghost", Password: "x",
		Role: repair.RoleTechnician, Name: "ghost",
	})
	if err := target.SetUsers(ctx, extra); err != nil {
		t.Fatalf("SetUsers: %v", err)
	}

	summary, err := backup.ImportFile(ctx, target, path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if summary.Users != 3 {
		t.Fatalf("summary = %+v", summary)
	}
	users, _ := target.Users(ctx)
	if len(users) != 3 {
		t.Fatalf("import did not replace users: %d", len(users))
	}
}
