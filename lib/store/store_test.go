// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package store_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/store"
	"github.com/lc-facilities/repairdesk/lib/testutil"
)

// openStores returns both Store implementations so every contract
// test runs against each.
func openStores(t *testing.T) map[string]store.Store {
	t.Helper()

	sqliteStore, err := store.OpenSQLite(testutil.DBPath(t), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if err := sqliteStore.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})

	return map[string]store.Store{
		"sqlite": sqliteStore,
		"memory": store.NewMemory(),
	}
}

// --- seeding ---

func TestFreshStoreReturnsSeeds(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			users, err := s.Users(ctx)
			if err != nil {
				t.Fatalf("Users: %v", err)
			}
			if len(users) != 3 {
				t.Fatalf("fresh store has %d users, want 3", len(users))
			}
			if users[0].Username != "admin" || !users[0].Role.IsAdmin() {
				t.Errorf("first seed user = %+v, want the admin account", users[0])
			}

			requests, err := s.Requests(ctx)
			if err != nil {
				t.Fatalf("Requests: %v", err)
			}
			if len(requests) != 3 {
				t.Fatalf("fresh store has %d requests, want 3", len(requests))
			}
			if requests[0].ID != "R001" || requests[0].Status != repair.StatusPending {
				t.Errorf("first seed request = %+v, want pending R001", requests[0])
			}

			for _, request := range requests {
				if err := request.Validate(); err != nil {
					t.Errorf("seed request %s invalid: %v", request.ID, err)
				}
			}
		})
	}
}

func TestSeedSlicesAreIndependent(t *testing.T) {
	first := store.SeedRequests()
	first[0].Description = "mutated"
	second := store.SeedRequests()
	if second[0].Description == "mutated" {
		t.Fatal("SeedRequests returns aliased slices")
	}
}

// --- round trips ---

func TestRequestsRoundTrip(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			request := repair.RepairRequest{
				ID:            "R123456ABC",
				EquipmentCode: "PC-LC207-14",
				EquipmentName: "คอมพิวเตอร์ 14",
				Location:      repair.Location{Building: "ตึก LC", Floor: "ชั้น 2", Room: "ห้อง LC207"},
				Status:        repair.StatusCompleted,
				Description:   "keyboard unresponsive",
				Reporter:      testutil.UniqueID("reporter"),
				AssignedTo:    "ช่างสมชาย",
				ReportDate:    "2024-02-01",
				Priority:      repair.PriorityMedium,
				Images:        []string{"before.jpg", "after.jpg"},
				CompletedDate: "2024-02-03",
				Notes:         "replaced the keyboard",
			}
			if err := s.SetRequests(ctx, []repair.RepairRequest{request}); err != nil {
				t.Fatalf("SetRequests: %v", err)
			}

			got, err := s.Requests(ctx)
			if err != nil {
				t.Fatalf("Requests: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("got %d requests, want 1", len(got))
			}
			if got[0].ID != request.ID || got[0].Notes != request.Notes ||
				got[0].CompletedDate != request.CompletedDate ||
				got[0].Location != request.Location ||
				len(got[0].Images) != 2 {
				t.Errorf("round trip mismatch: got %+v", got[0])
			}
		})
	}
}

func TestSetRequestsReplacesWholeCollection(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			seeds, err := s.Requests(ctx)
			if err != nil {
				t.Fatalf("Requests: %v", err)
			}
			if err := s.SetRequests(ctx, seeds[:1]); err != nil {
				t.Fatalf("SetRequests: %v", err)
			}

			got, err := s.Requests(ctx)
			if err != nil {
				t.Fatalf("Requests: %v", err)
			}
			if len(got) != 1 || got[0].ID != seeds[0].ID {
				t.Fatalf("collection not replaced: %+v", got)
			}
		})
	}
}

// --- current user ---

func TestCurrentUserLifecycle(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, found, err := s.CurrentUser(ctx); err != nil || found {
				t.Fatalf("fresh store CurrentUser = found=%v err=%v, want absent", found, err)
			}

			user := store.SeedUsers()[1]
			if err := s.SetCurrentUser(ctx, user); err != nil {
				t.Fatalf("SetCurrentUser: %v", err)
			}
			got, found, err := s.CurrentUser(ctx)
			if err != nil || !found {
				t.Fatalf("CurrentUser after set: found=%v err=%v", found, err)
			}
			if got.Username != "tech1" || got.Role != repair.RoleTechnician {
				t.Errorf("CurrentUser = %+v, want tech1", got)
			}

			if err := s.ClearCurrentUser(ctx); err != nil {
				t.Fatalf("ClearCurrentUser: %v", err)
			}
			if _, found, _ := s.CurrentUser(ctx); found {
				t.Fatal("CurrentUser still present after clear")
			}

			// Clearing twice is a no-op.
			if err := s.ClearCurrentUser(ctx); err != nil {
				t.Fatalf("second ClearCurrentUser: %v", err)
			}
		})
	}
}

// --- durability across opens ---

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := testutil.DBPath(t)
	logger := slog.New(slog.DiscardHandler)

	first, err := store.OpenSQLite(path, logger)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	users := store.SeedUsers()
	users = append(users, repair.User{
		ID: "4", Username: "tech3", Password: "tech123",
		Role: repair.RoleTechnician, Name: "ช่างคนใหม่",
	})
	if err := first.SetUsers(ctx, users); err != nil {
		t.Fatalf("SetUsers: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := store.OpenSQLite(path, logger)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, err := second.Users(ctx)
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(got) != 4 || got[3].Username != "tech3" {
		t.Fatalf("reopened store has %d users, want the 4 written", len(got))
	}
}

// --- fallback ---

func TestOpenWithFallbackDegradesToMemory(t *testing.T) {
	// A path whose parent directory does not exist cannot be opened.
	badPath := filepath.Join(t.TempDir(), "missing", "nested", "repairdesk.db")
	s := store.OpenWithFallback(badPath, slog.New(slog.DiscardHandler))
	defer s.Close()

	users, err := s.Users(context.Background())
	if err != nil {
		t.Fatalf("fallback store Users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("fallback store has %d users, want seeds", len(users))
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Fatalf("fallback returned %T, want *store.MemoryStore", s)
	}
}

// --- pragmas ---

func TestSQLiteUsesWAL(t *testing.T) {
	path := testutil.DBPath(t)
	s, err := store.OpenSQLite(path, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		t.Fatalf("OpenConn: %v", err)
	}
	defer conn.Close()

	var journalMode string
	err = sqlitex.Execute(conn, "PRAGMA journal_mode", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			journalMode = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %q, want %q", journalMode, "wal")
	}
}
