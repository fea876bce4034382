// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/session"
	"github.com/lc-facilities/repairdesk/lib/store"
)

func newService() *session.Service {
	return session.NewService(store.NewMemory())
}

// --- login ---

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	service := newService()

	user, err := service.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "admin" || !user.Role.IsAdmin() {
		t.Fatalf("Login returned %+v, want the admin account", user)
	}

	current, found, err := service.Current(ctx)
	if err != nil || !found {
		t.Fatalf("Current after login: found=%v err=%v", found, err)
	}
	if current.ID != user.ID {
		t.Fatalf("Current = %+v, want the logged-in user", current)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	service := newService()

	// Wrong password and unknown username produce the same error.
	_, err := service.Login(ctx, "admin", "wrong")
	if !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	_, err = service.Login(ctx, "nobody", "admin123")
	if !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("unknown username: got %v, want ErrInvalidCredentials", err)
	}

	if authenticated, _ := service.IsAuthenticated(ctx); authenticated {
		t.Fatal("failed login must not create a session")
	}
}

func TestLoginAsRoleMismatch(t *testing.T) {
	ctx := context.Background()
	service := newService()

	// Valid technician credentials through the admin entrance.
	_, err := service.LoginAs(ctx, "tech1", "tech123", repair.RoleAdmin)
	if !errors.Is(err, session.ErrRoleMismatch) {
		t.Fatalf("got %v, want ErrRoleMismatch", err)
	}
	if authenticated, _ := service.IsAuthenticated(ctx); authenticated {
		t.Fatal("role mismatch must not create a session")
	}

	// Bad credentials still report ErrInvalidCredentials, not mismatch.
	_, err = service.LoginAs(ctx, "tech1", "wrong", repair.RoleAdmin)
	if !errors.Is(err, session.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}

	// Matching role succeeds.
	user, err := service.LoginAs(ctx, "tech1", "tech123", repair.RoleTechnician)
	if err != nil {
		t.Fatalf("LoginAs: %v", err)
	}
	if user.Name != "ช่างสมชาย" {
		t.Fatalf("LoginAs returned %+v, want tech1", user)
	}
}

// --- logout ---

func TestLogout(t *testing.T) {
	ctx := context.Background()
	service := newService()

	if _, err := service.Login(ctx, "tech2", "tech123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := service.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, found, _ := service.Current(ctx); found {
		t.Fatal("session survived logout")
	}

	// Logging out again is a no-op.
	if err := service.Logout(ctx); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

// --- role checks ---

func TestRoleChecks(t *testing.T) {
	ctx := context.Background()
	service := newService()

	if _, err := service.Require(ctx); !errors.Is(err, session.ErrNotLoggedIn) {
		t.Fatalf("Require without session: got %v, want ErrNotLoggedIn", err)
	}

	if _, err := service.Login(ctx, "tech1", "tech123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if isAdmin, _ := service.IsAdmin(ctx); isAdmin {
		t.Fatal("technician reported as admin")
	}
	if isTechnician, _ := service.IsTechnician(ctx); !isTechnician {
		t.Fatal("technician not reported as technician")
	}
	if _, err := service.RequireAdmin(ctx); err == nil {
		t.Fatal("RequireAdmin allowed a technician")
	}

	if _, err := service.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := service.RequireAdmin(ctx); err != nil {
		t.Fatalf("RequireAdmin: %v", err)
	}
}
