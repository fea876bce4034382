// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package session implements login, logout, and current-user lookup
// over the persistent store. There is no token or expiry: a session
// is simply the user record saved under the store's currentUser key,
// and it lasts until logout.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/store"
)

// ErrInvalidCredentials is returned when no user matches the given
// username and password. Callers must not distinguish a wrong
// username from a wrong password; the error message is deliberately
// generic.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrRoleMismatch is returned by LoginAs when the credentials are
// valid but the account's role differs from the declared one: for
// example a technician signing in through the admin entrance. This
// is a distinct failure from bad credentials and gets its own
// message.
var ErrRoleMismatch = errors.New("account role does not match the selected role")

// ErrNotLoggedIn is returned by operations that require a signed-in
// user when the store has none.
var ErrNotLoggedIn = errors.New("not logged in")

// Service is the authentication gate. All methods go through the
// store so a login in one process is visible to the next.
type Service struct {
	store store.Store
}

// NewService returns a Service backed by the given store.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Login authenticates by exact username and password match and
// records the matched user as the current user. Comparison is
// plain text by design: the account database holds fixed demo
// credentials, not secrets.
func (s *Service) Login(ctx context.Context, username, password string) (repair.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return repair.User{}, fmt.Errorf("session: loading users: %w", err)
	}

	for _, user := range users {
		if user.Username == username && user.Password == password {
			if err := s.store.SetCurrentUser(ctx, user); err != nil {
				return repair.User{}, fmt.Errorf("session: saving current user: %w", err)
			}
			return user, nil
		}
	}
	return repair.User{}, ErrInvalidCredentials
}

// LoginAs authenticates like Login but additionally requires the
// account to have the declared role. Valid credentials with the
// wrong role fail with ErrRoleMismatch and do not create a session.
func (s *Service) LoginAs(ctx context.Context, username, password string, role repair.Role) (repair.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return repair.User{}, fmt.Errorf("session: loading users: %w", err)
	}

	for _, user := range users {
		if user.Username == username && user.Password == password {
			if user.Role != role {
				return repair.User{}, ErrRoleMismatch
			}
			if err := s.store.SetCurrentUser(ctx, user); err != nil {
				return repair.User{}, fmt.Errorf("session: saving current user: %w", err)
			}
			return user, nil
		}
	}
	return repair.User{}, ErrInvalidCredentials
}

// Logout clears the current user. Logging out while logged out is a
// no-op.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.ClearCurrentUser(ctx); err != nil {
		return fmt.Errorf("session: clearing current user: %w", err)
	}
	return nil
}

// Current returns the signed-in user. The boolean is false when
// nobody is signed in.
func (s *Service) Current(ctx context.Context) (repair.User, bool, error) {
	user, found, err := s.store.CurrentUser(ctx)
	if err != nil {
		return repair.User{}, false, fmt.Errorf("session: loading current user: %w", err)
	}
	return user, found, nil
}

// Require returns the signed-in user or ErrNotLoggedIn.
func (s *Service) Require(ctx context.Context) (repair.User, error) {
	user, found, err := s.Current(ctx)
	if err != nil {
		return repair.User{}, err
	}
	if !found {
		return repair.User{}, ErrNotLoggedIn
	}
	return user, nil
}

// RequireAdmin returns the signed-in user if they hold the admin
// role. A signed-in non-admin gets an error naming the restriction.
func (s *Service) RequireAdmin(ctx context.Context) (repair.User, error) {
	user, err := s.Require(ctx)
	if err != nil {
		return repair.User{}, err
	}
	if !user.Role.IsAdmin() {
		return repair.User{}, fmt.Errorf("session: %s is not an administrator", user.Username)
	}
	return user, nil
}

// IsAuthenticated reports whether a user is signed in.
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	_, found, err := s.Current(ctx)
	return found, err
}

// IsAdmin reports whether the signed-in user holds the admin role.
// False when nobody is signed in.
func (s *Service) IsAdmin(ctx context.Context) (bool, error) {
	user, found, err := s.Current(ctx)
	if err != nil || !found {
		return false, err
	}
	return user.Role.IsAdmin(), nil
}

// IsTechnician reports whether the signed-in user holds the
// technician role. False when nobody is signed in.
func (s *Service) IsTechnician(ctx context.Context) (bool, error) {
	user, found, err := s.Current(ctx)
	if err != nil || !found {
		return false, err
	}
	return user.Role.IsTechnician(), nil
}
