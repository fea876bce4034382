// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package repair defines the persistent data model for the equipment
// repair desk: user accounts, repair requests, and the equipment
// records that make up a room plan. All types are plain data with
// JSON tags matching the on-disk storage shape; validation lives on
// the types themselves so every write path shares one definition of
// "well-formed".
package repair

import "fmt"

// Role identifies what a user account is allowed to do. The set is
// closed: call sites switch exhaustively on the constants below
// rather than comparing raw strings.
type Role string

const (
	// RoleAdmin can see every request, assign technicians, change any
	// status, and delete requests.
	RoleAdmin Role = "admin"

	// RoleTechnician sees claimable and assigned work and moves their
	// own requests through the repair lifecycle.
	RoleTechnician Role = "technician"
)

// validRoles is the closed set of roles accepted by Validate.
var validRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleTechnician: true,
}

// Valid reports whether the role is one of the known constants.
func (r Role) Valid() bool { return validRoles[r] }

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsTechnician reports whether the role is the technician role.
func (r Role) IsTechnician() bool { return r == RoleTechnician }

// User is an account that can sign in to the repair desk. Passwords
// are stored and compared in plain text: this tool manages a single
// shared workstation database with fixed demo accounts, not real
// credentials.
type User struct {
	// ID is the stable account identifier. Seed accounts use small
	// numeric strings ("1", "2", "3").
	ID string `json:"id"`

	// Username is the login name, matched exactly at login.
	Username string `json:"username"`

	// Password is the plain-text login password, matched exactly.
	Password string `json:"password"`

	// Role selects the account's dashboard and permissions. The JSON
	// key is "type" for compatibility with the stored collection shape.
	Role Role `json:"type"`

	// Name is the display name. Repair requests reference technicians
	// by this name (AssignedTo), not by ID.
	Name string `json:"name"`
}

// Validate checks that the user record is well-formed.
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Username == "" {
		return fmt.Errorf("user %s: username is required", u.ID)
	}
	if u.Password == "" {
		return fmt.Errorf("user %s: password is required", u.ID)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("user %s: invalid role %q", u.ID, u.Role)
	}
	if u.Name == "" {
		return fmt.Errorf("user %s: display name is required", u.ID)
	}
	return nil
}
