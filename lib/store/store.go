// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists the repair desk's three collections: user
// accounts, repair requests, and the signed-in user. The storage
// model is a string key-value table holding whole-collection JSON
// documents. Writes replace the entire document for a key; there are
// no per-record updates and the last writer wins.
//
// The durable implementation is SQLite. When the database cannot be
// opened at all, OpenWithFallback degrades to a seeded in-memory
// store so the application still runs for the process lifetime.
package store

import (
	"context"
	"log/slog"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
)

// Storage keys. The value under each key is one JSON document holding
// the whole collection (or the single current user).
const (
	keyUsers       = "users"
	keyRequests    = "repairRequests"
	keyCurrentUser = "currentUser"
)

// Store holds the three persistent collections. Reads never observe
// a missing collection: when a key has never been written, Users and
// Requests return the seed data. CurrentUser has no seed; a fresh
// store reports no signed-in user.
//
// Implementations are safe for concurrent use within one process.
// Nothing guards against concurrent processes beyond SQLite's write
// serialization: two simultaneous whole-collection writes resolve to
// whichever lands last.
type Store interface {
	// Users returns the user collection, or the seed accounts if none
	// has ever been written.
	Users(ctx context.Context) ([]repair.User, error)

	// SetUsers replaces the user collection.
	SetUsers(ctx context.Context, users []repair.User) error

	// Requests returns the repair request collection, or the seed
	// requests if none has ever been written.
	Requests(ctx context.Context) ([]repair.RepairRequest, error)

	// SetRequests replaces the repair request collection.
	SetRequests(ctx context.Context, requests []repair.RepairRequest) error

	// CurrentUser returns the signed-in user. The boolean is false
	// when no user is signed in.
	CurrentUser(ctx context.Context) (repair.User, bool, error)

	// SetCurrentUser records the signed-in user.
	SetCurrentUser(ctx context.Context, user repair.User) error

	// ClearCurrentUser signs the current user out. Clearing an
	// already-clear store is a no-op.
	ClearCurrentUser(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// OpenWithFallback opens the SQLite store at path. If the database
// cannot be opened (unwritable directory, corrupt file), it logs the
// failure and returns a seeded in-memory store instead: the tool
// keeps working for the session, it just does not persist.
func OpenWithFallback(path string, logger *slog.Logger) Store {
	sqliteStore, err := OpenSQLite(path, logger)
	if err != nil {
		logger.Warn("persistent store unavailable, using in-memory data for this session",
			"path", path, "error", err)
		return NewMemory()
	}
	return sqliteStore
}
