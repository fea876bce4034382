// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sync"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
)

// MemoryStore is the in-memory Store implementation: the fallback
// when the database cannot be opened, and the fast path for tests.
// Data lives only as long as the process.
type MemoryStore struct {
	mu          sync.Mutex
	users       []repair.User
	requests    []repair.RepairRequest
	currentUser *repair.User
}

var _ Store = (*MemoryStore)(nil)

// NewMemory returns a MemoryStore pre-populated with the seed users
// and requests, matching what a fresh database would report.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		users:    SeedUsers(),
		requests: SeedRequests(),
	}
}

// Users implements Store.
func (m *MemoryStore) Users(ctx context.Context) ([]repair.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneSlice(m.users), nil
}

// SetUsers implements Store.
func (m *MemoryStore) SetUsers(ctx context.Context, users []repair.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = cloneSlice(users)
	return nil
}

// Requests implements Store.
func (m *MemoryStore) Requests(ctx context.Context) ([]repair.RepairRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneSlice(m.requests), nil
}

// SetRequests implements Store.
func (m *MemoryStore) SetRequests(ctx context.Context, requests []repair.RepairRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = cloneSlice(requests)
	return nil
}

// CurrentUser implements Store.
func (m *MemoryStore) CurrentUser(ctx context.Context) (repair.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentUser == nil {
		return repair.User{}, false, nil
	}
	return *m.currentUser, true, nil
}

// SetCurrentUser implements Store.
func (m *MemoryStore) SetCurrentUser(ctx context.Context, user repair.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentUser = &user
	return nil
}

// ClearCurrentUser implements Store.
func (m *MemoryStore) ClearCurrentUser(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentUser = nil
	return nil
}

// Close implements Store. Nothing to release.
func (m *MemoryStore) Close() error { return nil }

// cloneSlice copies a collection at the storage boundary so callers
// cannot alias the store's internal state.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
