// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
)

// SQLiteStore is the durable Store implementation, backed by a kv
// table in a SQLite database.
type SQLiteStore struct {
	pool *pool
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if necessary) the database at path and
// verifies it is usable with a probe read. The pool initializes
// connections lazily, so the probe is what surfaces an unwritable
// directory or corrupt file at open time instead of on first use.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	p, err := openPool(path, 0, logger)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{pool: p}
	if _, _, err := s.get(context.Background(), keyUsers); err != nil {
		p.Close()
		return nil, fmt.Errorf("store: probing %s: %w", path, err)
	}
	return s, nil
}

// Close closes the underlying connection pool.
func (s *SQLiteStore) Close() error { return s.pool.Close() }

// Users implements Store.
func (s *SQLiteStore) Users(ctx context.Context) ([]repair.User, error) {
	document, found, err := s.get(ctx, keyUsers)
	if err != nil {
		return nil, err
	}
	if !found {
		return SeedUsers(), nil
	}
	var users []repair.User
	if err := json.Unmarshal([]byte(document), &users); err != nil {
		return nil, fmt.Errorf("store: decoding %q: %w", keyUsers, err)
	}
	return users, nil
}

// SetUsers implements Store.
func (s *SQLiteStore) SetUsers(ctx context.Context, users []repair.User) error {
	return s.setJSON(ctx, keyUsers, users)
}

// Requests implements Store.
func (s *SQLiteStore) Requests(ctx context.Context) ([]repair.RepairRequest, error) {
	document, found, err := s.get(ctx, keyRequests)
	if err != nil {
		return nil, err
	}
	if !found {
		return SeedRequests(), nil
	}
	var requests []repair.RepairRequest
	if err := json.Unmarshal([]byte(document), &requests); err != nil {
		return nil, fmt.Errorf("store: decoding %q: %w", keyRequests, err)
	}
	return requests, nil
}

// SetRequests implements Store.
func (s *SQLiteStore) SetRequests(ctx context.Context, requests []repair.RepairRequest) error {
	return s.setJSON(ctx, keyRequests, requests)
}

// CurrentUser implements Store.
func (s *SQLiteStore) CurrentUser(ctx context.Context) (repair.User, bool, error) {
	document, found, err := s.get(ctx, keyCurrentUser)
	if err != nil || !found {
		return repair.User{}, false, err
	}
	var user repair.User
	if err := json.Unmarshal([]byte(document), &user); err != nil {
		return repair.User{}, false, fmt.Errorf("store: decoding %q: %w", keyCurrentUser, err)
	}
	return user, true, nil
}

// SetCurrentUser implements Store.
func (s *SQLiteStore) SetCurrentUser(ctx context.Context, user repair.User) error {
	return s.setJSON(ctx, keyCurrentUser, user)
}

// ClearCurrentUser implements Store.
func (s *SQLiteStore) ClearCurrentUser(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, "DELETE FROM kv WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{keyCurrentUser},
	})
	if err != nil {
		return fmt.Errorf("store: clearing %q: %w", keyCurrentUser, err)
	}
	return nil
}

// get returns the raw JSON document under key. The boolean is false
// when the key has never been written.
func (s *SQLiteStore) get(ctx context.Context, key string) (string, bool, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return "", false, err
	}
	defer s.pool.Put(conn)

	var value string
	var found bool
	err = sqlitex.Execute(conn, "SELECT value FROM kv WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("store: reading %q: %w", key, err)
	}
	return value, found, nil
}

// setJSON marshals v and writes it under key, replacing any previous
// document.
func (s *SQLiteStore) setJSON(ctx context.Context, key string, v any) error {
	document, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encoding %q: %w", key, err)
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		&sqlitex.ExecOptions{Args: []any{key, string(document)}},
	)
	if err != nil {
		return fmt.Errorf("store: writing %q: %w", key, err)
	}
	return nil
}
