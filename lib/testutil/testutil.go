// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for repairdesk
// packages.
package testutil

import (
	"path/filepath"
	"testing"
)

// DBPath returns a path for a throwaway SQLite database inside the
// test's temporary directory. The file does not exist yet; the store
// creates it on open. Cleanup happens with the test's TempDir.
func DBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "repairdesk.db")
}
