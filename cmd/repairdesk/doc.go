// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Repairdesk is the unified CLI for the LC lab equipment repair
// tracker. It provides subcommands for signing in (login, logout,
// whoami), the interactive dashboard (dashboard), repair request
// management (ticket), the room equipment map (map), and archive
// backups (backup).
package main
