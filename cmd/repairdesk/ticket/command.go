// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket implements the "repairdesk ticket" command group:
// querying and mutating the repair request collection from the
// command line.
package ticket

import (
	"errors"

	"github.com/lc-facilities/repairdesk/cmd/repairdesk/cli"
	"github.com/lc-facilities/repairdesk/lib/session"
	"github.com/lc-facilities/repairdesk/lib/ticket"
)

// Command returns the "ticket" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "ticket",
		Summary: "Manage repair requests",
		Description: `Manage the repair request collection.

Query commands (list, show, stats, recent, urgent) are available to
any signed-in user; technicians see the collection scoped to their
tasks. Mutations follow the request lifecycle: create, assign, start,
complete. Status can only move forward; a completed request stays
completed.`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			createCommand(),
			assignCommand(),
			startCommand(),
			completeCommand(),
			updateCommand(),
			deleteCommand(),
			statsCommand(),
			recentCommand(),
			urgentCommand(),
		},
	}
}

// categorize maps domain errors onto CLI error categories so wrapping
// scripts can react without parsing message text.
func categorize(err error, format string, args ...any) error {
	args = append(args, err)
	switch {
	case errors.Is(err, ticket.ErrNotFound):
		return cli.NotFound(format+": %w", args...)
	case errors.Is(err, ticket.ErrInvalidTransition):
		return cli.Conflict(format+": %w", args...)
	case errors.Is(err, session.ErrNotLoggedIn):
		return cli.Forbidden(format+": %w", args...)
	default:
		return cli.Internal(format+": %w", args...)
	}
}
