// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete repairdesk CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	backupcmd "github.com/lc-facilities/repairdesk/cmd/repairdesk/backup"
	"github.com/lc-facilities/repairdesk/cmd/repairdesk/cli"
	dashboardcmd "github.com/lc-facilities/repairdesk/cmd/repairdesk/dashboard"
	roommapcmd "github.com/lc-facilities/repairdesk/cmd/repairdesk/roommap"
	ticketcmd "github.com/lc-facilities/repairdesk/cmd/repairdesk/ticket"
	"github.com/lc-facilities/repairdesk/lib/version"
)

// Root builds and returns the complete repairdesk CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "repairdesk",
		Description: `repairdesk: equipment repair tracking for the LC computer labs.

Report faulty equipment, assign repairs to technicians, and follow
each request from pending to completed. Data lives in a local SQLite
database; the interactive dashboard and the scriptable subcommands
work on the same collection.`,
		Subcommands: []*cli.Command{
			cli.LoginCommand(),
			cli.LogoutCommand(),
			cli.WhoAmICommand(),
			dashboardcmd.Command(),
			ticketcmd.Command(),
			roommapcmd.Command(),
			backupcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("repairdesk %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
