// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashboard implements the "repairdesk dashboard" command:
// the full-screen interactive TUI with the login form, the admin and
// technician dashboards, and the room map.
package dashboard

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/lc-facilities/repairdesk/cmd/repairdesk/cli"
	"github.com/lc-facilities/repairdesk/lib/deskui"
)

// Command returns the "dashboard" command.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Summary: "Open the interactive dashboard",
		Description: `Open the full-screen interactive dashboard.

A saved session (from "repairdesk login" or a previous dashboard run)
is picked up automatically; otherwise the login form is shown first.
Admins land on the management dashboard, technicians on their task
list. Press m for the room map, L to sign out, q to quit.`,
		Usage: "repairdesk dashboard",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return cli.Validation("the dashboard needs a terminal; use \"repairdesk ticket list\" in scripts")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			model := deskui.NewModel(deskui.Config{
				Session:    app.Session,
				Repository: app.Repository,
				Plan:       app.Plan,
			})

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				return cli.Internal("dashboard: %w", err)
			}
			return nil
		},
	}
}
