// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package backup implements the "repairdesk backup" command group:
// exporting the collections to a checksummed archive file and
// restoring from one.
package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lc-facilities/repairdesk/cmd/repairdesk/cli"
	"github.com/lc-facilities/repairdesk/lib/backup"
	"github.com/lc-facilities/repairdesk/lib/clock"
)

// Command returns the "backup" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "backup",
		Summary: "Export and restore the collections",
		Description: `Export and restore the user and request collections.

Archives are compressed and checksummed; import verifies the checksum
and validates every record before touching the store. The saved
session is never archived: who is signed in belongs to a machine, not
to a backup.`,
		Subcommands: []*cli.Command{
			exportCommand(),
			importCommand(),
			inspectCommand(),
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:    "export",
		Summary: "Write the collections to an archive file",
		Usage:   "repairdesk backup export <file>",
		Examples: []cli.Example{
			{
				Description: "Nightly snapshot",
				Command:     "repairdesk backup export /srv/backups/repairdesk-$(date +%F).rdbk",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one archive path is required\n\nUsage: repairdesk backup export <file>")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.RequireAdmin(ctx); err != nil {
				return cli.Forbidden("export: %w", err)
			}

			summary, err := backup.ExportFile(ctx, app.Store, clock.Real(), args[0])
			if err != nil {
				return cli.Internal("export: %w", err)
			}

			logger.Info("backup written", "path", args[0],
				"users", summary.Users, "requests", summary.Requests)
			fmt.Printf("exported %d users and %d requests to %s\n",
				summary.Users, summary.Requests, args[0])
			return nil
		},
	}
}

// importParams holds the parameters for "backup import".
type importParams struct {
	Force bool `flag:"force,f" desc:"replace the current collections without confirmation"`
}

func importCommand() *cli.Command {
	var params importParams

	return &cli.Command{
		Name:    "import",
		Summary: "Replace the collections from an archive file",
		Description: `Replace the user and request collections with an archive's contents.

This overwrites both collections wholesale. The saved session is left
untouched.`,
		Usage:  "repairdesk backup import <file> [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one archive path is required\n\nUsage: repairdesk backup import <file>")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.RequireAdmin(ctx); err != nil {
				return cli.Forbidden("import: %w", err)
			}

			if !params.Force {
				fmt.Printf("replace the current collections with %s? [y/N] ", args[0])
				var answer string
				fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" && answer != "yes" {
					fmt.Println("aborted")
					return nil
				}
			}

			summary, err := backup.ImportFile(ctx, app.Store, args[0])
			switch {
			case errors.Is(err, backup.ErrFormat):
				return cli.Validation("import: %s is not a repairdesk archive", args[0])
			case errors.Is(err, backup.ErrCorrupt):
				return cli.Validation("import: %s failed its checksum; the file is damaged", args[0])
			case err != nil:
				return cli.Internal("import: %w", err)
			}

			logger.Info("backup restored", "path", args[0],
				"users", summary.Users, "requests", summary.Requests)
			fmt.Printf("imported %d users and %d requests (archive from %s)\n",
				summary.Users, summary.Requests, summary.CreatedAt)
			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:    "inspect",
		Summary: "Show an archive's contents without importing",
		Usage:   "repairdesk backup inspect <file>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one archive path is required\n\nUsage: repairdesk backup inspect <file>")
			}

			file, err := os.Open(args[0])
			if err != nil {
				return cli.Internal("inspect: %w", err)
			}
			defer file.Close()

			summary, err := backup.Inspect(file)
			switch {
			case errors.Is(err, backup.ErrFormat):
				return cli.Validation("inspect: %s is not a repairdesk archive", args[0])
			case errors.Is(err, backup.ErrCorrupt):
				return cli.Validation("inspect: %s failed its checksum; the file is damaged", args[0])
			case err != nil:
				return cli.Internal("inspect: %w", err)
			}

			fmt.Printf("created %s\nusers %d\nrequests %d\n",
				summary.CreatedAt, summary.Users, summary.Requests)
			return nil
		},
	}
}
