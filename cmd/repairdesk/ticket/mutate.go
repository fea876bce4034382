// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lc-facilities/repairdesk/cmd/repairdesk/cli"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/ticket"
)

// createParams holds the parameters for "ticket create".
type createParams struct {
	cli.JSONOutput
	Code        string   `flag:"code"        desc:"equipment code, such as PC-LC207-07"`
	Name        string   `flag:"name"        desc:"equipment display name"`
	Building    string   `flag:"building"    desc:"building of the equipment"`
	Floor       string   `flag:"floor"       desc:"floor of the equipment"`
	Room        string   `flag:"room"        desc:"room of the equipment"`
	Description string   `flag:"description" desc:"what is wrong"`
	Priority    string   `flag:"priority,p"  desc:"priority: low, medium, or high" default:"medium"`
	AssignTo    string   `flag:"assign-to"   desc:"assign to this technician immediately"`
	Reporter    string   `flag:"reporter"    desc:"reporter name (default: the signed-in user)"`
	Images      []string `flag:"image"       desc:"image reference, repeatable"`
}

func createCommand() *cli.Command {
	var params createParams

	return &cli.Command{
		Name:    "create",
		Summary: "File a new repair request",
		Description: `File a new repair request.

The request starts pending, or assigned when --assign-to names a
technician. The ID and report date are generated; the reporter
defaults to the signed-in user.`,
		Usage: "repairdesk ticket create [flags]",
		Examples: []cli.Example{
			{
				Description: "Report a broken seat computer",
				Command:     `repairdesk ticket create --code PC-LC207-07 --name "คอมพิวเตอร์ 07" --building "ตึก LC" --floor "ชั้น 2" --room LC207 --description "เปิดไม่ติด" --priority high`,
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			user, err := app.Session.Require(ctx)
			if err != nil {
				return categorize(err, "create")
			}

			reporter := params.Reporter
			if reporter == "" {
				reporter = user.Name
			}

			created, err := app.Repository.Create(ctx, ticket.NewRequest{
				EquipmentCode: params.Code,
				EquipmentName: params.Name,
				Location: repair.Location{
					Building: params.Building,
					Floor:    params.Floor,
					Room:     params.Room,
				},
				Description: params.Description,
				Reporter:    reporter,
				AssignedTo:  params.AssignTo,
				Priority:    repair.Priority(params.Priority),
				Images:      params.Images,
			})
			if err != nil {
				return cli.Validation("create: %w", err)
			}

			if done, err := params.EmitJSON(created); done {
				return err
			}
			fmt.Printf("created %s (%s)\n", created.ID, created.Status)
			return nil
		},
	}
}

// assignParams holds the parameters for "ticket assign".
type assignParams struct {
	cli.JSONOutput
}

func assignCommand() *cli.Command {
	var params assignParams

	return &cli.Command{
		Name:    "assign",
		Summary: "Assign a request to a technician (admin)",
		Usage:   "repairdesk ticket assign <id> <technician> [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("a request ID and a technician name are required\n\nUsage: repairdesk ticket assign <id> <technician>")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.RequireAdmin(ctx); err != nil {
				return cli.Forbidden("assign: %w", err)
			}

			updated, err := app.Repository.Assign(ctx, args[0], args[1])
			if err != nil {
				return categorize(err, "assign %s", args[0])
			}

			if done, err := params.EmitJSON(updated); done {
				return err
			}
			fmt.Printf("%s assigned to %s\n", updated.ID, updated.AssignedTo)
			return nil
		},
	}
}

// startParams holds the parameters for "ticket start".
type startParams struct {
	cli.JSONOutput
}

func startCommand() *cli.Command {
	var params startParams

	return &cli.Command{
		Name:    "start",
		Summary: "Start work on a request",
		Description: `Move a request to in progress.

A technician starting an unclaimed pending request also claims it.`,
		Usage:  "repairdesk ticket start <id> [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one request ID is required\n\nUsage: repairdesk ticket start <id>")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			user, err := app.Session.Require(ctx)
			if err != nil {
				return categorize(err, "start")
			}

			technician := ""
			if user.Role.IsTechnician() {
				technician = user.Name
			}

			updated, err := app.Repository.Start(ctx, args[0], technician)
			if err != nil {
				return categorize(err, "start %s", args[0])
			}

			if done, err := params.EmitJSON(updated); done {
				return err
			}
			fmt.Printf("%s in progress\n", updated.ID)
			return nil
		},
	}
}

// completeParams holds the parameters for "ticket complete".
type completeParams struct {
	cli.JSONOutput
	Notes string `flag:"notes" desc:"closing notes describing the fix"`
}

func completeCommand() *cli.Command {
	var params completeParams

	return &cli.Command{
		Name:    "complete",
		Summary: "Mark a request completed",
		Description: `Mark a request completed, stamping today's date.

Only a request that is in progress can complete; completion is the
end of the lifecycle.`,
		Usage:  "repairdesk ticket complete <id> [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one request ID is required\n\nUsage: repairdesk ticket complete <id>")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.Require(ctx); err != nil {
				return categorize(err, "complete")
			}

			updated, err := app.Repository.Complete(ctx, args[0], params.Notes)
			if err != nil {
				return categorize(err, "complete %s", args[0])
			}

			if done, err := params.EmitJSON(updated); done {
				return err
			}
			fmt.Printf("%s completed on %s\n", updated.ID, updated.CompletedDate)
			return nil
		},
	}
}

// updateParams holds the parameters for "ticket update". Unset flags
// leave the corresponding fields untouched.
type updateParams struct {
	cli.JSONOutput
	Status      string `flag:"status"      desc:"new status (forward transitions only)"`
	Priority    string `flag:"priority"    desc:"new priority"`
	Description string `flag:"description" desc:"new description"`
	Notes       string `flag:"notes"       desc:"new notes"`
	AssignTo    string `flag:"assign-to"   desc:"new assignee"`
}

func updateCommand() *cli.Command {
	var params updateParams

	return &cli.Command{
		Name:    "update",
		Summary: "Edit fields of a request (admin)",
		Description: `Edit fields of a request. Only the given flags change; the rest of
the record is preserved. Status changes must move the lifecycle
forward.`,
		Usage: "repairdesk ticket update <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Raise the priority of a request",
				Command:     "repairdesk ticket update R123456ABC --priority high",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one request ID is required\n\nUsage: repairdesk ticket update <id> [flags]")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.RequireAdmin(ctx); err != nil {
				return cli.Forbidden("update: %w", err)
			}

			patch := ticket.Patch{}
			if params.Status != "" {
				status := repair.Status(params.Status)
				patch.Status = &status
			}
			if params.Priority != "" {
				priority := repair.Priority(params.Priority)
				patch.Priority = &priority
			}
			if params.Description != "" {
				patch.Description = &params.Description
			}
			if params.Notes != "" {
				patch.Notes = &params.Notes
			}
			if params.AssignTo != "" {
				patch.AssignedTo = &params.AssignTo
			}
			if patch == (ticket.Patch{}) {
				return cli.Validation("nothing to update: pass at least one field flag")
			}

			updated, err := app.Repository.Update(ctx, args[0], patch)
			if err != nil {
				return categorize(err, "update %s", args[0])
			}

			if done, err := params.EmitJSON(updated); done {
				return err
			}
			fmt.Printf("updated %s\n", updated.ID)
			return nil
		},
	}
}

// deleteParams holds the parameters for "ticket delete".
type deleteParams struct {
	Force bool `flag:"force,f" desc:"delete without confirmation"`
}

func deleteCommand() *cli.Command {
	var params deleteParams

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a request (admin)",
		Usage:   "repairdesk ticket delete <id> [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one request ID is required\n\nUsage: repairdesk ticket delete <id>")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.RequireAdmin(ctx); err != nil {
				return cli.Forbidden("delete: %w", err)
			}

			if !params.Force {
				fmt.Printf("delete %s? [y/N] ", args[0])
				var answer string
				fmt.Scanln(&answer)
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Println("aborted")
					return nil
				}
			}

			if err := app.Repository.Delete(ctx, args[0]); err != nil {
				return categorize(err, "delete %s", args[0])
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}
