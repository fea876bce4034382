// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/lc-facilities/repairdesk/cmd/repairdesk/cli"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/ticket"
)

// listParams holds the parameters for "ticket list".
type listParams struct {
	cli.JSONOutput
	Status string `flag:"status,s" desc:"filter by status: pending, assigned, in-progress, completed, or all" default:"all"`
	Search string `flag:"search"   desc:"case-insensitive substring match over equipment, code, and reporter"`
	All    bool   `flag:"all,a"    desc:"technicians: list the whole collection, not just my tasks"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List repair requests",
		Description: `List repair requests.

Admins see the whole collection and search over equipment, code, and
reporter. Technicians see their tasks (requests assigned to them plus
unclaimed pending ones) and search over equipment, code, and location;
--all widens to the whole collection.`,
		Usage: "repairdesk ticket list [flags]",
		Examples: []cli.Example{
			{
				Description: "Open high-priority work",
				Command:     "repairdesk ticket list --status pending --search projector",
			},
			{
				Description: "Everything, as JSON",
				Command:     "repairdesk ticket list --all --json",
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
				return categorize(err, "list")
			}

			requests, err := app.Repository.List(ctx)
			if err != nil {
				return categorize(err, "list")
			}

			scope := ticket.ScopeAdmin
			if user.Role.IsTechnician() {
				scope = ticket.ScopeTechnician
				if !params.All {
					requests = ticket.TasksFor(requests, user.Name)
				}
			}
			requests = ticket.Filter(requests, params.Search, params.Status, scope)

			if done, err := params.EmitJSON(requests); done {
				return err
			}

			printRequestTable(requests)
			return nil
		},
	}
}

// showParams holds the parameters for "ticket show".
type showParams struct {
	cli.JSONOutput
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show one repair request in full",
		Usage:   "repairdesk ticket show <id> [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one request ID is required\n\nUsage: repairdesk ticket show <id>")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.Require(ctx); err != nil {
				return categorize(err, "show")
			}

			request, err := app.Repository.Get(ctx, args[0])
			if err != nil {
				return categorize(err, "show %s", args[0])
			}

			if done, err := params.EmitJSON(request); done {
				return err
			}

			printRequest(request)
			return nil
		},
	}
}

// statsParams holds the parameters for "ticket stats".
type statsParams struct {
	cli.JSONOutput
}

func statsCommand() *cli.Command {
	var params statsParams

	return &cli.Command{
		Name:    "stats",
		Summary: "Summarize the collection by lifecycle stage",
		Description: `Summarize the request collection.

Admins get the management view, where assigned requests count as in
progress. Technicians get their task counts with assigned and in
progress kept separate.`,
		Usage:  "repairdesk ticket stats [flags]",
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
				return categorize(err, "stats")
			}

			requests, err := app.Repository.List(ctx)
			if err != nil {
				return categorize(err, "stats")
			}

			if user.Role.IsAdmin() {
				stats := ticket.ComputeAdminStats(requests)
				if done, err := params.EmitJSON(stats); done {
					return err
				}
				fmt.Printf("total %d\npending %d\nin-progress %d\ncompleted %d\n",
					stats.Total, stats.Pending, stats.InProgress, stats.Completed)
				return nil
			}

			stats := ticket.ComputeTechnicianStats(ticket.TasksFor(requests, user.Name))
			if done, err := params.EmitJSON(stats); done {
				return err
			}
			fmt.Printf("pending %d\nassigned %d\nin-progress %d\ncompleted %d\n",
				stats.Pending, stats.Assigned, stats.InProgress, stats.Completed)
			return nil
		},
	}
}

// recentParams holds the parameters for "ticket recent".
type recentParams struct {
	cli.JSONOutput
	Limit int `flag:"limit,n" desc:"maximum number of requests to show, -1 for all" default:"10"`
}

func recentCommand() *cli.Command {
	var params recentParams

	return &cli.Command{
		Name:    "recent",
		Summary: "List requests by report date, newest first",
		Usage:   "repairdesk ticket recent [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.Require(ctx); err != nil {
				return categorize(err, "recent")
			}

			requests, err := app.Repository.List(ctx)
			if err != nil {
				return categorize(err, "recent")
			}

			recent := ticket.RecentActivity(requests, params.Limit)

			if done, err := params.EmitJSON(recent); done {
				return err
			}

			printRequestTable(recent)
			return nil
		},
	}
}

// urgentParams holds the parameters for "ticket urgent".
type urgentParams struct {
	cli.JSONOutput
	Limit int `flag:"limit,n" desc:"maximum number of requests to show" default:"5"`
}

func urgentCommand() *cli.Command {
	var params urgentParams

	return &cli.Command{
		Name:    "urgent",
		Summary: "List open high-priority requests",
		Usage:   "repairdesk ticket urgent [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.Require(ctx); err != nil {
				return categorize(err, "urgent")
			}

			requests, err := app.Repository.List(ctx)
			if err != nil {
				return categorize(err, "urgent")
			}

			urgent := ticket.Urgent(requests, params.Limit)
			if done, err := params.EmitJSON(urgent); done {
				return err
			}

			printRequestTable(urgent)
			return nil
		},
	}
}

// printRequestTable writes the tabular list view to stdout.
func printRequestTable(requests []repair.RepairRequest) {
	if len(requests) == 0 {
		fmt.Println("no requests")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tEQUIPMENT\tCODE\tASSIGNED\tREPORTED")
	for _, request := range requests {
		assigned := request.AssignedTo
		if assigned == "" {
			assigned = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			request.ID, request.Status, request.Priority,
			request.EquipmentName, request.EquipmentCode,
			assigned, request.ReportDate)
	}
	tw.Flush()
}

// printRequest writes the full record view to stdout.
func printRequest(request repair.RepairRequest) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%s\n", request.ID)
	fmt.Fprintf(tw, "equipment\t%s (%s)\n", request.EquipmentName, request.EquipmentCode)
	fmt.Fprintf(tw, "location\t%s\n", request.Location.String())
	fmt.Fprintf(tw, "status\t%s\n", request.Status)
	fmt.Fprintf(tw, "priority\t%s\n", request.Priority)
	fmt.Fprintf(tw, "reporter\t%s\n", request.Reporter)
	if request.AssignedTo != "" {
		fmt.Fprintf(tw, "assigned\t%s\n", request.AssignedTo)
	}
	fmt.Fprintf(tw, "reported\t%s\n", request.ReportDate)
	if request.CompletedDate != "" {
		fmt.Fprintf(tw, "completed\t%s\n", request.CompletedDate)
	}
	fmt.Fprintf(tw, "description\t%s\n", request.Description)
	if request.Notes != "" {
		fmt.Fprintf(tw, "notes\t%s\n", request.Notes)
	}
	for _, image := range request.Images {
		fmt.Fprintf(tw, "image\t%s\n", image)
	}
	tw.Flush()
}
