// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package roommap implements the "repairdesk map" command: a
// read-only render of a room plan with open repair requests joined
// onto it by equipment code.
package roommap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lc-facilities/repairdesk/cmd/repairdesk/cli"
	"github.com/lc-facilities/repairdesk/lib/roomlayout"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/tui"
)

// mapParams holds the parameters for "repairdesk map".
type mapParams struct {
	cli.JSONOutput
	Side   string `flag:"side"   desc:"show only one side: left or right"`
	Faults bool   `flag:"faults" desc:"list only equipment needing attention"`
}

// Command returns the "map" command group.
func Command() *cli.Command {
	var params mapParams

	return &cli.Command{
		Name:    "map",
		Summary: "Show the room equipment map",
		Description: `Show the room equipment map.

Seats and devices are listed with their grid position and condition.
A device with an open repair request shows as needing repair even
when the plan marks it working. The plan comes from the configured
plan file, or the built-in LC207 lab.`,
		Usage: "repairdesk map [flags]",
		Examples: []cli.Example{
			{
				Description: "Everything needing attention",
				Command:     "repairdesk map --faults",
			},
		},
		Params: func() any { return &params },
		Subcommands: []*cli.Command{
			findCommand(),
		},
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
				return cli.Forbidden("map: %w", err)
			}

			requests, err := app.Repository.List(ctx)
			if err != nil {
				return cli.Internal("map: %w", err)
			}

			equipment := selectEquipment(app.Plan, params.Side)
			open := openByCode(requests)

			if params.Faults {
				equipment = faultsOnly(equipment, open)
			}

			if done, err := params.EmitJSON(equipment); done {
				return err
			}

			printPlanHeader(app.Plan)
			printEquipment(equipment, open)
			return nil
		},
	}
}

// findParams holds the parameters for "map find".
type findParams struct {
	cli.JSONOutput
}

func findCommand() *cli.Command {
	var params findParams

	return &cli.Command{
		Name:    "find",
		Summary: "Look up one device by equipment code",
		Usage:   "repairdesk map find <code> [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one equipment code is required\n\nUsage: repairdesk map find <code>")
			}

			app, err := cli.OpenApp(logger)
			if err != nil {
				return cli.Internal("open application: %w", err)
			}
			defer app.Close()

			if _, err := app.Session.Require(ctx); err != nil {
				return cli.Forbidden("find: %w", err)
			}

			equipment, found := app.Plan.FindByCode(args[0])
			if !found {
				return cli.NotFound("no equipment with code %q on plan %s", args[0], app.Plan.Room)
			}

			requests, err := app.Repository.List(ctx)
			if err != nil {
				return cli.Internal("find: %w", err)
			}

			if done, err := params.EmitJSON(equipment); done {
				return err
			}

			open := openByCode(requests)
			printEquipment([]repair.Equipment{equipment}, open)
			for _, request := range open[equipment.Code] {
				fmt.Printf("  open %s [%s] %s\n", request.ID, request.Status, request.Description)
			}
			return nil
		},
	}
}

// selectEquipment returns the plan's devices, optionally limited to
// one side. Non-seat devices always appear.
func selectEquipment(plan *roomlayout.Plan, side string) []repair.Equipment {
	if side == "" {
		return plan.Equipment
	}
	var result []repair.Equipment
	for _, equipment := range plan.Equipment {
		if equipment.TableNumber == 0 || string(equipment.Side) == side {
			result = append(result, equipment)
		}
	}
	return result
}

// openByCode indexes non-completed requests by equipment code.
func openByCode(requests []repair.RepairRequest) map[string][]repair.RepairRequest {
	open := make(map[string][]repair.RepairRequest)
	for _, request := range requests {
		if request.Status != repair.StatusCompleted {
			open[request.EquipmentCode] = append(open[request.EquipmentCode], request)
		}
	}
	return open
}

// faultsOnly keeps equipment whose condition needs attention, either
// from the plan itself or from an open request.
func faultsOnly(equipment []repair.Equipment, open map[string][]repair.RepairRequest) []repair.Equipment {
	var result []repair.Equipment
	for _, e := range equipment {
		if e.Status != repair.EquipmentWorking || len(open[e.Code]) > 0 {
			result = append(result, e)
		}
	}
	return result
}

func printPlanHeader(plan *roomlayout.Plan) {
	header := lipgloss.NewStyle().
		Foreground(tui.DefaultTheme.HeaderForeground).
		Bold(true).
		Render(fmt.Sprintf("%s · %s %s", plan.Room, plan.Building, plan.Floor))
	fmt.Println(header)
}

// printEquipment writes the device table, coloring the condition
// column. Open requests override the plan's static condition.
func printEquipment(equipment []repair.Equipment, open map[string][]repair.RepairRequest) {
	theme := tui.DefaultTheme
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tPLACE\tCONDITION\tOPEN")
	for _, e := range equipment {
		condition := e.Status
		if len(open[e.Code]) > 0 {
			condition = repair.EquipmentRepair
		}
		place := "-"
		if e.TableNumber > 0 {
			place = fmt.Sprintf("table %d (%s r%d s%d)", e.TableNumber, e.Side, e.Row, e.Seat)
		}
		colored := lipgloss.NewStyle().
			Foreground(theme.EquipmentColor(condition)).
			Render(string(condition))
		ids := make([]string, 0, len(open[e.Code]))
		for _, request := range open[e.Code] {
			ids = append(ids, request.ID)
		}
		openColumn := "-"
		if len(ids) > 0 {
			openColumn = strings.Join(ids, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Code, e.Name, place, colored, openColumn)
	}
	tw.Flush()
}
