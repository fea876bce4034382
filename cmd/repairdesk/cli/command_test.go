// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func execute(t *testing.T, command *Command, args []string) error {
	t.Helper()
	return command.Execute(t.Context(), args, slog.New(slog.DiscardHandler))
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "repairdesk",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "ticket",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "ticket"
					return nil
				},
			},
		},
	}

	if err := execute(t, root, []string{"ticket"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "ticket" {
		t.Errorf("dispatched to %q, want %q", called, "ticket")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "repairdesk",
		Subcommands: []*Command{
			{
				Name: "ticket",
				Subcommands: []*Command{
					{
						Name: "show",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "ticket show"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := execute(t, root, []string{"ticket", "show", "R123456ABC"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "ticket show" {
		t.Errorf("dispatched to %q, want %q", called, "ticket show")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "R123456ABC" {
		t.Errorf("args = %v, want [R123456ABC]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	type params struct {
		Status string `flag:"status" desc:"status filter" default:"all"`
	}
	var p params
	var target string

	command := &Command{
		Name:   "list",
		Params: func() any { return &p },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := execute(t, command, []string{"--status", "pending", "extra"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if p.Status != "pending" {
		t.Errorf("status = %q, want %q", p.Status, "pending")
	}
	if target != "extra" {
		t.Errorf("target = %q, want %q", target, "extra")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	type params struct {
		Status string `flag:"status" desc:"status filter"`
		Search string `flag:"search" desc:"substring filter"`
	}
	var p params

	command := &Command{
		Name:   "list",
		Params: func() any { return &p },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			return nil
		},
	}

	err := execute(t, command, []string{"--serach"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --search") {
		t.Errorf("error = %q, want suggestion for '--search'", errStr)
	}
	if !strings.Contains(errStr, "serach") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	type params struct {
		Status string `flag:"status" desc:"status filter"`
	}
	var p params

	command := &Command{
		Name:   "list",
		Params: func() any { return &p },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			return nil
		},
	}

	err := execute(t, command, []string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "repairdesk",
		Subcommands: []*Command{
			{Name: "ticket"},
			{Name: "map"},
			{Name: "version"},
		},
	}

	err := execute(t, root, []string{"tiket"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"ticket\"") {
		t.Errorf("error = %q, want suggestion for 'ticket'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "repairdesk",
		Subcommands: []*Command{
			{Name: "ticket"},
			{Name: "map"},
		},
	}

	err := execute(t, root, []string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "repairdesk",
				Summary: "Equipment repair tracking",
				Subcommands: []*Command{
					{Name: "ticket", Summary: "Manage repair requests"},
				},
			}

			if err := execute(t, root, []string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "repairdesk",
		Subcommands: []*Command{
			{Name: "ticket", Summary: "Manage repair requests"},
		},
	}

	err := execute(t, root, []string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "repairdesk",
		Description: "Equipment repair tracking for the LC computer labs.",
		Subcommands: []*Command{
			{Name: "ticket", Summary: "Manage repair requests"},
			{Name: "map", Summary: "Show the room equipment map"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "List open work",
				Command:     "repairdesk ticket list --status pending",
			},
			{
				Description: "Open the dashboard",
				Command:     "repairdesk dashboard",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	// Verify structural elements are present.
	for _, want := range []string{
		"Equipment repair tracking for the LC computer labs.",
		"Usage:",
		"repairdesk <command> [flags]",
		"Commands:",
		"ticket",
		"Manage repair requests",
		"map",
		"Show the room equipment map",
		"Examples:",
		"repairdesk ticket list --status pending",
		"repairdesk dashboard",
		"Run 'repairdesk <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	type params struct {
		Status string `flag:"status"   desc:"status filter"`
		All    bool   `flag:"all,a"    desc:"whole collection"`
	}
	var p params

	command := &Command{
		Name:    "list",
		Summary: "List repair requests",
		Usage:   "repairdesk ticket list [flags]",
		Params:  func() any { return &p },
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"repairdesk ticket list [flags]",
		"Flags:",
		"status",
		"all",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "repairdesk"}
	ticket := &Command{Name: "ticket", parent: root}
	show := &Command{Name: "show", parent: ticket}

	if got := root.fullName(); got != "repairdesk" {
		t.Errorf("root.fullName() = %q, want %q", got, "repairdesk")
	}
	if got := ticket.fullName(); got != "repairdesk ticket" {
		t.Errorf("ticket.fullName() = %q, want %q", got, "repairdesk ticket")
	}
	if got := show.fullName(); got != "repairdesk ticket show" {
		t.Errorf("show.fullName() = %q, want %q", got, "repairdesk ticket show")
	}
}
