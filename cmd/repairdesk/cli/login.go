// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/session"
)

// loginParams holds the parameters for the login command.
type loginParams struct {
	Role         string `flag:"role"          desc:"sign in as this role: admin or technician (default: whatever the account has)"`
	PasswordFile string `flag:"password-file" desc:"path to file containing the password, or - to prompt interactively (default: prompt)"`
}

// LoginCommand returns the "login" command. A successful login saves
// the session in the store, so subsequent commands (ticket, map,
// dashboard) run as that user until logout.
func LoginCommand() *Command {
	var params loginParams

	return &Command{
		Name:    "login",
		Summary: "Sign in and save the session",
		Description: `Sign in to repairdesk and save the session locally.

After login, commands like "repairdesk ticket list" run as the saved
user until "repairdesk logout". The session survives restarts; it
lives in the same database as the request collection.

With --role, the login additionally checks that the account carries
that role, mirroring the admin and technician entrances of the
dashboard. A valid account signed in through the wrong entrance is
rejected as a role mismatch, not as bad credentials.`,
		Usage: "repairdesk login <username> [flags]",
		Examples: []Example{
			{
				Description: "Sign in interactively (prompts for password)",
				Command:     "repairdesk login tech1",
			},
			{
				Description: "Sign in through the admin entrance",
				Command:     "repairdesk login admin --role admin",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 1 {
				return Validation("username is required\n\nUsage: repairdesk login <username> [flags]")
			}
			username := args[0]
			if len(args) > 1 {
				return Validation("unexpected argument: %s", args[1])
			}

			password, err := ReadPassword(params.PasswordFile)
			if err != nil {
				return Internal("read password: %w", err)
			}

			app, err := OpenApp(logger)
			if err != nil {
				return Internal("open application: %w", err)
			}
			defer app.Close()

			var user repair.User
			if params.Role != "" {
				role := repair.Role(params.Role)
				if !role.Valid() {
					return Validation("unknown role %q: expected admin or technician", params.Role)
				}
				user, err = app.Session.LoginAs(ctx, username, password, role)
			} else {
				user, err = app.Session.Login(ctx, username, password)
			}
			switch {
			case errors.Is(err, session.ErrInvalidCredentials):
				return Forbidden("login failed: %w", err)
			case errors.Is(err, session.ErrRoleMismatch):
				return Forbidden("login failed: %w", err)
			case err != nil:
				return Internal("login failed: %w", err)
			}

			fmt.Printf("signed in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}
}

// LogoutCommand returns the "logout" command.
func LogoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "Sign out and clear the saved session",
		Usage:   "repairdesk logout",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}

			app, err := OpenApp(logger)
			if err != nil {
				return Internal("open application: %w", err)
			}
			defer app.Close()

			// Logout is idempotent: clearing an absent session succeeds.
			if err := app.Session.Logout(ctx); err != nil {
				return Internal("logout: %w", err)
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

// whoamiParams holds the parameters for the whoami command.
type whoamiParams struct {
	JSONOutput
}

// whoamiOutput is the JSON output for the whoami command.
type whoamiOutput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// WhoAmICommand returns the "whoami" command for displaying the
// signed-in user.
func WhoAmICommand() *Command {
	var params whoamiParams

	return &Command{
		Name:    "whoami",
		Summary: "Show the signed-in user",
		Usage:   "repairdesk whoami [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}

			app, err := OpenApp(logger)
			if err != nil {
				return Internal("open application: %w", err)
			}
			defer app.Close()

			user, found, err := app.Session.Current(ctx)
			if err != nil {
				return Internal("load session: %w", err)
			}
			if !found {
				return Forbidden("not signed in; run \"repairdesk login\"")
			}

			output := whoamiOutput{
				Username: user.Username,
				Name:     user.Name,
				Role:     string(user.Role),
			}
			if done, err := params.EmitJSON(output); done {
				return err
			}

			fmt.Printf("%s (%s), signed in as %s\n", user.Name, user.Role, user.Username)
			return nil
		},
	}
}
