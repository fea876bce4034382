// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/lc-facilities/repairdesk/lib/config"
	"github.com/lc-facilities/repairdesk/lib/roomlayout"
	"github.com/lc-facilities/repairdesk/lib/session"
	"github.com/lc-facilities/repairdesk/lib/store"
	"github.com/lc-facilities/repairdesk/lib/ticket"
)

// App bundles the opened application services that every command
// needs: the store behind them, the session gate, the request
// repository, and the room plan. Commands call [OpenApp] at the top
// of Run and defer Close.
type App struct {
	Config     *config.Config
	Store      store.Store
	Session    *session.Service
	Repository *ticket.Repository
	Plan       *roomlayout.Plan
}

// OpenApp loads the configuration, opens (or falls back to in-memory)
// storage, and wires the services. The room plan comes from the
// configured plan file, or the built-in LC207 plan when none is set.
func OpenApp(logger *slog.Logger) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}

	plan, err := roomlayout.LoadPlanOrDefault(cfg.Rooms.PlanFile)
	if err != nil {
		return nil, err
	}

	s := store.OpenWithFallback(cfg.Paths.Database, logger)
	return &App{
		Config:     cfg,
		Store:      s,
		Session:    session.NewService(s),
		Repository: ticket.New(ticket.Config{Store: s}),
		Plan:       plan,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// ReadPassword reads a password for login. With an empty file
// argument or "-", it prompts on the terminal with echo disabled;
// otherwise it reads the first line of the named file. Prompting
// requires a terminal on stdin.
func ReadPassword(passwordFile string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("reading password file: %w", err)
		}
		password, _, _ := strings.Cut(string(data), "\n")
		return password, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("stdin is not a terminal; use --password-file")
	}
	fmt.Fprint(os.Stderr, "password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
