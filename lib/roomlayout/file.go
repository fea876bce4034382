// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package roomlayout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// LoadPlan reads a room plan from a JSONC file. Plan files are plain
// JSON with comments and trailing commas permitted, so a plan can
// carry annotations next to the geometry. The loaded plan is
// validated before it is returned.
func LoadPlan(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roomlayout: reading plan %s: %w", path, err)
	}

	var plan Plan
	if err := json.Unmarshal(jsonc.ToJSON(raw), &plan); err != nil {
		return nil, fmt.Errorf("roomlayout: parsing plan %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("roomlayout: plan %s: %w", path, err)
	}
	return &plan, nil
}

// LoadPlanOrDefault returns LoadPlan(path) when path is non-empty,
// and the built-in LC207 plan otherwise.
func LoadPlanOrDefault(path string) (*Plan, error) {
	if path == "" {
		return LC207(), nil
	}
	return LoadPlan(path)
}
