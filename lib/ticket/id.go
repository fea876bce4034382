// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"strconv"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
)

// idAlphabet is the character set for the random suffix: uppercase
// base 36.
const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// idRetryLimit bounds collision retries. Two requests created in the
// same millisecond have a 1-in-46656 suffix collision chance, so the
// limit is never reached in practice.
const idRetryLimit = 100

// generateID produces a request ID of the form prefix + the
// low-order six digits of the current Unix millisecond time + three
// random characters from idAlphabet. The candidate is regenerated
// while it collides with an existing request ID.
func (r *Repository) generateID(prefix string, existing []repair.RepairRequest) (string, error) {
	taken := make(map[string]bool, len(existing))
	for _, request := range existing {
		taken[request.ID] = true
	}

	for attempt := 0; attempt < idRetryLimit; attempt++ {
		candidate := r.formatID(prefix)
		if !taken[candidate] {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("ticket: could not generate a unique id after %d attempts", idRetryLimit)
}

// formatID builds one ID candidate from the clock and random source.
func (r *Repository) formatID(prefix string) string {
	millis := strconv.FormatInt(r.clock.Now().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}

	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = idAlphabet[r.random.IntN(len(idAlphabet))]
	}
	return prefix + millis + string(suffix)
}
