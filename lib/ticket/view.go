// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"sort"
	"strings"
	"time"

	"github.com/lc-facilities/repairdesk/lib/schema/repair"
)

// Derived views are pure functions over a request slice. Dashboards
// recompute them from the full collection on every refresh; nothing
// here caches or mutates its input.

// SearchScope selects which fields the free-text filter searches.
// The two dashboards search slightly different fields and the
// difference is intentional.
type SearchScope int

const (
	// ScopeAdmin searches equipment name, equipment code, and
	// reporter.
	ScopeAdmin SearchScope = iota

	// ScopeTechnician searches equipment name, equipment code, and
	// the rendered location string instead of the reporter.
	ScopeTechnician
)

// StatusAll is the wildcard status filter: matches every status.
const StatusAll = "all"

// Matches reports whether a request passes the free-text query and
// status filter. The query is a case-insensitive substring test
// against the scope's fields; an empty query matches everything.
// The status filter matches exactly, with "" and StatusAll both
// acting as wildcards. Both conditions must hold.
func Matches(request repair.RepairRequest, query, status string, scope SearchScope) bool {
	if status != "" && status != StatusAll && string(request.Status) != status {
		return false
	}
	if query == "" {
		return true
	}

	lowered := strings.ToLower(query)
	fields := []string{
		request.EquipmentName,
		request.EquipmentCode,
	}
	switch scope {
	case ScopeTechnician:
		fields = append(fields, request.Location.String())
	default:
		fields = append(fields, request.Reporter)
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	return false
}

// Filter returns the requests passing Matches, in collection order.
func Filter(requests []repair.RepairRequest, query, status string, scope SearchScope) []repair.RepairRequest {
	var result []repair.RepairRequest
	for _, request := range requests {
		if Matches(request, query, status, scope) {
			result = append(result, request)
		}
	}
	return result
}

// AdminStats is the administrator dashboard's summary row. Its
// InProgress bucket counts both in-progress and assigned requests:
// the admin view treats everything a technician holds as "in
// progress". The technician view does not share this aggregation.
type AdminStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
}

// ComputeAdminStats aggregates the collection for the admin
// dashboard.
func ComputeAdminStats(requests []repair.RepairRequest) AdminStats {
	var stats AdminStats
	stats.Total = len(requests)
	for _, request := range requests {
		switch request.Status {
		case repair.StatusPending:
			stats.Pending++
		case repair.StatusAssigned, repair.StatusInProgress:
			stats.InProgress++
		case repair.StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

// TechnicianStats is the technician dashboard's summary row, with
// assigned and in-progress kept as separate buckets.
type TechnicianStats struct {
	Pending    int
	Assigned   int
	InProgress int
	Completed  int
}

// ComputeTechnicianStats aggregates a technician's task list.
func ComputeTechnicianStats(requests []repair.RepairRequest) TechnicianStats {
	var stats TechnicianStats
	for _, request := range requests {
		switch request.Status {
		case repair.StatusPending:
			stats.Pending++
		case repair.StatusAssigned:
			stats.Assigned++
		case repair.StatusInProgress:
			stats.InProgress++
		case repair.StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

// TasksFor returns the requests a technician sees on their
// dashboard: everything assigned to them plus every unclaimed
// pending request. Pending work is claimable by any technician, so
// it appears on every technician's list.
func TasksFor(requests []repair.RepairRequest, technicianName string) []repair.RepairRequest {
	var result []repair.RepairRequest
	for _, request := range requests {
		if request.AssignedTo == technicianName || request.Status == repair.StatusPending {
			result = append(result, request)
		}
	}
	return result
}

// RecentActivity returns the n most recently reported requests,
// newest first. Requests sharing a report date keep their collection
// order. Unparseable dates sort last.
func RecentActivity(requests []repair.RepairRequest, n int) []repair.RepairRequest {
	sorted := make([]repair.RepairRequest, len(requests))
	copy(sorted, requests)

	sort.SliceStable(sorted, func(i, j int) bool {
		return reportTime(sorted[i]).After(reportTime(sorted[j]))
	})

	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// reportTime parses a request's report date for sorting. The zero
// time for unparseable dates pushes them to the end of the
// newest-first order.
func reportTime(request repair.RepairRequest) time.Time {
	parsed, err := time.Parse(repair.DateFormat, request.ReportDate)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// Urgent returns up to n high-priority requests that are not yet
// completed, in collection order. The subset is deliberately not
// re-sorted: the dashboard shows urgent work in the order it was
// filed.
func Urgent(requests []repair.RepairRequest, n int) []repair.RepairRequest {
	var result []repair.RepairRequest
	for _, request := range requests {
		if request.Priority == repair.PriorityHigh && request.Status != repair.StatusCompleted {
			result = append(result, request)
			if n >= 0 && len(result) == n {
				break
			}
		}
	}
	return result
}
