// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package store

import "github.com/lc-facilities/repairdesk/lib/schema/repair"

// SeedUsers returns the three fixed demo accounts. Every call
// returns a fresh slice so callers can mutate their copy freely.
func SeedUsers() []repair.User {
	return []repair.User{
		{
			ID:       "1",
			Username: "admin",
			Password: "admin123",
			Role:     repair.RoleAdmin,
			Name:     "ผู้ดูแลระบบ",
		},
		{
			ID:       "2",
			Username: "tech1",
			Password: "tech123",
			Role:     repair.RoleTechnician,
			Name:     "ช่างสมชาย",
		},
		{
			ID:       "3",
			Username: "tech2",
			Password: "tech123",
			Role:     repair.RoleTechnician,
			Name:     "ช่างสมหญิง",
		},
	}
}

// SeedRequests returns the three sample repair requests present in a
// fresh database: one pending, one assigned, one completed. Every
// call returns a fresh slice.
func SeedRequests() []repair.RepairRequest {
	return []repair.RepairRequest{
		{
			ID:            "R001",
			EquipmentCode: "PC-LC207-02",
			EquipmentName: "คอมพิวเตอร์ 02",
			Location:      repair.Location{Building: "ตึก LC", Floor: "ชั้น 2", Room: "ห้อง LC207"},
			Status:        repair.StatusPending,
			Description:   "จอคอมพิวเตอร์ไม่แสดงผล มีไฟสีน้ำเงินกระพริบ",
			Reporter:      "อาจารย์สมชาย",
			ReportDate:    "2024-01-15",
			Priority:      repair.PriorityHigh,
		},
		{
			ID:            "R002",
			EquipmentCode: "PJ-LC207-01",
			EquipmentName: "โปรเจคเตอร์",
			Location:      repair.Location{Building: "ตึก LC", Floor: "ชั้น 2", Room: "ห้อง LC207"},
			Status:        repair.StatusAssigned,
			Description:   "โปรเจคเตอร์ไม่สามารถแสดงภาพได้",
			Reporter:      "อาจารย์สมหญิง",
			AssignedTo:    "ช่างสมชาย",
			ReportDate:    "2024-01-14",
			Priority:      repair.PriorityMedium,
		},
		{
			ID:            "R003",
			EquipmentCode: "PC-LC207-08",
			EquipmentName: "คอมพิวเตอร์ 08",
			Location:      repair.Location{Building: "ตึก LC", Floor: "ชั้น 2", Room: "ห้อง LC207"},
			Status:        repair.StatusCompleted,
			Description:   "คอมพิวเตอร์เปิดไม่ติด",
			Reporter:      "นักศึกษาสมศรี",
			AssignedTo:    "ช่างสมหญิง",
			ReportDate:    "2024-01-13",
			CompletedDate: "2024-01-14",
			Priority:      repair.PriorityLow,
		},
	}
}
