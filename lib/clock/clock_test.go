// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fake := Fake(start)

	if !fake.Now().Equal(start) {
		t.Fatalf("fake clock reports %v, want %v", fake.Now(), start)
	}

	fake.Advance(90 * time.Second)
	want := start.Add(90 * time.Second)
	if !fake.Now().Equal(want) {
		t.Fatalf("after advance, fake clock reports %v, want %v", fake.Now(), want)
	}
}

func TestFakeClockSet(t *testing.T) {
	fake := Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	target := time.Date(2026, 6, 15, 12, 30, 0, 0, time.UTC)
	fake.Set(target)
	if !fake.Now().Equal(target) {
		t.Fatalf("fake clock reports %v, want %v", fake.Now(), target)
	}
}

func TestRealClockTracksSystemTime(t *testing.T) {
	before := time.Now()
	got := Real().Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Fatalf("real clock %v outside [%v, %v]", got, before, after)
	}
}
