package punch

import (
	"context"
	"testing"
	"time"

	"payclock/internal/domain/leave"
	"payclock/internal/store"
)

func TestMissingDays(t *testing.T) {
	ctx := context.Background()
	tab := store.NewMemory()
	punches := NewPunchStore(tab)
	leaves := leave.NewStore(tab)
	detector := NewDetector(punches, leaves)

	day := func(d int) time.Time { return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC) }
	weekEnding := day(6)

	// Punches on Monday, Tuesday and Thursday; leave covering Wednesday.
	err := punches.AppendAll(ctx, []RawPunch{
		{EmployeeName: "Thandi M", PunchDate: day(2), Timestamp: day(2).Add(7 * time.Hour), DeviceLabel: "Main Door"},
		{EmployeeName: "Thandi M", PunchDate: day(3), Timestamp: day(3).Add(7 * time.Hour), DeviceLabel: "Main Door"},
		{EmployeeName: "Thandi M", PunchDate: day(5), Timestamp: day(5).Add(7 * time.Hour), DeviceLabel: "Main Door"},
	})
	if err != nil {
		t.Fatalf("append punches: %v", err)
	}
	err = leaves.Append(ctx, leave.Record{
		EmployeeName: "Thandi M",
		StartDate:    day(4),
		ReturnDate:   day(5),
		Reason:       leave.ReasonSickPaid,
		TotalDays:    1,
	})
	if err != nil {
		t.Fatalf("append leave: %v", err)
	}

	missing, err := detector.MissingDays(ctx, "Thandi M", weekEnding)
	if err != nil {
		t.Fatalf("missing days: %v", err)
	}
	if len(missing) != 1 {
		t.Fatalf("missing = %v, want only the Friday", missing)
	}
	if !missing[0].Date.Equal(day(6)) {
		t.Fatalf("missing day = %s, want 2026-03-06", missing[0].Date)
	}
}

func TestMissingDaysIgnoresAuxPunches(t *testing.T) {
	ctx := context.Background()
	tab := store.NewMemory()
	punches := NewPunchStore(tab)
	detector := NewDetector(punches, leave.NewStore(tab))

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	err := punches.AppendAll(ctx, []RawPunch{
		{EmployeeName: "Thandi M", PunchDate: day, Timestamp: day.Add(10 * time.Hour), DeviceLabel: "Bathroom Clock"},
	})
	if err != nil {
		t.Fatalf("append punches: %v", err)
	}

	missing, err := detector.MissingDays(ctx, "Thandi M", time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("missing days: %v", err)
	}
	// A bathroom punch alone does not prove presence.
	if len(missing) != 5 {
		t.Fatalf("expected all 5 workdays missing, got %d", len(missing))
	}
}

func TestMissingDaysLeaveReturnDayNotCovered(t *testing.T) {
	ctx := context.Background()
	tab := store.NewMemory()
	detector := NewDetector(NewPunchStore(tab), leave.NewStore(tab))
	leaves := leave.NewStore(tab)

	day := func(d int) time.Time { return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC) }
	err := leaves.Append(ctx, leave.Record{
		EmployeeName: "Thandi M",
		StartDate:    day(2),
		ReturnDate:   day(6),
		Reason:       leave.ReasonUnpaidLeave,
		TotalDays:    4,
	})
	if err != nil {
		t.Fatalf("append leave: %v", err)
	}

	missing, err := detector.MissingDays(ctx, "Thandi M", day(6))
	if err != nil {
		t.Fatalf("missing days: %v", err)
	}
	// The return day is a workday again; with no punch it stays missing.
	if len(missing) != 1 || !missing[0].Date.Equal(day(6)) {
		t.Fatalf("missing = %v, want only the return Friday", missing)
	}
}
