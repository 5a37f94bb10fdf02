package payweek

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEnding(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2026, time.March, 2), date(2026, time.March, 6)},  // Monday
		{date(2026, time.March, 6), date(2026, time.March, 6)},  // Friday maps to itself
		{date(2026, time.March, 7), date(2026, time.March, 13)}, // Saturday rolls forward
		{date(2026, time.March, 8), date(2026, time.March, 13)}, // Sunday rolls forward
	}
	for _, tc := range cases {
		if got := Ending(tc.in); !got.Equal(tc.want) {
			t.Fatalf("Ending(%s) = %s, want %s", tc.in.Format(DateLayout), got.Format(DateLayout), tc.want.Format(DateLayout))
		}
	}
}

func TestEndingTimeOfDayIgnored(t *testing.T) {
	late := time.Date(2026, time.March, 6, 23, 59, 0, 0, time.UTC)
	if got := Ending(late); !got.Equal(date(2026, time.March, 6)) {
		t.Fatalf("Ending late Friday = %s", got)
	}
}

func TestEditDeadline(t *testing.T) {
	weekEnding := date(2026, time.March, 6)
	deadline := EditDeadline(weekEnding)
	want := date(2026, time.March, 7)
	if !deadline.Equal(want) {
		t.Fatalf("EditDeadline = %s, want %s", deadline, want)
	}

	beforeMidnight := time.Date(2026, time.March, 6, 23, 59, 59, 0, time.UTC)
	if !beforeMidnight.Before(deadline) {
		t.Fatal("23:59:59 on the Friday should still be inside the edit window")
	}
	if want.Before(deadline) {
		t.Fatal("midnight itself should be outside the edit window")
	}
}

func TestWorkdays(t *testing.T) {
	days := Workdays(date(2026, time.March, 6))
	if len(days) != 5 {
		t.Fatalf("expected 5 workdays, got %d", len(days))
	}
	if !days[0].Equal(date(2026, time.March, 2)) {
		t.Fatalf("first workday = %s, want Monday 2026-03-02", days[0].Format(DateLayout))
	}
	if !days[4].Equal(date(2026, time.March, 6)) {
		t.Fatalf("last workday = %s, want the Friday itself", days[4].Format(DateLayout))
	}
}
