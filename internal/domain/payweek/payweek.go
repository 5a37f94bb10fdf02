package payweek

import "time"

const DateLayout = "2006-01-02"

// Ending returns the Friday on or after the given date, truncated to
// midnight. That Friday is the canonical date key for a payroll week.
func Ending(date time.Time) time.Time {
	day := Truncate(date)
	offset := (int(time.Friday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// EditDeadline is the moment records keyed to the given week ending become
// immutable: midnight at the end of that Friday.
func EditDeadline(weekEnding time.Time) time.Time {
	return Truncate(weekEnding).AddDate(0, 0, 1)
}

// Workdays enumerates the five weekdays of the week closing at weekEnding,
// Monday through Friday in order.
func Workdays(weekEnding time.Time) []time.Time {
	end := Truncate(weekEnding)
	days := make([]time.Time, 0, 5)
	for offset := 4; offset >= 0; offset-- {
		days = append(days, end.AddDate(0, 0, -offset))
	}
	return days
}

// Truncate drops the time-of-day component.
func Truncate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
