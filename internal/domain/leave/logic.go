package leave

import (
	"errors"
	"time"

	"payclock/internal/domain/payweek"
)

// Covers reports whether the record covers the given day. The return date is
// the day the employee is back at work, so the covered range is
// [start, return).
func (r Record) Covers(day time.Time) bool {
	d := payweek.Truncate(day)
	start := payweek.Truncate(r.StartDate)
	back := payweek.Truncate(r.ReturnDate)
	return !d.Before(start) && d.Before(back)
}

// CalculateDays returns the inclusive day count between start and the day
// before returnDate.
func CalculateDays(start, returnDate time.Time) (float64, error) {
	if returnDate.Before(start) {
		return 0, errors.New("return date before start date")
	}
	return payweek.Truncate(returnDate).Sub(payweek.Truncate(start)).Hours() / 24, nil
}
