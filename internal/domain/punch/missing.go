package punch

import (
	"context"
	"time"

	"payclock/internal/domain/leave"
	"payclock/internal/domain/payweek"
)

// MissingDay is a workday with neither a primary clock punch nor covering
// leave; it gates timesheet approval.
type MissingDay struct {
	Date time.Time `json:"date"`
}

// Detector cross-references reconciled punch days against the leave record
// set.
type Detector struct {
	punches PunchStoreAPI
	leaves  leave.StoreAPI
}

func NewDetector(punches PunchStoreAPI, leaves leave.StoreAPI) *Detector {
	return &Detector{punches: punches, leaves: leaves}
}

// MissingDays enumerates the five weekdays closing at weekEnding; a day is
// missing iff the employee has no primary clock punch on it and no leave
// record covering it.
func (d *Detector) MissingDays(ctx context.Context, employeeName string, weekEnding time.Time) ([]MissingDay, error) {
	punches, err := d.punches.ListForEmployeeWeek(ctx, employeeName, weekEnding)
	if err != nil {
		return nil, err
	}
	leaves, err := d.leaves.ListForEmployee(ctx, employeeName)
	if err != nil {
		return nil, err
	}

	punched := map[time.Time]bool{}
	for _, p := range punches {
		if p.Auxiliary() {
			continue
		}
		punched[payweek.Truncate(p.PunchDate)] = true
	}

	var missing []MissingDay
	for _, day := range payweek.Workdays(weekEnding) {
		if punched[day] {
			continue
		}
		onLeave := false
		for _, record := range leaves {
			if record.Covers(day) {
				onLeave = true
				break
			}
		}
		if !onLeave {
			missing = append(missing, MissingDay{Date: day})
		}
	}
	return missing, nil
}
