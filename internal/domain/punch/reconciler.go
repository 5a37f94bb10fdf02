package punch

import (
	"fmt"
	"sort"
	"time"

	"payclock/internal/domain/payweek"
)

// ReconcileConfig carries the fixed deduction rules. LunchDeductionMinutes
// is subtracted from any day whose raw worked time exceeds
// HalfDayThresholdMinutes.
type ReconcileConfig struct {
	LunchDeductionMinutes   int
	HalfDayThresholdMinutes int
}

// DayBreakdown is one reconciled calendar day.
type DayBreakdown struct {
	Date                  time.Time `json:"date"`
	RawMinutes            int       `json:"rawMinutes"`
	LunchDeductionMinutes int       `json:"lunchDeductionMinutes"`
	AuxDeductionMinutes   int       `json:"auxDeductionMinutes"`
	NetMinutes            int       `json:"netMinutes"`
}

// ReconcileResult is the weekly rollup proposed to the reviewer. The
// computed totals seed the editable timesheet fields; they are a proposal,
// not a commitment.
type ReconcileResult struct {
	TotalHours            int            `json:"calculatedTotalHours"`
	TotalMinutes          int            `json:"calculatedTotalMinutes"`
	LunchDeductionMinutes int            `json:"lunchDeductionMinutes"`
	BathroomTimeMinutes   int            `json:"bathroomTimeMinutes"`
	Days                  []DayBreakdown `json:"dailyBreakdown"`
	Warnings              []string       `json:"warnings,omitempty"`
}

// Reconcile turns one employee's raw punches into per-day worked intervals.
// Within a day, primary-channel punches sort by timestamp and pair
// sequentially (in, out, in, ...); an odd count leaves the trailing punch
// unpaired, which is warned about and excluded. Auxiliary-channel punches
// pair the same way and their summed duration is deducted from the day.
func Reconcile(punches []RawPunch, cfg ReconcileConfig) ReconcileResult {
	byDay := map[time.Time][]RawPunch{}
	for _, p := range punches {
		day := payweek.Truncate(p.PunchDate)
		byDay[day] = append(byDay[day], p)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var result ReconcileResult
	for _, day := range days {
		var primary, aux []RawPunch
		for _, p := range byDay[day] {
			if p.Auxiliary() {
				aux = append(aux, p)
			} else {
				primary = append(primary, p)
			}
		}

		rawMinutes, unpairedPrimary := pairMinutes(primary)
		auxMinutes, unpairedAux := pairMinutes(aux)
		if unpairedPrimary {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unpaired punch on %s", day.Format(payweek.DateLayout)))
		}
		if unpairedAux {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unpaired break punch on %s", day.Format(payweek.DateLayout)))
		}

		lunch := 0
		if rawMinutes > cfg.HalfDayThresholdMinutes {
			lunch = cfg.LunchDeductionMinutes
		}

		net := rawMinutes - lunch - auxMinutes
		if net < 0 {
			net = 0
		}

		result.Days = append(result.Days, DayBreakdown{
			Date:                  day,
			RawMinutes:            rawMinutes,
			LunchDeductionMinutes: lunch,
			AuxDeductionMinutes:   auxMinutes,
			NetMinutes:            net,
		})
		result.LunchDeductionMinutes += lunch
		result.BathroomTimeMinutes += auxMinutes
	}

	totalNet := 0
	for _, day := range result.Days {
		totalNet += day.NetMinutes
	}
	result.TotalHours = totalNet / 60
	result.TotalMinutes = totalNet % 60

	return result
}

// pairMinutes sums whole minutes across sequential in/out pairs, reporting
// whether a trailing punch was left unpaired.
func pairMinutes(punches []RawPunch) (int, bool) {
	sort.Slice(punches, func(i, j int) bool {
		return punches[i].Timestamp.Before(punches[j].Timestamp)
	})
	minutes := 0
	for i := 0; i+1 < len(punches); i += 2 {
		minutes += int(punches[i+1].Timestamp.Sub(punches[i].Timestamp) / time.Minute)
	}
	return minutes, len(punches)%2 == 1
}
