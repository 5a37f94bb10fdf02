package money

import "math"

// RoundCents rounds to two decimal places, half away from zero. Payroll
// arithmetic rounds at every documented step, not once at the end, so that
// results reproduce to the cent.
func RoundCents(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return math.Round(value*100) / 100
}
