package payroll

import (
	"math"

	"payclock/internal/domain/roster"
	"payclock/internal/money"
)

type CalcInput struct {
	Hours            float64
	Minutes          float64
	OvertimeHours    float64
	OvertimeMinutes  float64
	HourlyRate       float64
	LeavePay         float64
	BonusPay         float64
	OtherIncome      float64
	OtherDeductions  float64
	EmploymentStatus string

	LoanDeduction      float64
	NewLoan            float64
	DisbursementType   string
	CurrentLoanBalance float64
}

type CalcResult struct {
	StandardTimePay    float64
	OvertimePay        float64
	GrossPay           float64
	UIF                float64
	TotalDeductions    float64
	NetPay             float64
	PaidToAccount      float64
	UpdatedLoanBalance float64
}

// Calculate maps a week's time and loan inputs to the payslip money fields.
// Every intermediate is rounded to cents before it feeds the next step; the
// rounding points are a behavioural contract, results are reproduced to the
// cent from the same inputs. Invalid numeric inputs coerce to zero rather
// than failing; callers validate before they get here.
func Calculate(in CalcInput) CalcResult {
	hours := nonNegative(in.Hours)
	minutes := nonNegative(in.Minutes)
	otHours := nonNegative(in.OvertimeHours)
	otMinutes := nonNegative(in.OvertimeMinutes)
	rate := nonNegative(in.HourlyRate)
	leavePay := nonNegative(in.LeavePay)
	bonusPay := nonNegative(in.BonusPay)
	otherIncome := nonNegative(in.OtherIncome)
	otherDeductions := nonNegative(in.OtherDeductions)
	loanDeduction := nonNegative(in.LoanDeduction)
	newLoan := nonNegative(in.NewLoan)
	balance := finite(in.CurrentLoanBalance)

	standardTime := money.RoundCents(hours*rate + (rate/60)*minutes)
	overtime := money.RoundCents(1.5 * (otHours*rate + (rate/60)*otMinutes))
	gross := money.RoundCents(standardTime + overtime + leavePay + bonusPay + otherIncome)

	var uif float64
	if in.EmploymentStatus == roster.StatusPermanent {
		uif = money.RoundCents(gross * UIFRate)
	}

	// The loan deduction is deliberately not part of total deductions; it is
	// applied to the disbursed amount after net pay.
	totalDeductions := money.RoundCents(uif + otherDeductions)
	net := money.RoundCents(gross - totalDeductions)

	var newLoanToAdd float64
	if in.DisbursementType == DisbursementWithSalary {
		newLoanToAdd = newLoan
	}
	paid := money.RoundCents(net - loanDeduction + newLoanToAdd)
	updatedBalance := money.RoundCents(balance - loanDeduction + newLoan)

	return CalcResult{
		StandardTimePay:    standardTime,
		OvertimePay:        overtime,
		GrossPay:           gross,
		UIF:                uif,
		TotalDeductions:    totalDeductions,
		NetPay:             net,
		PaidToAccount:      paid,
		UpdatedLoanBalance: updatedBalance,
	}
}

func nonNegative(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return value
}

func finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
