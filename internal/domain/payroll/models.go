package payroll

import "time"

// Payslip is one employee-week of pay. At most one exists per
// (employee, week ending); it stays editable until midnight at the end of
// its own Friday.
type Payslip struct {
	RecordNumber     int       `json:"recordNumber"`
	EmployeeID       string    `json:"employeeId"`
	EmployeeName     string    `json:"employeeName"`
	Employer         string    `json:"employer"`
	EmploymentStatus string    `json:"employmentStatus"`
	HourlyRate       float64   `json:"hourlyRate"`
	WeekEnding       time.Time `json:"weekEnding"`

	Hours           float64 `json:"hours"`
	Minutes         float64 `json:"minutes"`
	OvertimeHours   float64 `json:"overtimeHours"`
	OvertimeMinutes float64 `json:"overtimeMinutes"`

	LeavePay        float64 `json:"leavePay"`
	BonusPay        float64 `json:"bonusPay"`
	OtherIncome     float64 `json:"otherIncome"`
	OtherDeductions float64 `json:"otherDeductions"`

	StandardTimePay float64 `json:"standardTimePay"`
	OvertimePay     float64 `json:"overtimePay"`
	GrossPay        float64 `json:"grossPay"`
	UIF             float64 `json:"uif"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetPay          float64 `json:"netPay"`

	LoanDeduction         float64 `json:"loanDeductionThisWeek"`
	NewLoan               float64 `json:"newLoanThisWeek"`
	DisbursementType      string  `json:"loanDisbursementType"`
	LoanBalanceAtCreation float64 `json:"currentLoanBalanceAtCreation"`
	UpdatedLoanBalance    float64 `json:"updatedLoanBalance"`
	PaidToAccount         float64 `json:"paidToAccount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input carries the editable payslip fields supplied by callers; computed
// money fields are always derived, never accepted.
type Input struct {
	EmployeeID       string  `json:"employeeId"`
	WeekEnding       string  `json:"weekEnding"`
	Hours            float64 `json:"hours"`
	Minutes          float64 `json:"minutes"`
	OvertimeHours    float64 `json:"overtimeHours"`
	OvertimeMinutes  float64 `json:"overtimeMinutes"`
	LeavePay         float64 `json:"leavePay"`
	BonusPay         float64 `json:"bonusPay"`
	OtherIncome      float64 `json:"otherIncome"`
	OtherDeductions  float64 `json:"otherDeductions"`
	LoanDeduction    float64 `json:"loanDeductionThisWeek"`
	NewLoan          float64 `json:"newLoanThisWeek"`
	DisbursementType string  `json:"loanDisbursementType"`
}

// LoanInput carries a loan-only edit to an existing payslip.
type LoanInput struct {
	LoanDeduction    float64 `json:"loanDeductionThisWeek"`
	NewLoan          float64 `json:"newLoanThisWeek"`
	DisbursementType string  `json:"loanDisbursementType"`
}

// Result pairs a payslip with non-fatal warnings such as a loan deduction
// exceeding the current balance under the "warn" overdraft policy.
type Result struct {
	Payslip  Payslip  `json:"payslip"`
	Warnings []string `json:"warnings,omitempty"`
}
