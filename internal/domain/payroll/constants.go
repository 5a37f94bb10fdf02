package payroll

const (
	// DisbursementSeparate pays a new loan out separately from wages.
	DisbursementSeparate = "Separate"
	// DisbursementWithSalary adds a new loan into the paid-to-account amount.
	DisbursementWithSalary = "WithSalary"
	// DisbursementRepayment marks a repayment-only loan movement.
	DisbursementRepayment = "Repayment"

	// UIFRate is the statutory deduction applied to permanent employees.
	UIFRate = 0.01

	WarningLoanOverdraft = "loan deduction exceeds current balance"
)
