package loan

import "time"

// LedgerEntry is one row of the running loan ledger. A payslip with a
// nonzero loan movement owns exactly one entry, matched by PayslipLink;
// editing the payslip rewrites the entry in place.
type LedgerEntry struct {
	LoanID           int       `json:"loanId"`
	EmployeeID       string    `json:"employeeId"`
	EmployeeName     string    `json:"employeeName"`
	Timestamp        time.Time `json:"timestamp"`
	TransactionDate  time.Time `json:"transactionDate"`
	Amount           float64   `json:"amount"`
	TransactionType  string    `json:"transactionType"`
	DisbursementMode string    `json:"disbursementMode"`
	PayslipLink      int       `json:"payslipLink"`
	BalanceBefore    float64   `json:"balanceBefore"`
	BalanceAfter     float64   `json:"balanceAfter"`
	Notes            string    `json:"notes,omitempty"`
}

const (
	TypeDisbursement = "Disbursement"
	TypeRepayment    = "Repayment"

	// ModeNone marks repayment entries, which have no disbursement mode.
	ModeNone = "N/A"
)

// Movement is the loan-relevant slice of a payslip handed to the
// synchronizer, so the ledger does not depend on the payslip record shape.
type Movement struct {
	PayslipRecord      int
	EmployeeID         string
	EmployeeName       string
	TransactionDate    time.Time
	LoanDeduction      float64
	NewLoan            float64
	DisbursementType   string
	UpdatedLoanBalance float64
	Notes              string
}
