package timesheet

import "time"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Timesheet is one employee-week awaiting review. The computed fields come
// from reconciliation; the editable fields start as copies and may be
// corrected by the reviewer while the record is Pending and unlocked. Once a
// payslip is generated from it the record locks for good.
type Timesheet struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	WeekEnding   time.Time `json:"weekEnding"`

	ComputedHours   int `json:"computedHours"`
	ComputedMinutes int `json:"computedMinutes"`

	EditableHours   float64 `json:"editableHours"`
	EditableMinutes float64 `json:"editableMinutes"`
	OvertimeHours   float64 `json:"overtimeHours"`
	OvertimeMinutes float64 `json:"overtimeMinutes"`

	LunchDeductionMinutes int `json:"lunchDeductionMinutes"`
	AuxDeductionMinutes   int `json:"auxDeductionMinutes"`

	// Detail holds the reconciliation breakdown as an opaque JSON blob for
	// the review screen; nothing downstream parses it.
	Detail   string   `json:"reconciliationDetail,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	Status     string `json:"status"`
	IsLocked   bool   `json:"isLocked"`
	PayslipRef int    `json:"payslipRef,omitempty"`

	ImportID   string    `json:"importId,omitempty"`
	ImportedAt time.Time `json:"importedAt"`
	Reviewer   string    `json:"reviewer,omitempty"`
	ReviewedAt time.Time `json:"reviewedAt,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// ApprovalResult reports the approval outcome, including per-day leave
// backfill errors which do not roll the approval back.
type ApprovalResult struct {
	Timesheet   Timesheet         `json:"timesheet"`
	PayslipRef  int               `json:"payslipRef"`
	Warnings    []string          `json:"warnings,omitempty"`
	LeaveErrors map[string]string `json:"leaveErrors,omitempty"`
}
