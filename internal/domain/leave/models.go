package leave

import "time"

type Record struct {
	EmployeeName string    `json:"employeeName"`
	StartDate    time.Time `json:"startDate"`
	ReturnDate   time.Time `json:"returnDate"`
	Reason       string    `json:"reason"`
	TotalDays    float64   `json:"totalDays"`
	Notes        string    `json:"notes,omitempty"`
}

const (
	ReasonSickUnpaid           = "SickLeaveUnpaid"
	ReasonSickPaid             = "SickLeavePaid"
	ReasonAWOL                 = "AWOL"
	ReasonPaidLeave            = "PaidLeave"
	ReasonUnpaidLeave          = "UnpaidLeave"
	ReasonFamilyResponsibility = "FamilyResponsibility"
)

var validReasons = map[string]bool{
	ReasonSickUnpaid:           true,
	ReasonSickPaid:             true,
	ReasonAWOL:                 true,
	ReasonPaidLeave:            true,
	ReasonUnpaidLeave:          true,
	ReasonFamilyResponsibility: true,
}

func ValidReason(reason string) bool {
	return validReasons[reason]
}
