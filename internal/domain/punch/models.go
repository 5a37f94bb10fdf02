package punch

import (
	"strings"
	"time"
)

// RawPunch is one timestamped event from the clock export, immutable once
// stored and tagged with the import batch that produced it.
type RawPunch struct {
	ClockRef     string    `json:"clockRef"`
	EmployeeID   string    `json:"employeeId,omitempty"`
	EmployeeName string    `json:"employeeName"`
	Department   string    `json:"department"`
	PunchDate    time.Time `json:"punchDate"`
	Timestamp    time.Time `json:"punchTimestamp"`
	DeviceLabel  string    `json:"deviceLabel"`
	DeviceSerial string    `json:"deviceSerial"`
	ImportID     string    `json:"importId"`
}

// Auxiliary reports whether the punch came from a side channel (break or
// bathroom tracking) rather than the primary clock-in/out device.
func (p RawPunch) Auxiliary() bool {
	label := strings.ToLower(p.DeviceLabel)
	return strings.Contains(label, "bathroom") || strings.Contains(label, "break")
}

const (
	BatchActive   = "Active"
	BatchReplaced = "Replaced"
)

// ImportBatch records one uploaded punch-export file. (weekEnding, fileHash)
// is the dedup key; a later override import for the same week replaces the
// prior Active batch.
type ImportBatch struct {
	ImportID         string    `json:"importId"`
	FileHash         string    `json:"fileHash"`
	WeekEnding       time.Time `json:"weekEnding"`
	TotalRecords     int       `json:"totalRecords"`
	MatchedEmployees int       `json:"matchedEmployeeCount"`
	UnmatchedRefs    []string  `json:"unmatchedRefs,omitempty"`
	Status           string    `json:"status"`
	ReplacedBy       string    `json:"replacedByImportId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// UnmatchedRef describes a clock reference with no roster match, with enough
// context for a human to fix the mapping before forcing the import.
type UnmatchedRef struct {
	ClockRef      string `json:"clockRef"`
	PunchCount    int    `json:"punchCount"`
	BestGuessName string `json:"bestGuessName,omitempty"`
}

// ImportResult is the outcome of a successful (or forced) import.
type ImportResult struct {
	ImportID          string         `json:"importId"`
	WeekEnding        time.Time      `json:"weekEnding"`
	TotalRecords      int            `json:"totalRecords"`
	MatchedEmployees  int            `json:"matchedEmployeeCount"`
	UnmatchedRefs     []UnmatchedRef `json:"unmatchedRefs,omitempty"`
	ReplacedImportID  string         `json:"replacedImportId,omitempty"`
	TimesheetsCreated int            `json:"timesheetsCreated"`
	Warnings          []string       `json:"warnings,omitempty"`
}
