package timesheet

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"payclock/internal/domain/payweek"
	"payclock/internal/store"
)

const Table = "Pending Timesheets"

const (
	colID          = "Timesheet ID"
	colEmployeeID  = "Employee ID"
	colName        = "Employee Name"
	colWeekEnding  = "Week Ending"
	colCompHours   = "Computed Hours"
	colCompMinutes = "Computed Minutes"
	colEditHours   = "Editable Hours"
	colEditMinutes = "Editable Minutes"
	colOTHours     = "Overtime Hours"
	colOTMinutes   = "Overtime Minutes"
	colLunch       = "Lunch Deduction Minutes"
	colAux         = "Aux Deduction Minutes"
	colDetail      = "Reconciliation Detail"
	colWarnings    = "Warnings"
	colStatus      = "Status"
	colLocked      = "Locked"
	colPayslipRef  = "Payslip Ref"
	colImportID    = "Import ID"
	colImportedAt  = "Imported At"
	colReviewer    = "Reviewer"
	colReviewedAt  = "Reviewed At"
	colNotes       = "Notes"
)

type StoreAPI interface {
	List(ctx context.Context) ([]Timesheet, error)
	FindByID(ctx context.Context, id string) (Timesheet, int, bool, error)
	FindByEmployeeWeek(ctx context.Context, employeeID string, weekEnding time.Time) (Timesheet, int, bool, error)
	Append(ctx context.Context, sheet Timesheet) error
	UpdateAt(ctx context.Context, rowIndex int, sheet Timesheet) error
}

type Store struct {
	tab store.Tabular
}

func NewStore(tab store.Tabular) *Store {
	return &Store{tab: tab}
}

func (s *Store) List(ctx context.Context) ([]Timesheet, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return nil, err
	}
	sheets := make([]Timesheet, 0, len(rows))
	for _, row := range rows {
		sheets = append(sheets, fromRow(row))
	}
	return sheets, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (Timesheet, int, bool, error) {
	return s.find(ctx, func(t Timesheet) bool { return t.ID == id })
}

func (s *Store) FindByEmployeeWeek(ctx context.Context, employeeID string, weekEnding time.Time) (Timesheet, int, bool, error) {
	return s.find(ctx, func(t Timesheet) bool {
		return t.EmployeeID == employeeID && payweek.SameDay(t.WeekEnding, weekEnding)
	})
}

func (s *Store) find(ctx context.Context, match func(Timesheet) bool) (Timesheet, int, bool, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return Timesheet{}, 0, false, err
	}
	for i, row := range rows {
		sheet := fromRow(row)
		if match(sheet) {
			return sheet, i, true, nil
		}
	}
	return Timesheet{}, 0, false, nil
}

func (s *Store) Append(ctx context.Context, sheet Timesheet) error {
	_, err := s.tab.AppendRow(ctx, Table, toRow(sheet))
	return err
}

func (s *Store) UpdateAt(ctx context.Context, rowIndex int, sheet Timesheet) error {
	return s.tab.UpdateRow(ctx, Table, rowIndex, toRow(sheet))
}

func fromRow(row store.Row) Timesheet {
	weekEnding, _ := time.Parse(payweek.DateLayout, row[colWeekEnding])
	importedAt, _ := time.Parse(time.RFC3339, row[colImportedAt])
	reviewedAt, _ := time.Parse(time.RFC3339, row[colReviewedAt])
	payslipRef, _ := strconv.Atoi(row[colPayslipRef])
	var warnings []string
	if row[colWarnings] != "" {
		_ = json.Unmarshal([]byte(row[colWarnings]), &warnings)
	}
	return Timesheet{
		ID:                    row[colID],
		EmployeeID:            row[colEmployeeID],
		EmployeeName:          row[colName],
		WeekEnding:            weekEnding,
		ComputedHours:         parseInt(row[colCompHours]),
		ComputedMinutes:       parseInt(row[colCompMinutes]),
		EditableHours:         parseFloat(row[colEditHours]),
		EditableMinutes:       parseFloat(row[colEditMinutes]),
		OvertimeHours:         parseFloat(row[colOTHours]),
		OvertimeMinutes:       parseFloat(row[colOTMinutes]),
		LunchDeductionMinutes: parseInt(row[colLunch]),
		AuxDeductionMinutes:   parseInt(row[colAux]),
		Detail:                row[colDetail],
		Warnings:              warnings,
		Status:                row[colStatus],
		IsLocked:              row[colLocked] == "true",
		PayslipRef:            payslipRef,
		ImportID:              row[colImportID],
		ImportedAt:            importedAt,
		Reviewer:              row[colReviewer],
		ReviewedAt:            reviewedAt,
		Notes:                 row[colNotes],
	}
}

func toRow(t Timesheet) store.Row {
	warnings := ""
	if len(t.Warnings) > 0 {
		encoded, _ := json.Marshal(t.Warnings)
		warnings = string(encoded)
	}
	reviewedAt := ""
	if !t.ReviewedAt.IsZero() {
		reviewedAt = t.ReviewedAt.UTC().Format(time.RFC3339)
	}
	return store.Row{
		colID:          t.ID,
		colEmployeeID:  t.EmployeeID,
		colName:        t.EmployeeName,
		colWeekEnding:  t.WeekEnding.Format(payweek.DateLayout),
		colCompHours:   strconv.Itoa(t.ComputedHours),
		colCompMinutes: strconv.Itoa(t.ComputedMinutes),
		colEditHours:   strconv.FormatFloat(t.EditableHours, 'f', -1, 64),
		colEditMinutes: strconv.FormatFloat(t.EditableMinutes, 'f', -1, 64),
		colOTHours:     strconv.FormatFloat(t.OvertimeHours, 'f', -1, 64),
		colOTMinutes:   strconv.FormatFloat(t.OvertimeMinutes, 'f', -1, 64),
		colLunch:       strconv.Itoa(t.LunchDeductionMinutes),
		colAux:         strconv.Itoa(t.AuxDeductionMinutes),
		colDetail:      t.Detail,
		colWarnings:    warnings,
		colStatus:      t.Status,
		colLocked:      strconv.FormatBool(t.IsLocked),
		colPayslipRef:  strconv.Itoa(t.PayslipRef),
		colImportID:    t.ImportID,
		colImportedAt:  t.ImportedAt.UTC().Format(time.RFC3339),
		colReviewedAt:  reviewedAt,
		colReviewer:    t.Reviewer,
		colNotes:       t.Notes,
	}
}

func parseInt(value string) int {
	parsed, _ := strconv.Atoi(value)
	return parsed
}

func parseFloat(value string) float64 {
	parsed, _ := strconv.ParseFloat(value, 64)
	return parsed
}
