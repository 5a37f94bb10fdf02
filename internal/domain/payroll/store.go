package payroll

import (
	"context"
	"strconv"
	"time"

	"payclock/internal/domain/payweek"
	"payclock/internal/store"
)

const Table = "Payslips"

const (
	colRecord      = "Record No"
	colEmployeeID  = "Employee ID"
	colName        = "Employee Name"
	colEmployer    = "Employer"
	colStatus      = "Employment Status"
	colRate        = "Hourly Rate"
	colWeekEnding  = "Week Ending"
	colHours       = "Hours"
	colMinutes     = "Minutes"
	colOTHours     = "Overtime Hours"
	colOTMinutes   = "Overtime Minutes"
	colLeavePay    = "Leave Pay"
	colBonusPay    = "Bonus Pay"
	colOtherIncome = "Other Income"
	colOtherDeds   = "Other Deductions"
	colStandard    = "Standard Time Pay"
	colOvertime    = "Overtime Pay"
	colGross       = "Gross Pay"
	colUIF         = "UIF"
	colTotalDeds   = "Total Deductions"
	colNet         = "Net Pay"
	colLoanDed     = "Loan Deduction This Week"
	colNewLoan     = "New Loan This Week"
	colLoanMode    = "Loan Disbursement Type"
	colBalanceAt   = "Loan Balance At Creation"
	colUpdatedBal  = "Updated Loan Balance"
	colPaid        = "Paid To Account"
	colCreatedAt   = "Created At"
	colUpdatedAt   = "Updated At"
)

type StoreAPI interface {
	List(ctx context.Context) ([]Payslip, error)
	FindByRecord(ctx context.Context, recordNumber int) (Payslip, int, bool, error)
	FindByEmployeeWeek(ctx context.Context, employeeID string, weekEnding time.Time) (Payslip, bool, error)
	NextRecordNumber(ctx context.Context) (int, error)
	Append(ctx context.Context, payslip Payslip) error
	UpdateAt(ctx context.Context, rowIndex int, payslip Payslip) error
	DeleteAt(ctx context.Context, rowIndex int) error
}

type Store struct {
	tab store.Tabular
}

func NewStore(tab store.Tabular) *Store {
	return &Store{tab: tab}
}

func (s *Store) List(ctx context.Context) ([]Payslip, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return nil, err
	}
	payslips := make([]Payslip, 0, len(rows))
	for _, row := range rows {
		payslips = append(payslips, fromRow(row))
	}
	return payslips, nil
}

func (s *Store) FindByRecord(ctx context.Context, recordNumber int) (Payslip, int, bool, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return Payslip{}, 0, false, err
	}
	for i, row := range rows {
		payslip := fromRow(row)
		if payslip.RecordNumber == recordNumber {
			return payslip, i, true, nil
		}
	}
	return Payslip{}, 0, false, nil
}

func (s *Store) FindByEmployeeWeek(ctx context.Context, employeeID string, weekEnding time.Time) (Payslip, bool, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return Payslip{}, false, err
	}
	for _, row := range rows {
		payslip := fromRow(row)
		if payslip.EmployeeID == employeeID && payweek.SameDay(payslip.WeekEnding, weekEnding) {
			return payslip, true, nil
		}
	}
	return Payslip{}, false, nil
}

func (s *Store) NextRecordNumber(ctx context.Context) (int, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return 0, err
	}
	maxRecord := 0
	for _, row := range rows {
		if record, err := strconv.Atoi(row[colRecord]); err == nil && record > maxRecord {
			maxRecord = record
		}
	}
	return maxRecord + 1, nil
}

func (s *Store) Append(ctx context.Context, payslip Payslip) error {
	_, err := s.tab.AppendRow(ctx, Table, toRow(payslip))
	return err
}

func (s *Store) UpdateAt(ctx context.Context, rowIndex int, payslip Payslip) error {
	return s.tab.UpdateRow(ctx, Table, rowIndex, toRow(payslip))
}

func (s *Store) DeleteAt(ctx context.Context, rowIndex int) error {
	return s.tab.DeleteRow(ctx, Table, rowIndex)
}

func fromRow(row store.Row) Payslip {
	record, _ := strconv.Atoi(row[colRecord])
	weekEnding, _ := time.Parse(payweek.DateLayout, row[colWeekEnding])
	createdAt, _ := time.Parse(time.RFC3339, row[colCreatedAt])
	updatedAt, _ := time.Parse(time.RFC3339, row[colUpdatedAt])
	return Payslip{
		RecordNumber:          record,
		EmployeeID:            row[colEmployeeID],
		EmployeeName:          row[colName],
		Employer:              row[colEmployer],
		EmploymentStatus:      row[colStatus],
		HourlyRate:            parseFloat(row[colRate]),
		WeekEnding:            weekEnding,
		Hours:                 parseFloat(row[colHours]),
		Minutes:               parseFloat(row[colMinutes]),
		OvertimeHours:         parseFloat(row[colOTHours]),
		OvertimeMinutes:       parseFloat(row[colOTMinutes]),
		LeavePay:              parseFloat(row[colLeavePay]),
		BonusPay:              parseFloat(row[colBonusPay]),
		OtherIncome:           parseFloat(row[colOtherIncome]),
		OtherDeductions:       parseFloat(row[colOtherDeds]),
		StandardTimePay:       parseFloat(row[colStandard]),
		OvertimePay:           parseFloat(row[colOvertime]),
		GrossPay:              parseFloat(row[colGross]),
		UIF:                   parseFloat(row[colUIF]),
		TotalDeductions:       parseFloat(row[colTotalDeds]),
		NetPay:                parseFloat(row[colNet]),
		LoanDeduction:         parseFloat(row[colLoanDed]),
		NewLoan:               parseFloat(row[colNewLoan]),
		DisbursementType:      row[colLoanMode],
		LoanBalanceAtCreation: parseFloat(row[colBalanceAt]),
		UpdatedLoanBalance:    parseFloat(row[colUpdatedBal]),
		PaidToAccount:         parseFloat(row[colPaid]),
		CreatedAt:             createdAt,
		UpdatedAt:             updatedAt,
	}
}

func toRow(p Payslip) store.Row {
	return store.Row{
		colRecord:      strconv.Itoa(p.RecordNumber),
		colEmployeeID:  p.EmployeeID,
		colName:        p.EmployeeName,
		colEmployer:    p.Employer,
		colStatus:      p.EmploymentStatus,
		colRate:        formatFloat(p.HourlyRate),
		colWeekEnding:  p.WeekEnding.Format(payweek.DateLayout),
		colHours:       formatFloat(p.Hours),
		colMinutes:     formatFloat(p.Minutes),
		colOTHours:     formatFloat(p.OvertimeHours),
		colOTMinutes:   formatFloat(p.OvertimeMinutes),
		colLeavePay:    formatFloat(p.LeavePay),
		colBonusPay:    formatFloat(p.BonusPay),
		colOtherIncome: formatFloat(p.OtherIncome),
		colOtherDeds:   formatFloat(p.OtherDeductions),
		colStandard:    formatFloat(p.StandardTimePay),
		colOvertime:    formatFloat(p.OvertimePay),
		colGross:       formatFloat(p.GrossPay),
		colUIF:         formatFloat(p.UIF),
		colTotalDeds:   formatFloat(p.TotalDeductions),
		colNet:         formatFloat(p.NetPay),
		colLoanDed:     formatFloat(p.LoanDeduction),
		colNewLoan:     formatFloat(p.NewLoan),
		colLoanMode:    p.DisbursementType,
		colBalanceAt:   formatFloat(p.LoanBalanceAtCreation),
		colUpdatedBal:  formatFloat(p.UpdatedLoanBalance),
		colPaid:        formatFloat(p.PaidToAccount),
		colCreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		colUpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func parseFloat(value string) float64 {
	parsed, _ := strconv.ParseFloat(value, 64)
	return parsed
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
