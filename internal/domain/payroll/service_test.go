package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"payclock/internal/apperror"
	"payclock/internal/config"
	"payclock/internal/domain/loan"
	"payclock/internal/domain/roster"
	"payclock/internal/store"
)

type payrollFixture struct {
	service *Service
	loans   *loan.Service
	now     time.Time
}

func newPayrollFixture(t *testing.T, overdraftPolicy string) *payrollFixture {
	t.Helper()
	ctx := context.Background()
	tab := store.NewMemory()

	rosterStore := roster.NewStore(tab)
	for _, employee := range []roster.Employee{
		{ID: "E1", Name: "Thandi M", EmploymentStatus: roster.StatusPermanent, HourlyRate: 33.96, Active: true},
		{ID: "E2", Name: "Sipho K", EmploymentStatus: roster.StatusTemporary, HourlyRate: 40, Active: true},
	} {
		if err := rosterStore.Append(ctx, employee); err != nil {
			t.Fatalf("seed roster: %v", err)
		}
	}

	now := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	loanService := loan.NewService(loan.NewStore(tab))
	loanService.Now = func() time.Time { return now }
	service := NewService(NewStore(tab), rosterStore, loanService, overdraftPolicy)
	service.Now = func() time.Time { return now }

	return &payrollFixture{service: service, loans: loanService, now: now}
}

func TestCreateAssignsSequentialRecordNumbers(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	first, err := f.service.Create(ctx, Input{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: 40})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := f.service.Create(ctx, Input{EmployeeID: "E2", WeekEnding: "2026-03-06", Hours: 40})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Payslip.RecordNumber != 1 || second.Payslip.RecordNumber != 2 {
		t.Fatalf("record numbers = %d, %d", first.Payslip.RecordNumber, second.Payslip.RecordNumber)
	}
}

func TestCreateDuplicateEmployeeWeekRejected(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	created, err := f.service.Create(ctx, Input{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: 40})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.service.Create(ctx, Input{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: 38})
	if err == nil {
		t.Fatal("expected duplicate rejection")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeDuplicatePayslip {
		t.Fatalf("error = %v", err)
	}
	details := appErr.Details.(map[string]any)
	if details["recordNumber"] != created.Payslip.RecordNumber {
		t.Fatalf("details = %+v", details)
	}
}

func TestCreateNormalizesWeekEndingToFriday(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	// Monday in, Friday stored; a second create keyed on the Friday collides.
	if _, err := f.service.Create(ctx, Input{EmployeeID: "E1", WeekEnding: "2026-03-02", Hours: 40}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.service.Create(ctx, Input{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: 40}); err == nil {
		t.Fatal("expected collision on the normalized week ending")
	}
}

func TestCreateUnknownEmployeeRejected(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	_, err := f.service.Create(context.Background(), Input{EmployeeID: "E9", WeekEnding: "2026-03-06", Hours: 40})
	if err == nil {
		t.Fatal("expected not found")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Kind != apperror.KindNotFound {
		t.Fatalf("error = %v", err)
	}
}

func TestCreateSyncsLoanLedger(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	result, err := f.service.Create(ctx, Input{
		EmployeeID:       "E1",
		WeekEnding:       "2026-03-06",
		Hours:            40,
		NewLoan:          500,
		DisbursementType: DisbursementWithSalary,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Payslip.UpdatedLoanBalance != 500 {
		t.Fatalf("balance = %v", result.Payslip.UpdatedLoanBalance)
	}

	entries, err := f.loans.History(ctx, "E1", nil, nil)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 || entries[0].PayslipLink != result.Payslip.RecordNumber {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].TransactionType != loan.TypeDisbursement || entries[0].BalanceAfter != 500 {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestUpdateRecomputesAndRewritesLedger(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	created, err := f.service.Create(ctx, Input{
		EmployeeID:       "E1",
		WeekEnding:       "2026-03-06",
		Hours:            40,
		NewLoan:          500,
		DisbursementType: DisbursementSeparate,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	record := created.Payslip.RecordNumber

	updated, err := f.service.Update(ctx, record, Input{
		EmployeeID:       "E1",
		WeekEnding:       "2026-03-06",
		Hours:            38,
		NewLoan:          300,
		DisbursementType: DisbursementSeparate,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Payslip.Hours != 38 {
		t.Fatalf("hours = %v", updated.Payslip.Hours)
	}
	// Balance captured at creation stays fixed; only the movement changes.
	if updated.Payslip.LoanBalanceAtCreation != 0 || updated.Payslip.UpdatedLoanBalance != 300 {
		t.Fatalf("balances = %v / %v", updated.Payslip.LoanBalanceAtCreation, updated.Payslip.UpdatedLoanBalance)
	}

	entries, err := f.loans.History(ctx, "E1", nil, nil)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ledger rows = %d, want the linked row rewritten", len(entries))
	}
	if entries[0].Amount != 300 || entries[0].BalanceAfter != 300 {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestUpdateLoanLeavesTimeFieldsAlone(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	created, err := f.service.Create(ctx, Input{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: 39, Minutes: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := f.service.UpdateLoan(ctx, created.Payslip.RecordNumber, LoanInput{
		NewLoan:          500,
		DisbursementType: DisbursementWithSalary,
	})
	if err != nil {
		t.Fatalf("update loan: %v", err)
	}
	if result.Payslip.Hours != 39 || result.Payslip.Minutes != 30 {
		t.Fatalf("time fields changed: %+v", result.Payslip)
	}
	if result.Payslip.PaidToAccount != 1828.01 {
		t.Fatalf("paid to account = %v, want 1828.01", result.Payslip.PaidToAccount)
	}
}

func TestEditWindowClosesAtDeadline(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	created, err := f.service.Create(ctx, Input{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: 40})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	record := created.Payslip.RecordNumber

	// Saturday 00:00 after the Friday week ending.
	f.service.Now = func() time.Time { return time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC) }

	_, err = f.service.Update(ctx, record, Input{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: 38})
	if err == nil {
		t.Fatal("expected edit window rejection")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Kind != apperror.KindEditWindow {
		t.Fatalf("error = %v", err)
	}

	if err := f.service.Delete(ctx, record); err == nil {
		t.Fatal("expected delete to respect the edit window")
	}
}

func TestEditAllowedUntilMidnight(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	created, err := f.service.Create(ctx, Input{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: 40})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	f.service.Now = func() time.Time { return time.Date(2026, time.March, 6, 23, 59, 59, 0, time.UTC) }
	if _, err := f.service.Update(ctx, created.Payslip.RecordNumber, Input{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: 38}); err != nil {
		t.Fatalf("update just before midnight: %v", err)
	}
}

func TestOverdraftWarnPolicy(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	result, err := f.service.Create(ctx, Input{
		EmployeeID:    "E1",
		WeekEnding:    "2026-03-06",
		Hours:         40,
		LoanDeduction: 200,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != WarningLoanOverdraft {
		t.Fatalf("warnings = %v", result.Warnings)
	}
	if result.Payslip.UpdatedLoanBalance != -200 {
		t.Fatalf("balance = %v", result.Payslip.UpdatedLoanBalance)
	}
}

func TestOverdraftRejectPolicy(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftReject)
	ctx := context.Background()

	_, err := f.service.Create(ctx, Input{
		EmployeeID:    "E1",
		WeekEnding:    "2026-03-06",
		Hours:         40,
		LoanDeduction: 200,
	})
	if err == nil {
		t.Fatal("expected overdraft rejection")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeLoanOverdraft {
		t.Fatalf("error = %v", err)
	}

	payslips, err := f.service.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(payslips) != 0 {
		t.Fatal("rejected create must not persist a payslip")
	}
}

func TestDeleteRemovesPayslipAndLedgerEntry(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	created, err := f.service.Create(ctx, Input{
		EmployeeID:       "E1",
		WeekEnding:       "2026-03-06",
		Hours:            40,
		NewLoan:          500,
		DisbursementType: DisbursementSeparate,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	record := created.Payslip.RecordNumber

	if err := f.service.Delete(ctx, record); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.service.Get(ctx, record); err == nil {
		t.Fatal("payslip still readable after delete")
	}

	entries, err := f.loans.History(ctx, "E1", nil, nil)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("ledger rows = %d after delete, want 0", len(entries))
	}
}

func TestValidateInput(t *testing.T) {
	f := newPayrollFixture(t, config.OverdraftWarn)
	ctx := context.Background()

	bad := []Input{
		{WeekEnding: "2026-03-06", Hours: 40},
		{EmployeeID: "E1", WeekEnding: "2026-03-06", Hours: -1},
		{EmployeeID: "E1", WeekEnding: "2026-03-06", Minutes: 60},
		{EmployeeID: "E1", WeekEnding: "2026-03-06", BonusPay: -5},
		{EmployeeID: "E1", WeekEnding: "2026-03-06", NewLoan: -10},
		{EmployeeID: "E1", WeekEnding: "2026-03-06", DisbursementType: "Sideways"},
		{EmployeeID: "E1", WeekEnding: "not-a-date", Hours: 40},
	}
	for i, in := range bad {
		if _, err := f.service.Create(ctx, in); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, in)
		}
	}
}
