package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"payclock/internal/apperror"
	"payclock/internal/config"
	"payclock/internal/domain/leave"
	"payclock/internal/domain/loan"
	"payclock/internal/domain/payroll"
	"payclock/internal/domain/punch"
	"payclock/internal/domain/roster"
	"payclock/internal/store"
)

type fixture struct {
	sheets   *Service
	payroll  *payroll.Service
	leaves   *leave.Store
	employee roster.Employee
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	tab := store.NewMemory()

	rosterStore := roster.NewStore(tab)
	employee := roster.Employee{
		ID: "E1", Name: "Thandi M", ClockRef: "101",
		Employer: "Acme Farms", EmploymentStatus: roster.StatusPermanent,
		HourlyRate: 33.96, Active: true,
	}
	if err := rosterStore.Append(ctx, employee); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	now := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	loanService := loan.NewService(loan.NewStore(tab))
	loanService.Now = func() time.Time { return now }
	payrollService := payroll.NewService(payroll.NewStore(tab), rosterStore, loanService, config.OverdraftWarn)
	payrollService.Now = func() time.Time { return now }

	leaveStore := leave.NewStore(tab)
	sheetService := NewService(NewStore(tab), rosterStore, leaveStore, payrollService)
	sheetService.Now = func() time.Time { return now }

	return &fixture{
		sheets:   sheetService,
		payroll:  payrollService,
		leaves:   leaveStore,
		employee: employee,
		now:      now,
	}
}

func (f *fixture) pendingSheet(t *testing.T) Timesheet {
	t.Helper()
	ctx := context.Background()
	weekEnding := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	created, _, err := f.sheets.CreatePending(ctx, f.employee, weekEnding, "import-1", punch.ReconcileResult{
		TotalHours:   39,
		TotalMinutes: 30,
	})
	if err != nil || !created {
		t.Fatalf("create pending: created=%v err=%v", created, err)
	}
	sheet, _, found, err := f.sheets.store.FindByEmployeeWeek(ctx, f.employee.ID, weekEnding)
	if err != nil || !found {
		t.Fatalf("find pending: found=%v err=%v", found, err)
	}
	return sheet
}

func TestCreatePendingSeedsEditableFields(t *testing.T) {
	f := newFixture(t)
	sheet := f.pendingSheet(t)

	if sheet.Status != StatusPending || sheet.IsLocked {
		t.Fatalf("sheet = %+v", sheet)
	}
	if sheet.ComputedHours != 39 || sheet.ComputedMinutes != 30 {
		t.Fatalf("computed = %d:%d", sheet.ComputedHours, sheet.ComputedMinutes)
	}
	if sheet.EditableHours != 39 || sheet.EditableMinutes != 30 {
		t.Fatalf("editable = %v:%v, want copies of the computed values", sheet.EditableHours, sheet.EditableMinutes)
	}
}

func TestCreatePendingOverwritesPendingSheet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.pendingSheet(t)

	created, warning, err := f.sheets.CreatePending(ctx, f.employee, first.WeekEnding, "import-2", punch.ReconcileResult{
		TotalHours: 20,
	})
	if err != nil || !created || warning != "" {
		t.Fatalf("re-import: created=%v warning=%q err=%v", created, warning, err)
	}

	sheets, err := f.sheets.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("sheet count = %d, want the pending sheet replaced in place", len(sheets))
	}
	if sheets[0].ID != first.ID || sheets[0].ComputedHours != 20 || sheets[0].ImportID != "import-2" {
		t.Fatalf("sheet = %+v", sheets[0])
	}
}

func TestCreatePendingLeavesApprovedSheetAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sheet := f.pendingSheet(t)

	if _, err := f.sheets.Approve(ctx, sheet.ID, "Petro"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	created, warning, err := f.sheets.CreatePending(ctx, f.employee, sheet.WeekEnding, "import-2", punch.ReconcileResult{TotalHours: 20})
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if created || warning == "" {
		t.Fatalf("approved sheet should be skipped with a warning, got created=%v warning=%q", created, warning)
	}
}

func TestApproveCreatesPayslipAndLocksSheet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sheet := f.pendingSheet(t)

	result, err := f.sheets.Approve(ctx, sheet.ID, "Petro")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if result.Timesheet.Status != StatusApproved || !result.Timesheet.IsLocked {
		t.Fatalf("sheet = %+v", result.Timesheet)
	}
	if result.Timesheet.Reviewer != "Petro" {
		t.Fatalf("reviewer = %q", result.Timesheet.Reviewer)
	}
	if result.PayslipRef == 0 || result.Timesheet.PayslipRef != result.PayslipRef {
		t.Fatalf("payslip ref = %d / %d", result.PayslipRef, result.Timesheet.PayslipRef)
	}

	payslip, err := f.payroll.Get(ctx, result.PayslipRef)
	if err != nil {
		t.Fatalf("get payslip: %v", err)
	}
	if payslip.EmployeeID != "E1" || payslip.Hours != 39 || payslip.Minutes != 30 {
		t.Fatalf("payslip = %+v", payslip)
	}
	// Monetary add-ons default to zero at approval; they stay editable on the
	// payslip until the deadline.
	if payslip.BonusPay != 0 || payslip.LoanDeduction != 0 || payslip.NewLoan != 0 {
		t.Fatalf("add-ons not zero: %+v", payslip)
	}
	if payslip.NetPay != 1328.01 {
		t.Fatalf("net = %v, want 1328.01", payslip.NetPay)
	}
}

func TestApproveRejectedWhenPayslipExists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sheet := f.pendingSheet(t)

	// A payslip for the same employee-week arrives through the direct path.
	_, err := f.payroll.Create(ctx, payroll.Input{
		EmployeeID: "E1",
		WeekEnding: "2026-03-06",
		Hours:      40,
	})
	if err != nil {
		t.Fatalf("create payslip: %v", err)
	}

	_, err = f.sheets.Approve(ctx, sheet.ID, "Petro")
	if err == nil {
		t.Fatal("expected duplicate payslip rejection")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeDuplicatePayslip {
		t.Fatalf("error = %v", err)
	}

	// The sheet must still be Pending so a corrected retry can proceed.
	after, err := f.sheets.Get(ctx, sheet.ID)
	if err != nil {
		t.Fatalf("get sheet: %v", err)
	}
	if after.Status != StatusPending {
		t.Fatalf("sheet status = %q after failed approval", after.Status)
	}
}

func TestApproveTwiceRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sheet := f.pendingSheet(t)

	if _, err := f.sheets.Approve(ctx, sheet.ID, "Petro"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := f.sheets.Approve(ctx, sheet.ID, "Petro"); err == nil {
		t.Fatal("expected second approval to fail")
	}
}

func TestRejectRecordsReviewerAndReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sheet := f.pendingSheet(t)

	rejected, err := f.sheets.Reject(ctx, sheet.ID, "Petro", "week looks double counted")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != StatusRejected || rejected.Reviewer != "Petro" {
		t.Fatalf("sheet = %+v", rejected)
	}
	if rejected.Notes != "rejected: week looks double counted" {
		t.Fatalf("notes = %q", rejected.Notes)
	}

	payslips, err := f.payroll.List(ctx)
	if err != nil {
		t.Fatalf("list payslips: %v", err)
	}
	if len(payslips) != 0 {
		t.Fatal("rejection must not create a payslip")
	}
}

func TestApproveWithLeaveBackfill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sheet := f.pendingSheet(t)

	missing := []time.Time{
		time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
	result, err := f.sheets.ApproveWithLeaveBackfill(ctx, sheet.ID, "Petro", missing, leave.ReasonSickPaid, "doctor's note on file")
	if err != nil {
		t.Fatalf("approve with leave: %v", err)
	}
	if result.Timesheet.Status != StatusApproved {
		t.Fatalf("sheet = %+v", result.Timesheet)
	}
	if len(result.LeaveErrors) != 0 {
		t.Fatalf("leave errors = %v", result.LeaveErrors)
	}

	records, err := f.leaves.ListForEmployee(ctx, "Thandi M")
	if err != nil {
		t.Fatalf("list leave: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("leave records = %d, want one per missing day", len(records))
	}
	for _, record := range records {
		if record.TotalDays != 1 || record.Reason != leave.ReasonSickPaid {
			t.Fatalf("record = %+v", record)
		}
		if !record.ReturnDate.Equal(record.StartDate.AddDate(0, 0, 1)) {
			t.Fatalf("record should cover exactly one day: %+v", record)
		}
	}
}

func TestApproveWithLeaveBackfillReportsLeaveWhenApprovalFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sheet := f.pendingSheet(t)

	// A payslip for the week already exists, so the approval after the
	// backfill will be rejected.
	if _, err := f.payroll.Create(ctx, payroll.Input{
		EmployeeID: "E1",
		WeekEnding: "2026-03-06",
		Hours:      40,
	}); err != nil {
		t.Fatalf("create payslip: %v", err)
	}

	missing := []time.Time{time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)}
	_, err := f.sheets.ApproveWithLeaveBackfill(ctx, sheet.ID, "Petro", missing, leave.ReasonSickPaid, "")
	if err == nil {
		t.Fatal("expected duplicate payslip rejection")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeDuplicatePayslip {
		t.Fatalf("error = %v", err)
	}

	// The leave records stand; the error must say which days now carry
	// leave so the reviewer does not backfill them twice on retry.
	details, ok := appErr.Details.(map[string]any)
	if !ok {
		t.Fatalf("details = %#v", appErr.Details)
	}
	created, ok := details["leaveRecordsCreated"].([]string)
	if !ok || len(created) != 1 || created[0] != "2026-03-04" {
		t.Fatalf("leaveRecordsCreated = %#v", details["leaveRecordsCreated"])
	}

	records, err := f.leaves.ListForEmployee(ctx, "Thandi M")
	if err != nil {
		t.Fatalf("list leave: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("leave records = %d, want the backfilled day kept", len(records))
	}
}

func TestApproveWithLeaveBackfillRejectsUnknownReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sheet := f.pendingSheet(t)

	_, err := f.sheets.ApproveWithLeaveBackfill(ctx, sheet.ID, "Petro", nil, "Vacation", "")
	if err == nil {
		t.Fatal("expected unknown reason rejection")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Kind != apperror.KindValidation {
		t.Fatalf("error = %v", err)
	}
}

func TestCreateManualDuplicateWeekRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	weekEnding := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)

	if _, err := f.sheets.CreateManual(ctx, "E1", weekEnding, 40, 0, 0, 0, "clock was down"); err != nil {
		t.Fatalf("create manual: %v", err)
	}
	_, err := f.sheets.CreateManual(ctx, "E1", weekEnding, 38, 0, 0, 0, "")
	if err == nil {
		t.Fatal("expected duplicate timesheet rejection")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeDuplicateTimesheet {
		t.Fatalf("error = %v", err)
	}
}

func TestLockPreventsApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sheet := f.pendingSheet(t)

	if _, err := f.sheets.Lock(ctx, sheet.ID); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if _, err := f.sheets.Approve(ctx, sheet.ID, "Petro"); err == nil {
		t.Fatal("expected locked sheet to refuse approval")
	}
}
