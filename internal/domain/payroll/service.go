package payroll

import (
	"context"
	"log"
	"time"

	"payclock/internal/apperror"
	"payclock/internal/config"
	"payclock/internal/domain/loan"
	"payclock/internal/domain/payweek"
	"payclock/internal/domain/roster"
)

// Ledger is the slice of the loan ledger the payroll service drives.
type Ledger interface {
	Sync(ctx context.Context, movement loan.Movement) error
	RemoveForPayslip(ctx context.Context, recordNumber int) error
	CurrentBalance(ctx context.Context, employeeID string, asOf time.Time) (float64, error)
}

type Service struct {
	store  StoreAPI
	roster roster.StoreAPI
	ledger Ledger

	overdraftPolicy string

	// Now is swappable for tests.
	Now func() time.Time
}

func NewService(store StoreAPI, rosterStore roster.StoreAPI, ledger Ledger, overdraftPolicy string) *Service {
	return &Service{
		store:           store,
		roster:          rosterStore,
		ledger:          ledger,
		overdraftPolicy: overdraftPolicy,
		Now:             time.Now,
	}
}

// Create builds a payslip from caller-supplied time and loan fields. The
// money fields are always derived by the calculation engine; at most one
// payslip may exist per employee and week ending, whichever code path
// creates it.
func (s *Service) Create(ctx context.Context, in Input) (Result, error) {
	if err := validateInput(in); err != nil {
		return Result{}, err
	}

	employee, found, err := s.roster.FindByID(ctx, in.EmployeeID)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{}, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound,
			"employee %s not found in roster", in.EmployeeID)
	}

	weekEnding, err := parseWeekEnding(in.WeekEnding)
	if err != nil {
		return Result{}, err
	}

	if existing, exists, err := s.store.FindByEmployeeWeek(ctx, in.EmployeeID, weekEnding); err != nil {
		return Result{}, err
	} else if exists {
		return Result{}, apperror.Newf(apperror.KindDuplicate, apperror.CodeDuplicatePayslip,
			"payslip %d already exists for %s week ending %s",
			existing.RecordNumber, employee.Name, weekEnding.Format(payweek.DateLayout)).
			WithDetails(map[string]any{"recordNumber": existing.RecordNumber})
	}

	now := s.Now()
	balance, err := s.ledger.CurrentBalance(ctx, in.EmployeeID, now)
	if err != nil {
		return Result{}, err
	}

	warnings, err := s.checkOverdraft(in.LoanDeduction, balance)
	if err != nil {
		return Result{}, err
	}

	recordNumber, err := s.store.NextRecordNumber(ctx)
	if err != nil {
		return Result{}, err
	}

	payslip := s.assemble(recordNumber, employee, weekEnding, in, balance)
	payslip.CreatedAt = now
	payslip.UpdatedAt = now

	if err := s.store.Append(ctx, payslip); err != nil {
		return Result{}, err
	}

	if err := s.syncLedger(ctx, payslip); err != nil {
		return Result{Payslip: payslip, Warnings: warnings}, err
	}
	return Result{Payslip: payslip, Warnings: warnings}, nil
}

// Update rewrites an editable payslip and re-derives every computed field.
// The loan balance captured at creation stays fixed; only the movement
// against it changes.
func (s *Service) Update(ctx context.Context, recordNumber int, in Input) (Result, error) {
	if err := validateInput(in); err != nil {
		return Result{}, err
	}

	current, rowIndex, found, err := s.store.FindByRecord(ctx, recordNumber)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{}, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound,
			"payslip %d not found", recordNumber)
	}
	if err := s.checkEditWindow(current); err != nil {
		return Result{}, err
	}

	employee, empFound, err := s.roster.FindByID(ctx, current.EmployeeID)
	if err != nil {
		return Result{}, err
	}
	if !empFound {
		return Result{}, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound,
			"employee %s not found in roster", current.EmployeeID)
	}

	warnings, err := s.checkOverdraft(in.LoanDeduction, current.LoanBalanceAtCreation)
	if err != nil {
		return Result{}, err
	}

	updated := s.assemble(current.RecordNumber, employee, current.WeekEnding, in, current.LoanBalanceAtCreation)
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.Now()

	if err := s.store.UpdateAt(ctx, rowIndex, updated); err != nil {
		return Result{}, err
	}
	if err := s.syncLedger(ctx, updated); err != nil {
		return Result{Payslip: updated, Warnings: warnings}, err
	}
	return Result{Payslip: updated, Warnings: warnings}, nil
}

// UpdateLoan edits only the loan movement of an existing payslip, leaving
// the time fields alone. Paid-to-account and the updated balance are
// re-derived, and the linked ledger entry is rewritten, never duplicated.
func (s *Service) UpdateLoan(ctx context.Context, recordNumber int, in LoanInput) (Result, error) {
	current, _, found, err := s.store.FindByRecord(ctx, recordNumber)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{}, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound,
			"payslip %d not found", recordNumber)
	}

	merged := Input{
		EmployeeID:       current.EmployeeID,
		WeekEnding:       current.WeekEnding.Format(payweek.DateLayout),
		Hours:            current.Hours,
		Minutes:          current.Minutes,
		OvertimeHours:    current.OvertimeHours,
		OvertimeMinutes:  current.OvertimeMinutes,
		LeavePay:         current.LeavePay,
		BonusPay:         current.BonusPay,
		OtherIncome:      current.OtherIncome,
		OtherDeductions:  current.OtherDeductions,
		LoanDeduction:    in.LoanDeduction,
		NewLoan:          in.NewLoan,
		DisbursementType: in.DisbursementType,
	}
	return s.Update(ctx, recordNumber, merged)
}

// Delete removes an editable payslip together with its linked ledger entry.
func (s *Service) Delete(ctx context.Context, recordNumber int) error {
	current, rowIndex, found, err := s.store.FindByRecord(ctx, recordNumber)
	if err != nil {
		return err
	}
	if !found {
		return apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound,
			"payslip %d not found", recordNumber)
	}
	if err := s.checkEditWindow(current); err != nil {
		return err
	}
	if err := s.store.DeleteAt(ctx, rowIndex); err != nil {
		return err
	}
	return s.ledger.RemoveForPayslip(ctx, recordNumber)
}

func (s *Service) Get(ctx context.Context, recordNumber int) (Payslip, error) {
	payslip, _, found, err := s.store.FindByRecord(ctx, recordNumber)
	if err != nil {
		return Payslip{}, err
	}
	if !found {
		return Payslip{}, apperror.Newf(apperror.KindNotFound, apperror.CodeNotFound,
			"payslip %d not found", recordNumber)
	}
	return payslip, nil
}

func (s *Service) List(ctx context.Context) ([]Payslip, error) {
	return s.store.List(ctx)
}

func (s *Service) assemble(recordNumber int, employee roster.Employee, weekEnding time.Time, in Input, balance float64) Payslip {
	disbursement := in.DisbursementType
	if disbursement == "" {
		disbursement = DisbursementSeparate
	}
	result := Calculate(CalcInput{
		Hours:              in.Hours,
		Minutes:            in.Minutes,
		OvertimeHours:      in.OvertimeHours,
		OvertimeMinutes:    in.OvertimeMinutes,
		HourlyRate:         employee.HourlyRate,
		LeavePay:           in.LeavePay,
		BonusPay:           in.BonusPay,
		OtherIncome:        in.OtherIncome,
		OtherDeductions:    in.OtherDeductions,
		EmploymentStatus:   employee.EmploymentStatus,
		LoanDeduction:      in.LoanDeduction,
		NewLoan:            in.NewLoan,
		DisbursementType:   disbursement,
		CurrentLoanBalance: balance,
	})
	return Payslip{
		RecordNumber:          recordNumber,
		EmployeeID:            employee.ID,
		EmployeeName:          employee.Name,
		Employer:              employee.Employer,
		EmploymentStatus:      employee.EmploymentStatus,
		HourlyRate:            employee.HourlyRate,
		WeekEnding:            weekEnding,
		Hours:                 in.Hours,
		Minutes:               in.Minutes,
		OvertimeHours:         in.OvertimeHours,
		OvertimeMinutes:       in.OvertimeMinutes,
		LeavePay:              in.LeavePay,
		BonusPay:              in.BonusPay,
		OtherIncome:           in.OtherIncome,
		OtherDeductions:       in.OtherDeductions,
		StandardTimePay:       result.StandardTimePay,
		OvertimePay:           result.OvertimePay,
		GrossPay:              result.GrossPay,
		UIF:                   result.UIF,
		TotalDeductions:       result.TotalDeductions,
		NetPay:                result.NetPay,
		LoanDeduction:         in.LoanDeduction,
		NewLoan:               in.NewLoan,
		DisbursementType:      disbursement,
		LoanBalanceAtCreation: balance,
		UpdatedLoanBalance:    result.UpdatedLoanBalance,
		PaidToAccount:         result.PaidToAccount,
	}
}

// syncLedger propagates the payslip's loan movement. A failure here is a
// financial inconsistency, not a rejected request: the payslip is already
// persisted, so the error is logged distinctly and surfaced as a sync error.
func (s *Service) syncLedger(ctx context.Context, payslip Payslip) error {
	err := s.ledger.Sync(ctx, loan.Movement{
		PayslipRecord:      payslip.RecordNumber,
		EmployeeID:         payslip.EmployeeID,
		EmployeeName:       payslip.EmployeeName,
		TransactionDate:    payslip.WeekEnding,
		LoanDeduction:      payslip.LoanDeduction,
		NewLoan:            payslip.NewLoan,
		DisbursementType:   payslip.DisbursementType,
		UpdatedLoanBalance: payslip.UpdatedLoanBalance,
	})
	if err != nil {
		log.Printf("LEDGER SYNC FAILED payslip=%d employee=%s: %v", payslip.RecordNumber, payslip.EmployeeID, err)
	}
	return err
}

func (s *Service) checkEditWindow(payslip Payslip) error {
	deadline := payweek.EditDeadline(payslip.WeekEnding)
	if !s.Now().Before(deadline) {
		return apperror.Newf(apperror.KindEditWindow, apperror.CodeEditWindowExpired,
			"payslip %d locked since %s", payslip.RecordNumber, deadline.Format(payweek.DateLayout))
	}
	return nil
}

func (s *Service) checkOverdraft(loanDeduction, balance float64) ([]string, error) {
	if loanDeduction <= balance {
		return nil, nil
	}
	if s.overdraftPolicy == config.OverdraftReject {
		return nil, apperror.Newf(apperror.KindValidation, apperror.CodeLoanOverdraft,
			"loan deduction %.2f exceeds current balance %.2f", loanDeduction, balance)
	}
	return []string{WarningLoanOverdraft}, nil
}

func validateInput(in Input) error {
	switch {
	case in.EmployeeID == "":
		return apperror.New(apperror.KindValidation, apperror.CodeInvalidInput, "employee id is required")
	case in.Hours < 0 || in.OvertimeHours < 0:
		return apperror.New(apperror.KindValidation, apperror.CodeInvalidInput, "hours must not be negative")
	case in.Minutes < 0 || in.Minutes >= 60 || in.OvertimeMinutes < 0 || in.OvertimeMinutes >= 60:
		return apperror.New(apperror.KindValidation, apperror.CodeInvalidInput, "minutes must be in [0,60)")
	case in.LeavePay < 0 || in.BonusPay < 0 || in.OtherIncome < 0 || in.OtherDeductions < 0:
		return apperror.New(apperror.KindValidation, apperror.CodeInvalidInput, "pay amounts must not be negative")
	case in.LoanDeduction < 0 || in.NewLoan < 0:
		return apperror.New(apperror.KindValidation, apperror.CodeInvalidInput, "loan amounts must not be negative")
	}
	switch in.DisbursementType {
	case "", DisbursementSeparate, DisbursementWithSalary, DisbursementRepayment:
	default:
		return apperror.Newf(apperror.KindValidation, apperror.CodeInvalidInput,
			"unknown loan disbursement type %q", in.DisbursementType)
	}
	return nil
}

func parseWeekEnding(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperror.New(apperror.KindValidation, apperror.CodeInvalidInput, "week ending is required")
	}
	parsed, err := time.Parse(payweek.DateLayout, value)
	if err != nil {
		return time.Time{}, apperror.Newf(apperror.KindValidation, apperror.CodeInvalidInput,
			"invalid week ending %q", value)
	}
	return payweek.Ending(parsed), nil
}
