package loan

import (
	"context"
	"sort"
	"time"

	"payclock/internal/apperror"
	"payclock/internal/money"
)

type Service struct {
	store StoreAPI

	// Now is swappable for tests.
	Now func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, Now: time.Now}
}

// Sync keeps exactly one ledger row per payslip loan movement. Repeated
// calls for the same payslip converge: an existing row (matched by payslip
// link) is overwritten in place keeping its loan id, otherwise a new row is
// appended with loan id max+1. A zero movement is a successful no-op.
func (s *Service) Sync(ctx context.Context, movement Movement) error {
	if movement.LoanDeduction == 0 && movement.NewLoan == 0 {
		return nil
	}

	amount := -money.RoundCents(movement.LoanDeduction)
	txnType := TypeRepayment
	mode := ModeNone
	if movement.NewLoan > 0 {
		amount = money.RoundCents(movement.NewLoan)
		txnType = TypeDisbursement
		mode = movement.DisbursementType
	}

	balanceAfter := money.RoundCents(movement.UpdatedLoanBalance)
	entry := LedgerEntry{
		EmployeeID:       movement.EmployeeID,
		EmployeeName:     movement.EmployeeName,
		Timestamp:        s.Now(),
		TransactionDate:  movement.TransactionDate,
		Amount:           amount,
		TransactionType:  txnType,
		DisbursementMode: mode,
		PayslipLink:      movement.PayslipRecord,
		BalanceBefore:    money.RoundCents(balanceAfter - amount),
		BalanceAfter:     balanceAfter,
		Notes:            movement.Notes,
	}

	existing, rowIndex, found, err := s.store.FindByPayslipLink(ctx, movement.PayslipRecord)
	if err != nil {
		return apperror.Wrap(err, apperror.KindSync, apperror.CodeLedgerSyncFailed, "loan ledger lookup failed")
	}
	if found {
		entry.LoanID = existing.LoanID
		if err := s.store.UpdateAt(ctx, rowIndex, entry); err != nil {
			return apperror.Wrap(err, apperror.KindSync, apperror.CodeLedgerSyncFailed, "loan ledger update failed")
		}
		return nil
	}

	nextID, err := s.nextLoanID(ctx)
	if err != nil {
		return apperror.Wrap(err, apperror.KindSync, apperror.CodeLedgerSyncFailed, "loan ledger scan failed")
	}
	entry.LoanID = nextID
	if err := s.store.Append(ctx, entry); err != nil {
		return apperror.Wrap(err, apperror.KindSync, apperror.CodeLedgerSyncFailed, "loan ledger append failed")
	}
	return nil
}

// RemoveForPayslip drops the ledger entry linked to a deleted payslip, if
// one exists.
func (s *Service) RemoveForPayslip(ctx context.Context, recordNumber int) error {
	_, rowIndex, found, err := s.store.FindByPayslipLink(ctx, recordNumber)
	if err != nil {
		return apperror.Wrap(err, apperror.KindSync, apperror.CodeLedgerSyncFailed, "loan ledger lookup failed")
	}
	if !found {
		return nil
	}
	if err := s.store.DeleteAt(ctx, rowIndex); err != nil {
		return apperror.Wrap(err, apperror.KindSync, apperror.CodeLedgerSyncFailed, "loan ledger delete failed")
	}
	return nil
}

// History returns an employee's ledger entries, oldest first, optionally
// bounded by transaction date.
func (s *Service) History(ctx context.Context, employeeID string, start, end *time.Time) ([]LedgerEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []LedgerEntry
	for _, entry := range entries {
		if entry.EmployeeID != employeeID {
			continue
		}
		if start != nil && entry.TransactionDate.Before(*start) {
			continue
		}
		if end != nil && entry.TransactionDate.After(*end) {
			continue
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].LoanID < out[j].LoanID
		}
		return out[i].TransactionDate.Before(out[j].TransactionDate)
	})
	return out, nil
}

// CurrentBalance returns the balance after the employee's latest ledger
// entry at or before asOf; zero when no entries exist. Entries are ordered
// by transaction date, the same axis History filters on, so a resync of an
// old payslip cannot shadow later weeks.
func (s *Service) CurrentBalance(ctx context.Context, employeeID string, asOf time.Time) (float64, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	var latest *LedgerEntry
	for i := range entries {
		entry := entries[i]
		if entry.EmployeeID != employeeID || entry.TransactionDate.After(asOf) {
			continue
		}
		if latest == nil || entry.TransactionDate.After(latest.TransactionDate) ||
			(entry.TransactionDate.Equal(latest.TransactionDate) && entry.LoanID > latest.LoanID) {
			latest = &entry
		}
	}
	if latest == nil {
		return 0, nil
	}
	return latest.BalanceAfter, nil
}

func (s *Service) nextLoanID(ctx context.Context) (int, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	maxID := 0
	for _, entry := range entries {
		if entry.LoanID > maxID {
			maxID = entry.LoanID
		}
	}
	return maxID + 1, nil
}
