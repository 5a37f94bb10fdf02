package loan

import (
	"context"
	"strconv"
	"time"

	"payclock/internal/domain/payweek"
	"payclock/internal/store"
)

const Table = "Loan Ledger"

const (
	colLoanID        = "Loan ID"
	colEmployeeID    = "Employee ID"
	colEmployeeName  = "Employee Name"
	colTimestamp     = "Timestamp"
	colTxnDate       = "Transaction Date"
	colAmount        = "Amount"
	colTxnType       = "Transaction Type"
	colMode          = "Disbursement Mode"
	colPayslipLink   = "Payslip Link"
	colBalanceBefore = "Balance Before"
	colBalanceAfter  = "Balance After"
	colNotes         = "Notes"
)

type StoreAPI interface {
	List(ctx context.Context) ([]LedgerEntry, error)
	FindByPayslipLink(ctx context.Context, recordNumber int) (LedgerEntry, int, bool, error)
	Append(ctx context.Context, entry LedgerEntry) error
	UpdateAt(ctx context.Context, rowIndex int, entry LedgerEntry) error
	DeleteAt(ctx context.Context, rowIndex int) error
}

type Store struct {
	tab store.Tabular
}

func NewStore(tab store.Tabular) *Store {
	return &Store{tab: tab}
}

func (s *Store) List(ctx context.Context) ([]LedgerEntry, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return nil, err
	}
	entries := make([]LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, fromRow(row))
	}
	return entries, nil
}

// FindByPayslipLink returns the entry and its row index so the caller can
// overwrite it in place.
func (s *Store) FindByPayslipLink(ctx context.Context, recordNumber int) (LedgerEntry, int, bool, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return LedgerEntry{}, 0, false, err
	}
	for i, row := range rows {
		entry := fromRow(row)
		if entry.PayslipLink == recordNumber {
			return entry, i, true, nil
		}
	}
	return LedgerEntry{}, 0, false, nil
}

func (s *Store) Append(ctx context.Context, entry LedgerEntry) error {
	_, err := s.tab.AppendRow(ctx, Table, toRow(entry))
	return err
}

func (s *Store) UpdateAt(ctx context.Context, rowIndex int, entry LedgerEntry) error {
	return s.tab.UpdateRow(ctx, Table, rowIndex, toRow(entry))
}

func (s *Store) DeleteAt(ctx context.Context, rowIndex int) error {
	return s.tab.DeleteRow(ctx, Table, rowIndex)
}

func fromRow(row store.Row) LedgerEntry {
	loanID, _ := strconv.Atoi(row[colLoanID])
	link, _ := strconv.Atoi(row[colPayslipLink])
	amount, _ := strconv.ParseFloat(row[colAmount], 64)
	before, _ := strconv.ParseFloat(row[colBalanceBefore], 64)
	after, _ := strconv.ParseFloat(row[colBalanceAfter], 64)
	timestamp, _ := time.Parse(time.RFC3339, row[colTimestamp])
	txnDate, _ := time.Parse(payweek.DateLayout, row[colTxnDate])
	return LedgerEntry{
		LoanID:           loanID,
		EmployeeID:       row[colEmployeeID],
		EmployeeName:     row[colEmployeeName],
		Timestamp:        timestamp,
		TransactionDate:  txnDate,
		Amount:           amount,
		TransactionType:  row[colTxnType],
		DisbursementMode: row[colMode],
		PayslipLink:      link,
		BalanceBefore:    before,
		BalanceAfter:     after,
		Notes:            row[colNotes],
	}
}

func toRow(entry LedgerEntry) store.Row {
	return store.Row{
		colLoanID:        strconv.Itoa(entry.LoanID),
		colEmployeeID:    entry.EmployeeID,
		colEmployeeName:  entry.EmployeeName,
		colTimestamp:     entry.Timestamp.UTC().Format(time.RFC3339),
		colTxnDate:       entry.TransactionDate.Format(payweek.DateLayout),
		colAmount:        strconv.FormatFloat(entry.Amount, 'f', 2, 64),
		colTxnType:       entry.TransactionType,
		colMode:          entry.DisbursementMode,
		colPayslipLink:   strconv.Itoa(entry.PayslipLink),
		colBalanceBefore: strconv.FormatFloat(entry.BalanceBefore, 'f', 2, 64),
		colBalanceAfter:  strconv.FormatFloat(entry.BalanceAfter, 'f', 2, 64),
		colNotes:         entry.Notes,
	}
}
