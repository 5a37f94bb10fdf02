package leave

import (
	"context"
	"strconv"
	"strings"
	"time"

	"payclock/internal/domain/payweek"
	"payclock/internal/store"
)

const Table = "Leave"

const (
	colName       = "Employee Name"
	colStartDate  = "Start Date"
	colReturnDate = "Return Date"
	colReason     = "Reason"
	colTotalDays  = "Total Days"
	colNotes      = "Notes"
)

type StoreAPI interface {
	List(ctx context.Context) ([]Record, error)
	ListForEmployee(ctx context.Context, employeeName string) ([]Record, error)
	Append(ctx context.Context, record Record) error
}

type Store struct {
	tab store.Tabular
}

func NewStore(tab store.Tabular) *Store {
	return &Store{tab: tab}
}

func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, fromRow(row))
	}
	return records, nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeName string) ([]Record, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	target := strings.TrimSpace(strings.ToLower(employeeName))
	var records []Record
	for _, record := range all {
		if strings.TrimSpace(strings.ToLower(record.EmployeeName)) == target {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *Store) Append(ctx context.Context, record Record) error {
	_, err := s.tab.AppendRow(ctx, Table, toRow(record))
	return err
}

func fromRow(row store.Row) Record {
	start, _ := time.Parse(payweek.DateLayout, row[colStartDate])
	back, _ := time.Parse(payweek.DateLayout, row[colReturnDate])
	days, _ := strconv.ParseFloat(row[colTotalDays], 64)
	return Record{
		EmployeeName: row[colName],
		StartDate:    start,
		ReturnDate:   back,
		Reason:       row[colReason],
		TotalDays:    days,
		Notes:        row[colNotes],
	}
}

func toRow(record Record) store.Row {
	return store.Row{
		colName:       record.EmployeeName,
		colStartDate:  record.StartDate.Format(payweek.DateLayout),
		colReturnDate: record.ReturnDate.Format(payweek.DateLayout),
		colReason:     record.Reason,
		colTotalDays:  strconv.FormatFloat(record.TotalDays, 'f', -1, 64),
		colNotes:      record.Notes,
	}
}
