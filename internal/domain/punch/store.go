package punch

import (
	"context"
	"strconv"
	"strings"
	"time"

	"payclock/internal/domain/payweek"
	"payclock/internal/store"
)

const (
	PunchTable = "Raw Punches"
	BatchTable = "Clock Imports"
)

const (
	colClockRef   = "Clock Ref"
	colEmployeeID = "Employee ID"
	colName       = "Person Name"
	colDepartment = "Department"
	colPunchDate  = "Punch Date"
	colTimestamp  = "Punch Time"
	colDevice     = "Device Name"
	colSerial     = "Device Serial"
	colImportID   = "Import ID"
)

const (
	colBatchID    = "Import ID"
	colFileHash   = "File Hash"
	colWeekEnding = "Week Ending"
	colTotal      = "Total Records"
	colMatched    = "Matched Employees"
	colUnmatched  = "Unmatched Refs"
	colStatus     = "Status"
	colReplacedBy = "Replaced By"
	colCreatedAt  = "Created At"
)

type PunchStoreAPI interface {
	AppendAll(ctx context.Context, punches []RawPunch) error
	ListByImport(ctx context.Context, importID string) ([]RawPunch, error)
	ListForEmployeeWeek(ctx context.Context, employeeName string, weekEnding time.Time) ([]RawPunch, error)
}

type PunchStore struct {
	tab store.Tabular
}

func NewPunchStore(tab store.Tabular) *PunchStore {
	return &PunchStore{tab: tab}
}

func (s *PunchStore) AppendAll(ctx context.Context, punches []RawPunch) error {
	for _, p := range punches {
		if _, err := s.tab.AppendRow(ctx, PunchTable, punchToRow(p)); err != nil {
			return err
		}
	}
	return nil
}

func (s *PunchStore) ListByImport(ctx context.Context, importID string) ([]RawPunch, error) {
	return s.list(ctx, func(p RawPunch) bool { return p.ImportID == importID })
}

// ListForEmployeeWeek returns the employee's punches inside the week closing
// at weekEnding, across all imports.
func (s *PunchStore) ListForEmployeeWeek(ctx context.Context, employeeName string, weekEnding time.Time) ([]RawPunch, error) {
	end := payweek.Truncate(weekEnding)
	start := end.AddDate(0, 0, -4)
	target := strings.TrimSpace(strings.ToLower(employeeName))
	return s.list(ctx, func(p RawPunch) bool {
		if strings.TrimSpace(strings.ToLower(p.EmployeeName)) != target {
			return false
		}
		return !p.PunchDate.Before(start) && !p.PunchDate.After(end)
	})
}

func (s *PunchStore) list(ctx context.Context, match func(RawPunch) bool) ([]RawPunch, error) {
	rows, err := s.tab.ScanRows(ctx, PunchTable)
	if err != nil {
		return nil, err
	}
	var punches []RawPunch
	for _, row := range rows {
		p := punchFromRow(row)
		if match(p) {
			punches = append(punches, p)
		}
	}
	return punches, nil
}

type BatchStoreAPI interface {
	List(ctx context.Context) ([]ImportBatch, error)
	FindActiveByWeek(ctx context.Context, weekEnding time.Time) (ImportBatch, int, bool, error)
	Append(ctx context.Context, batch ImportBatch) error
	UpdateAt(ctx context.Context, rowIndex int, batch ImportBatch) error
}

type BatchStore struct {
	tab store.Tabular
}

func NewBatchStore(tab store.Tabular) *BatchStore {
	return &BatchStore{tab: tab}
}

func (s *BatchStore) List(ctx context.Context) ([]ImportBatch, error) {
	rows, err := s.tab.ScanRows(ctx, BatchTable)
	if err != nil {
		return nil, err
	}
	batches := make([]ImportBatch, 0, len(rows))
	for _, row := range rows {
		batches = append(batches, batchFromRow(row))
	}
	return batches, nil
}

func (s *BatchStore) FindActiveByWeek(ctx context.Context, weekEnding time.Time) (ImportBatch, int, bool, error) {
	rows, err := s.tab.ScanRows(ctx, BatchTable)
	if err != nil {
		return ImportBatch{}, 0, false, err
	}
	for i, row := range rows {
		batch := batchFromRow(row)
		if batch.Status == BatchActive && payweek.SameDay(batch.WeekEnding, weekEnding) {
			return batch, i, true, nil
		}
	}
	return ImportBatch{}, 0, false, nil
}

func (s *BatchStore) Append(ctx context.Context, batch ImportBatch) error {
	_, err := s.tab.AppendRow(ctx, BatchTable, batchToRow(batch))
	return err
}

func (s *BatchStore) UpdateAt(ctx context.Context, rowIndex int, batch ImportBatch) error {
	return s.tab.UpdateRow(ctx, BatchTable, rowIndex, batchToRow(batch))
}

func punchFromRow(row store.Row) RawPunch {
	punchDate, _ := time.Parse(payweek.DateLayout, row[colPunchDate])
	timestamp, _ := time.Parse(time.RFC3339, row[colTimestamp])
	return RawPunch{
		ClockRef:     row[colClockRef],
		EmployeeID:   row[colEmployeeID],
		EmployeeName: row[colName],
		Department:   row[colDepartment],
		PunchDate:    punchDate,
		Timestamp:    timestamp,
		DeviceLabel:  row[colDevice],
		DeviceSerial: row[colSerial],
		ImportID:     row[colImportID],
	}
}

func punchToRow(p RawPunch) store.Row {
	return store.Row{
		colClockRef:   p.ClockRef,
		colEmployeeID: p.EmployeeID,
		colName:       p.EmployeeName,
		colDepartment: p.Department,
		colPunchDate:  p.PunchDate.Format(payweek.DateLayout),
		colTimestamp:  p.Timestamp.Format(time.RFC3339),
		colDevice:     p.DeviceLabel,
		colSerial:     p.DeviceSerial,
		colImportID:   p.ImportID,
	}
}

func batchFromRow(row store.Row) ImportBatch {
	weekEnding, _ := time.Parse(payweek.DateLayout, row[colWeekEnding])
	createdAt, _ := time.Parse(time.RFC3339, row[colCreatedAt])
	total, _ := strconv.Atoi(row[colTotal])
	matched, _ := strconv.Atoi(row[colMatched])
	var unmatched []string
	if row[colUnmatched] != "" {
		unmatched = strings.Split(row[colUnmatched], ",")
	}
	return ImportBatch{
		ImportID:         row[colBatchID],
		FileHash:         row[colFileHash],
		WeekEnding:       weekEnding,
		TotalRecords:     total,
		MatchedEmployees: matched,
		UnmatchedRefs:    unmatched,
		Status:           row[colStatus],
		ReplacedBy:       row[colReplacedBy],
		CreatedAt:        createdAt,
	}
}

func batchToRow(batch ImportBatch) store.Row {
	return store.Row{
		colBatchID:    batch.ImportID,
		colFileHash:   batch.FileHash,
		colWeekEnding: batch.WeekEnding.Format(payweek.DateLayout),
		colTotal:      strconv.Itoa(batch.TotalRecords),
		colMatched:    strconv.Itoa(batch.MatchedEmployees),
		colUnmatched:  strings.Join(batch.UnmatchedRefs, ","),
		colStatus:     batch.Status,
		colReplacedBy: batch.ReplacedBy,
		colCreatedAt:  batch.CreatedAt.UTC().Format(time.RFC3339),
	}
}
