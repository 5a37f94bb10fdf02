package roster

import (
	"context"
	"strconv"
	"strings"

	"payclock/internal/store"
)

const Table = "Employees"

// Column names match the employee register headers exactly.
const (
	colID       = "Employee ID"
	colName     = "Employee Name"
	colClockRef = "Clock Ref"
	colEmployer = "Employer"
	colStatus   = "Employment Status"
	colRate     = "Hourly Rate"
	colActive   = "Active"
)

type StoreAPI interface {
	List(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, employeeID string) (Employee, bool, error)
	FindByName(ctx context.Context, name string) (Employee, bool, error)
	FindByClockRef(ctx context.Context, clockRef string) (Employee, bool, error)
}

type Store struct {
	tab store.Tabular
}

func NewStore(tab store.Tabular) *Store {
	return &Store{tab: tab}
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return nil, err
	}
	employees := make([]Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, fromRow(row))
	}
	return employees, nil
}

func (s *Store) FindByID(ctx context.Context, employeeID string) (Employee, bool, error) {
	return s.find(ctx, func(e Employee) bool { return e.ID == employeeID })
}

func (s *Store) FindByName(ctx context.Context, name string) (Employee, bool, error) {
	target := strings.TrimSpace(strings.ToLower(name))
	return s.find(ctx, func(e Employee) bool {
		return strings.TrimSpace(strings.ToLower(e.Name)) == target
	})
}

func (s *Store) FindByClockRef(ctx context.Context, clockRef string) (Employee, bool, error) {
	target := strings.TrimSpace(clockRef)
	return s.find(ctx, func(e Employee) bool { return e.ClockRef == target })
}

func (s *Store) find(ctx context.Context, match func(Employee) bool) (Employee, bool, error) {
	rows, err := s.tab.ScanRows(ctx, Table)
	if err != nil {
		return Employee{}, false, err
	}
	for _, row := range rows {
		employee := fromRow(row)
		if match(employee) {
			return employee, true, nil
		}
	}
	return Employee{}, false, nil
}

// Append exists for seeding and tests; the register is otherwise read-only
// from this service.
func (s *Store) Append(ctx context.Context, employee Employee) error {
	_, err := s.tab.AppendRow(ctx, Table, toRow(employee))
	return err
}

func fromRow(row store.Row) Employee {
	rate, _ := strconv.ParseFloat(row[colRate], 64)
	active := !strings.EqualFold(row[colActive], "false")
	return Employee{
		ID:               row[colID],
		Name:             row[colName],
		ClockRef:         row[colClockRef],
		Employer:         row[colEmployer],
		EmploymentStatus: row[colStatus],
		HourlyRate:       rate,
		Active:           active,
	}
}

func toRow(employee Employee) store.Row {
	return store.Row{
		colID:       employee.ID,
		colName:     employee.Name,
		colClockRef: employee.ClockRef,
		colEmployer: employee.Employer,
		colStatus:   employee.EmploymentStatus,
		colRate:     strconv.FormatFloat(employee.HourlyRate, 'f', 2, 64),
		colActive:   strconv.FormatBool(employee.Active),
	}
}
