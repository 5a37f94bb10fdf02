package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryAppendScan(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	idx, err := m.AppendRow(ctx, "Employees", Row{"Employee Name": "Thandi M"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if idx != 0 {
		t.Fatalf("index = %d, want 0", idx)
	}
	idx, err = m.AppendRow(ctx, "Employees", Row{"Employee Name": "Sipho K"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if idx != 1 {
		t.Fatalf("index = %d, want 1", idx)
	}

	rows, err := m.ScanRows(ctx, "Employees")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 2 || rows[0]["Employee Name"] != "Thandi M" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestMemoryTablesIndependent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.AppendRow(ctx, "Payslips", Row{"Record Number": "1"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, err := m.ScanRows(ctx, "Loan Ledger")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("unexpected rows in a different table: %v", rows)
	}
}

func TestMemoryUpdateRow(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.AppendRow(ctx, "T", Row{"v": "a"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := m.UpdateRow(ctx, "T", 0, Row{"v": "b"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	rows, _ := m.ScanRows(ctx, "T")
	if rows[0]["v"] != "b" {
		t.Fatalf("row = %v", rows[0])
	}

	if err := m.UpdateRow(ctx, "T", 5, Row{"v": "c"}); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}

func TestMemoryDeleteShiftsRows(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, v := range []string{"a", "b", "c"} {
		if _, err := m.AppendRow(ctx, "T", Row{"v": v}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := m.DeleteRow(ctx, "T", 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ := m.ScanRows(ctx, "T")
	if len(rows) != 2 || rows[0]["v"] != "a" || rows[1]["v"] != "c" {
		t.Fatalf("rows = %v", rows)
	}

	if err := m.DeleteRow(ctx, "T", 9); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}

func TestMemoryScanReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.AppendRow(ctx, "T", Row{"v": "a"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, _ := m.ScanRows(ctx, "T")
	rows[0]["v"] = "mutated"

	fresh, _ := m.ScanRows(ctx, "T")
	if fresh[0]["v"] != "a" {
		t.Fatal("scan must return copies, not aliases")
	}
}
