package roster

import (
	"context"
	"testing"

	"payclock/internal/store"
)

func TestSeedFillsEmptyRegister(t *testing.T) {
	s := NewStore(store.NewMemory())
	ctx := context.Background()

	seeded, err := Seed(ctx, s)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if seeded == 0 {
		t.Fatal("empty register was not seeded")
	}

	employees, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(employees) != seeded {
		t.Fatalf("register has %d employees, seed reported %d", len(employees), seeded)
	}
	if _, found, err := s.FindByClockRef(ctx, "101"); err != nil || !found {
		t.Fatalf("seeded clock ref not resolvable: found=%v err=%v", found, err)
	}
}

func TestSeedLeavesPopulatedRegisterAlone(t *testing.T) {
	s := NewStore(store.NewMemory())
	ctx := context.Background()

	existing := Employee{ID: "X1", Name: "Existing Person", ClockRef: "900", EmploymentStatus: StatusPermanent, HourlyRate: 50, Active: true}
	if err := s.Append(ctx, existing); err != nil {
		t.Fatalf("append: %v", err)
	}

	seeded, err := Seed(ctx, s)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if seeded != 0 {
		t.Fatalf("seed added %d rows to a populated register", seeded)
	}
	employees, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(employees) != 1 || employees[0].ID != "X1" {
		t.Fatalf("register changed: %+v", employees)
	}
}
