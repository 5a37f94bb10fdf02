package roster

import "context"

// Seed fills an empty employee register with a small development crew so the
// import and payroll flows work out of the box. A register that already has
// rows is left untouched.
func Seed(ctx context.Context, s *Store) (int, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	crew := []Employee{
		{ID: "E1", Name: "Thandi Nkosi", ClockRef: "101", Employer: "Acme Farms", EmploymentStatus: StatusPermanent, HourlyRate: 33.96, Active: true},
		{ID: "E2", Name: "Pieter Botha", ClockRef: "102", Employer: "Acme Farms", EmploymentStatus: StatusTemporary, HourlyRate: 35, Active: true},
		{ID: "E3", Name: "Lerato Dlamini", ClockRef: "103", Employer: "Acme Farms", EmploymentStatus: StatusPermanent, HourlyRate: 40, Active: true},
		{ID: "E4", Name: "Johan Visser", ClockRef: "104", Employer: "Acme Farms", EmploymentStatus: StatusPermanent, HourlyRate: 38.5, Active: false},
	}
	for _, employee := range crew {
		if err := s.Append(ctx, employee); err != nil {
			return 0, err
		}
	}
	return len(crew), nil
}
