package roster

// Employee is master data consumed from the employee register. CRUD on the
// register itself lives outside this service.
type Employee struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ClockRef         string  `json:"clockRef"`
	Employer         string  `json:"employer"`
	EmploymentStatus string  `json:"employmentStatus"`
	HourlyRate       float64 `json:"hourlyRate"`
	Active           bool    `json:"active"`
}

const (
	StatusPermanent = "Permanent"
	StatusTemporary = "Temporary"
)
