package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	Environment          string
	StoreDriver          string
	DatabaseURL          string
	JWTSecret            string
	OperatorEmail        string
	OperatorPasswordHash string
	PayslipDir           string

	// ClockSkewHours is the constant correction applied to device-reported
	// punch times. The value is deployment-specific; it was measured against
	// the physical clock, not derived from a timezone rule.
	ClockSkewHours int

	LunchDeductionMinutes int
	HalfDayThresholdMins  int

	// LoanOverdraftPolicy is "warn" or "reject" for deductions that exceed
	// the employee's current loan balance.
	LoanOverdraftPolicy string

	MaxBodyBytes int64
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:                  getEnv("APP_ADDR", ":8080"),
		Environment:           getEnv("APP_ENV", "development"),
		StoreDriver:           getEnv("STORE_DRIVER", "postgres"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		OperatorEmail:         getEnv("OPERATOR_EMAIL", ""),
		OperatorPasswordHash:  getEnv("OPERATOR_PASSWORD_HASH", ""),
		PayslipDir:            getEnv("PAYSLIP_DIR", "storage/payslips"),
		ClockSkewHours:        getEnvInt("CLOCK_SKEW_HOURS", 0),
		LunchDeductionMinutes: getEnvInt("LUNCH_DEDUCTION_MINUTES", 30),
		HalfDayThresholdMins:  getEnvInt("HALF_DAY_THRESHOLD_MINUTES", 300),
		LoanOverdraftPolicy:   getEnv("LOAN_OVERDRAFT_POLICY", OverdraftWarn),
		MaxBodyBytes:          int64(getEnvInt("MAX_BODY_BYTES", 4194304)),
	}
}

const (
	OverdraftWarn   = "warn"
	OverdraftReject = "reject"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if c.StoreDriver != "memory" && strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required unless STORE_DRIVER=memory")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.OperatorPasswordHash) == "" {
			return fmt.Errorf("OPERATOR_PASSWORD_HASH must be set in production")
		}
	}
	if c.LoanOverdraftPolicy != OverdraftWarn && c.LoanOverdraftPolicy != OverdraftReject {
		return fmt.Errorf("LOAN_OVERDRAFT_POLICY must be %q or %q", OverdraftWarn, OverdraftReject)
	}
	if c.LunchDeductionMinutes < 0 || c.HalfDayThresholdMins < 0 {
		return fmt.Errorf("lunch deduction and half-day threshold must not be negative")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}
