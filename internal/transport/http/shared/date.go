package shared

import "time"

// ParseDate accepts RFC3339 or plain YYYY-MM-DD query values. An empty value
// parses to the zero time so optional parameters need no separate check.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
