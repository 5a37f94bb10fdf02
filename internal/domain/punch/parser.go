package punch

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"payclock/internal/apperror"
	"payclock/internal/domain/payweek"
)

// Header cells are matched by case-insensitive substring, so exports from
// different device firmware revisions parse without remapping.
var headerMatches = map[string]string{
	"clockRef":     "person id",
	"employeeName": "person name",
	"department":   "department",
	"punchTime":    "punch time",
	"deviceLabel":  "device name",
	"deviceSerial": "device serial",
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	time.RFC3339,
}

// ParseExport reads a punch-export file into raw punches, applying the
// configured clock-skew correction to every timestamp. Comma and tab
// separated exports both parse; the delimiter is sniffed from the first
// line. The first row may be a title line; it is detected and skipped when
// it does not resolve the required columns. Parse failures are fatal for
// the whole call.
func ParseExport(r io.Reader, skewHours int) ([]RawPunch, error) {
	buffered := bufio.NewReader(r)
	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1
	if peeked, _ := buffered.Peek(4096); leadingLinesHaveTab(peeked) {
		reader.Comma = '\t'
	}

	header, err := reader.Read()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.KindValidation, apperror.CodeParseFailed, "punch export is empty or unreadable")
	}
	columns := resolveColumns(header)
	if columns == nil {
		// Title line; the real header should follow.
		header, err = reader.Read()
		if err != nil {
			return nil, apperror.Wrap(err, apperror.KindValidation, apperror.CodeParseFailed, "punch export has no header row")
		}
		columns = resolveColumns(header)
	}
	if columns == nil {
		return nil, apperror.New(apperror.KindValidation, apperror.CodeParseFailed,
			"punch export is missing required columns (person id, punch time)")
	}

	skew := time.Duration(skewHours) * time.Hour
	var punches []RawPunch
	line := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperror.Wrap(err, apperror.KindValidation, apperror.CodeParseFailed, "malformed punch export row")
		}
		line++

		get := func(key string) string {
			idx, ok := columns[key]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		clockRef := get("clockRef")
		rawTime := get("punchTime")
		if clockRef == "" && rawTime == "" {
			continue
		}
		timestamp, err := parseTimestamp(rawTime)
		if err != nil {
			return nil, apperror.Newf(apperror.KindValidation, apperror.CodeParseFailed,
				"row %d: unparseable punch time %q", line, rawTime)
		}
		timestamp = timestamp.Add(skew)

		punches = append(punches, RawPunch{
			ClockRef:     clockRef,
			EmployeeName: get("employeeName"),
			Department:   get("department"),
			PunchDate:    payweek.Truncate(timestamp),
			Timestamp:    timestamp,
			DeviceLabel:  get("deviceLabel"),
			DeviceSerial: get("deviceSerial"),
		})
	}

	if len(punches) == 0 {
		return nil, apperror.New(apperror.KindValidation, apperror.CodeParseFailed, "punch export contains no punches")
	}
	return punches, nil
}

// leadingLinesHaveTab looks at the title line, if any, plus the header line.
func leadingLinesHaveTab(data []byte) bool {
	for line := 0; line < 2; line++ {
		end := bytes.IndexByte(data, '\n')
		if end < 0 {
			end = len(data)
		}
		if bytes.IndexByte(data[:end], '\t') >= 0 {
			return true
		}
		if end == len(data) {
			break
		}
		data = data[end+1:]
	}
	return false
}

func resolveColumns(header []string) map[string]int {
	columns := map[string]int{}
	for i, cell := range header {
		lowered := strings.ToLower(strings.TrimSpace(cell))
		for key, match := range headerMatches {
			if _, taken := columns[key]; !taken && strings.Contains(lowered, match) {
				columns[key] = i
			}
		}
	}
	if _, ok := columns["clockRef"]; !ok {
		return nil
	}
	if _, ok := columns["punchTime"]; !ok {
		return nil
	}
	return columns
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("no known timestamp layout for %q", value)
}

// ContentHash fingerprints a parsed punch set. The hash is order-independent
// so a re-exported file with shuffled rows still deduplicates.
func ContentHash(punches []RawPunch) string {
	lines := make([]string, 0, len(punches))
	for _, p := range punches {
		lines = append(lines, p.ClockRef+"|"+p.Timestamp.Format(time.RFC3339)+"|"+p.DeviceLabel)
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

// DeriveWeekEnding picks the Friday on or after the latest punch date.
func DeriveWeekEnding(punches []RawPunch) time.Time {
	var latest time.Time
	for _, p := range punches {
		if p.PunchDate.After(latest) {
			latest = p.PunchDate
		}
	}
	return payweek.Ending(latest)
}
