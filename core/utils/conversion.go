package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by report files and date columns.
const DateLayout = "2006-01-02"

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(DateLayout)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToDate converts a scanned date column value to a calendar date at UTC midnight.
// Drivers return DATE columns as time.Time, strings or byte slices depending on the
// dialect; string values may carry a time component which is ignored.
func ToDate(val any) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return Date(v), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("nil date value")
		}
		return Date(*v), nil
	case nil:
		return time.Time{}, fmt.Errorf("nil date value")
	default:
		s := strings.TrimSpace(ToString(v))
		if len(s) > len(DateLayout) {
			s = s[:len(DateLayout)]
		}
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date value %q: %w", ToString(v), err)
		}
		return t, nil
	}
}

// Date truncates t to its calendar date in t's own location, returned at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
