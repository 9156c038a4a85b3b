package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTenor converts tenor strings like "2d", "-2d", "3m", "10y" into a
// (years, months, days) triple for date arithmetic.
func ParseTenor(tenor string) (years, months, days int, err error) {
	s := strings.TrimSpace(strings.ToUpper(tenor))
	if len(s) < 2 {
		return 0, 0, 0, fmt.Errorf("ParseTenor: invalid tenor %q", tenor)
	}
	unit := s[len(s)-1]
	n, convErr := strconv.Atoi(s[:len(s)-1])
	if convErr != nil {
		return 0, 0, 0, fmt.Errorf("ParseTenor: invalid tenor %q", tenor)
	}
	switch unit {
	case 'Y':
		return n, 0, 0, nil
	case 'M':
		return 0, n, 0, nil
	case 'W':
		return 0, 0, 7 * n, nil
	case 'D':
		return 0, 0, n, nil
	default:
		return 0, 0, 0, fmt.Errorf("ParseTenor: invalid tenor unit in %q", tenor)
	}
}

// AdvanceTenor adds a tenor period to a date and adjusts the result with
// Modified Following. Pure day tenors (e.g. "2d", "-2d") count business days,
// matching the usual notice-period convention.
func AdvanceTenor(cal CalendarID, t time.Time, tenor string) (time.Time, error) {
	years, months, days, err := ParseTenor(tenor)
	if err != nil {
		return time.Time{}, fmt.Errorf("AdvanceTenor: %w", err)
	}
	if years == 0 && months == 0 {
		return AddBusinessDays(cal, t, days), nil
	}
	return Adjust(cal, t.AddDate(years, months, days)), nil
}
