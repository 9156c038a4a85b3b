package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	TARGET CalendarID = "TARGET"
	USD    CalendarID = "USD"
)

// easterSunday returns Easter Sunday for a year (Gauss computus, Gregorian).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := (19*a + b - b/4 - (b-b/25+1)/3 + 15) % 30
	e := (32 + 2*(b%4) + 2*(c/4) - d - c%4) % 7
	f := d + e - 7*((a+11*d+22*e)/451) + 114
	return time.Date(year, time.Month(f/31), f%31+1, 0, 0, 0, 0, time.UTC)
}

// isTARGETHoliday applies the TARGET2 closing days: New Year, Good Friday,
// Easter Monday, Labour Day, Christmas and Boxing Day.
func isTARGETHoliday(t time.Time) bool {
	m, d := t.Month(), t.Day()
	if (m == time.January && d == 1) ||
		(m == time.May && d == 1) ||
		(m == time.December && (d == 25 || d == 26)) {
		return true
	}
	easter := easterSunday(t.Year())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if day.Equal(easter.AddDate(0, 0, -2)) || day.Equal(easter.AddDate(0, 0, 1)) {
		return true
	}
	return false
}

// nthWeekday returns the n-th given weekday of a month (n = 1 is the first).
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset+7*(n-1))
}

// lastWeekday returns the last given weekday of a month.
func lastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(t.Weekday()) - int(wd) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// observedFixed shifts a fixed-date US holiday to Friday/Monday when it
// falls on a weekend.
func observedFixed(year int, month time.Month, day int) time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, -1)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

// isUSDHoliday applies the US federal holiday schedule with weekend
// observation rules.
func isUSDHoliday(t time.Time) bool {
	y := t.Year()
	day := time.Date(y, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	fixed := []time.Time{
		observedFixed(y, time.January, 1),
		observedFixed(y, time.June, 19),
		observedFixed(y, time.July, 4),
		observedFixed(y, time.November, 11),
		observedFixed(y, time.December, 25),
	}
	for _, h := range fixed {
		if day.Equal(h) {
			return true
		}
	}
	floating := []time.Time{
		nthWeekday(y, time.January, time.Monday, 3),   // MLK Day
		nthWeekday(y, time.February, time.Monday, 3),  // Presidents' Day
		lastWeekday(y, time.May, time.Monday),         // Memorial Day
		nthWeekday(y, time.September, time.Monday, 1), // Labor Day
		nthWeekday(y, time.October, time.Monday, 2),   // Columbus Day
		nthWeekday(y, time.November, time.Thursday, 4), // Thanksgiving
	}
	for _, h := range floating {
		if day.Equal(h) {
			return true
		}
	}
	return false
}

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case TARGET:
		return isTARGETHoliday(t)
	case USD:
		return isUSDHoliday(t)
	default:
		return false
	}
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AdjustPreceding rolls backward to the prior business day.
func AdjustPreceding(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}
