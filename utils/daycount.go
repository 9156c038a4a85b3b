package utils

import (
	"time"
)

// Day count conventions accepted by YearFraction.
const (
	Act360    = "ACT/360"
	Act365F   = "ACT/365F"
	Thirty360 = "30/360"
)

// Act365 returns the ACT/365F year fraction between two dates.
//
// ACT/365F is the time axis used throughout the swaption analytics:
// curve times, option expiry times and bond-option pay times are all
// year fractions from the curve reference date on this basis.
func Act365(start, end time.Time) float64 {
	return Days(start, end) / 365.0
}

// YearFraction computes the year fraction between two dates using the
// specified day count convention. Unknown conventions fall back to ACT/365F.
func YearFraction(start, end time.Time, convention string) float64 {
	switch convention {
	case Act360:
		return Days(start, end) / 360.0
	case Thirty360, "30E/360":
		// 30E/360 ISDA (Eurobond basis): D1 and D2 are capped at 30.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return Act365(start, end)
	}
}
