package swap

import (
	"fmt"
	"time"

	"github.com/meenmo/swaptionlib/calendar"
	"github.com/meenmo/swaptionlib/utils"
)

// GenerateSchedule builds the payment schedule for a leg, rolling forward
// from the effective date in PayFrequency-month steps.
//
// Start/end dates are adjusted Modified Following on the leg calendar; the
// payment date is the adjusted accrual end. A short final stub is created
// when the maturity is not a whole number of periods away.
func GenerateSchedule(effective, maturity time.Time, leg LegConvention) ([]SchedulePeriod, error) {
	if maturity.Before(effective) {
		return nil, fmt.Errorf("GenerateSchedule: maturity %s before effective %s",
			maturity.Format("2006-01-02"), effective.Format("2006-01-02"))
	}
	if leg.PayFrequency <= 0 {
		return nil, fmt.Errorf("GenerateSchedule: unsupported pay frequency %d", leg.PayFrequency)
	}

	months := int(leg.PayFrequency)
	periods := make([]SchedulePeriod, 0, 64)
	start := effective

	for i := 1; ; i++ {
		next := utils.AddMonth(effective, i*months)
		if next.After(maturity) {
			next = maturity
		}

		accrualStart := calendar.Adjust(leg.Calendar, start)
		accrualEnd := calendar.Adjust(leg.Calendar, next)

		periods = append(periods, SchedulePeriod{
			StartDate: accrualStart,
			EndDate:   accrualEnd,
			PayDate:   accrualEnd,
		})

		if !next.Before(maturity) {
			break
		}
		// Unadjusted date drives the next roll to avoid drift.
		start = next
	}

	return periods, nil
}
