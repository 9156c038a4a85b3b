package swap

import (
	"errors"
	"time"

	"github.com/meenmo/swaptionlib/calendar"
	"github.com/meenmo/swaptionlib/utils"
)

var (
	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")
)

// DiscountCurve provides discount factors for valuation, anchored at a
// reference date. All option expiry and pay times in this library are
// ACT/365F year fractions from that date.
type DiscountCurve interface {
	ReferenceDate() time.Time
	DF(t time.Time) float64
}

// ProjectionCurve provides discount factors used to infer forward rates.
type ProjectionCurve interface {
	DF(t time.Time) float64
}

// Position describes whether the swap pays or receives the fixed leg.
type Position string

const (
	// Payer pays fixed and receives floating.
	Payer Position = "PAYER"
	// Receiver receives fixed and pays floating.
	Receiver Position = "RECEIVER"
)

// Frequency enumerates payment frequencies in months per period.
type Frequency int

const (
	FreqAnnual    Frequency = 12
	FreqSemi      Frequency = 6
	FreqQuarterly Frequency = 3
	FreqMonthly   Frequency = 1
)

// LegConvention captures the leg settings the schedule generator needs.
type LegConvention struct {
	DayCount     string
	PayFrequency Frequency
	Calendar     calendar.CalendarID
}

// EURFixedLeg is the standard EUR fixed-leg convention: annual 30/360.
func EURFixedLeg() LegConvention {
	return LegConvention{
		DayCount:     utils.Thirty360,
		PayFrequency: FreqAnnual,
		Calendar:     calendar.TARGET,
	}
}

// EURFloatLeg is the standard EUR 6M floating-leg convention: semiannual ACT/360.
func EURFloatLeg() LegConvention {
	return LegConvention{
		DayCount:     utils.Act360,
		PayFrequency: FreqSemi,
		Calendar:     calendar.TARGET,
	}
}

// SchedulePeriod is a cashflow period for a single leg.
//
// Dates are business-day adjusted (Modified Following) per the leg calendar.
type SchedulePeriod struct {
	StartDate time.Time
	EndDate   time.Time
	PayDate   time.Time
}

// FixedCashflow is one fixed-leg coupon.
type FixedCashflow struct {
	StartDate time.Time
	EndDate   time.Time
	PayDate   time.Time
	Accrual   float64
	Amount    float64
}

// FloatPeriod is one floating-leg accrual period with its curve-implied rate.
type FloatPeriod struct {
	StartDate time.Time
	EndDate   time.Time
	PayDate   time.Time
	Accrual   float64
	Rate      float64
	Nominal   float64
}
