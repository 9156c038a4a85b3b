package swap

import (
	"fmt"
	"time"

	"github.com/meenmo/swaptionlib/utils"
)

// VanillaSwapParams defines inputs to construct a fixed-vs-floating swap.
//
// FixedLeg/FloatLeg default to the standard EUR conventions (annual 30/360
// fixed vs semiannual ACT/360 floating) when left zero. ProjCurve defaults
// to the discount curve (single-curve setup).
type VanillaSwapParams struct {
	EffectiveDate time.Time
	MaturityDate  time.Time
	Notional      float64
	FixedRate     float64
	Position      Position

	FixedLeg LegConvention
	FloatLeg LegConvention

	DiscCurve DiscountCurve
	ProjCurve ProjectionCurve
}

// VanillaSwap is an immutable interest rate swap with generated cashflow
// legs. Floating coupons carry curve-implied forward rates fixed at
// construction, so every pricing call sees the same deterministic legs.
type VanillaSwap struct {
	Notional      float64
	FixedRate     float64
	Position      Position
	EffectiveDate time.Time
	MaturityDate  time.Time

	fixedLeg  []FixedCashflow
	floatLeg  []FloatPeriod
	discCurve DiscountCurve
	projCurve ProjectionCurve
}

// NewVanillaSwap validates the parameters, generates both leg schedules and
// fixes the floating rates off the projection curve.
func NewVanillaSwap(params VanillaSwapParams) (*VanillaSwap, error) {
	if params.DiscCurve == nil {
		return nil, fmt.Errorf("NewVanillaSwap: %w", ErrNilCurve)
	}
	if params.Notional == 0 {
		return nil, fmt.Errorf("NewVanillaSwap: Notional is required")
	}
	if params.MaturityDate.Before(params.EffectiveDate) {
		return nil, fmt.Errorf("NewVanillaSwap: maturity %s before effective %s",
			params.MaturityDate.Format("2006-01-02"), params.EffectiveDate.Format("2006-01-02"))
	}
	switch params.Position {
	case Payer, Receiver:
	case "":
		params.Position = Payer
	default:
		return nil, fmt.Errorf("NewVanillaSwap: unknown position %q", params.Position)
	}
	if params.FixedLeg.PayFrequency == 0 {
		params.FixedLeg = EURFixedLeg()
	}
	if params.FloatLeg.PayFrequency == 0 {
		params.FloatLeg = EURFloatLeg()
	}
	if params.ProjCurve == nil {
		params.ProjCurve = params.DiscCurve
	}

	fixedPeriods, err := GenerateSchedule(params.EffectiveDate, params.MaturityDate, params.FixedLeg)
	if err != nil {
		return nil, fmt.Errorf("NewVanillaSwap: fixed leg: %w", err)
	}
	floatPeriods, err := GenerateSchedule(params.EffectiveDate, params.MaturityDate, params.FloatLeg)
	if err != nil {
		return nil, fmt.Errorf("NewVanillaSwap: float leg: %w", err)
	}

	fixedLeg := make([]FixedCashflow, 0, len(fixedPeriods))
	for _, p := range fixedPeriods {
		accrual := utils.YearFraction(p.StartDate, p.EndDate, params.FixedLeg.DayCount)
		fixedLeg = append(fixedLeg, FixedCashflow{
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			PayDate:   p.PayDate,
			Accrual:   accrual,
			Amount:    params.Notional * params.FixedRate * accrual,
		})
	}

	floatLeg := make([]FloatPeriod, 0, len(floatPeriods))
	for _, p := range floatPeriods {
		accrual := utils.YearFraction(p.StartDate, p.EndDate, params.FloatLeg.DayCount)
		rate := 0.0
		if accrual > 0 {
			rate = (params.ProjCurve.DF(p.StartDate)/params.ProjCurve.DF(p.EndDate) - 1.0) / accrual
		}
		floatLeg = append(floatLeg, FloatPeriod{
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			PayDate:   p.PayDate,
			Accrual:   accrual,
			Rate:      rate,
			Nominal:   params.Notional,
		})
	}

	return &VanillaSwap{
		Notional:      params.Notional,
		FixedRate:     params.FixedRate,
		Position:      params.Position,
		EffectiveDate: params.EffectiveDate,
		MaturityDate:  params.MaturityDate,
		fixedLeg:      fixedLeg,
		floatLeg:      floatLeg,
		discCurve:     params.DiscCurve,
		projCurve:     params.ProjCurve,
	}, nil
}

// FixedLeg returns the fixed-leg cashflows.
func (s *VanillaSwap) FixedLeg() []FixedCashflow { return s.fixedLeg }

// FloatLeg returns the floating-leg accrual periods.
func (s *VanillaSwap) FloatLeg() []FloatPeriod { return s.floatLeg }

// Curve returns the swap's discount curve handle.
func (s *VanillaSwap) Curve() DiscountCurve { return s.discCurve }

// ProjCurve returns the curve the floating rates were projected from.
func (s *VanillaSwap) ProjCurve() ProjectionCurve { return s.projCurve }

// Annuity returns the present value of the fixed leg per unit rate,
// scaled by the notional (the currency-space annuity factor).
func (s *VanillaSwap) Annuity() float64 {
	annuity := 0.0
	for _, cf := range s.fixedLeg {
		annuity += cf.Accrual * s.discCurve.DF(cf.PayDate)
	}
	return annuity * s.Notional
}

func (s *VanillaSwap) floatPV() float64 {
	pv := 0.0
	for _, p := range s.floatLeg {
		pv += p.Nominal * p.Accrual * p.Rate * s.discCurve.DF(p.PayDate)
	}
	return pv
}

func (s *VanillaSwap) fixedPV() float64 {
	pv := 0.0
	for _, cf := range s.fixedLeg {
		pv += cf.Amount * s.discCurve.DF(cf.PayDate)
	}
	return pv
}

// FairRate returns the fixed rate at which the swap has zero value.
func (s *VanillaSwap) FairRate() float64 {
	return s.floatPV() / s.Annuity()
}

// NPV returns the swap value from the holder's position: a payer swap is
// long floating, a receiver swap is long fixed.
func (s *VanillaSwap) NPV() float64 {
	if s.Position == Receiver {
		return s.fixedPV() - s.floatPV()
	}
	return s.floatPV() - s.fixedPV()
}
