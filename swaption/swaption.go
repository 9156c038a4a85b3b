// Package swaption prices European swaptions under the Bachelier normal
// model and a Hull-White short-rate model, and calibrates the latter to the
// former.
package swaption

import (
	"fmt"
	"time"

	"github.com/meenmo/swaptionlib/bachelier"
	"github.com/meenmo/swaptionlib/swap"
	"github.com/meenmo/swaptionlib/utils"
)

// Swaption is a physically-settled European option to enter a swap at the
// expiry date. It is immutable: calibration builds new Hull-White models
// rather than mutating the swaption.
type Swaption struct {
	underlying       *swap.VanillaSwap
	expiryDate       time.Time
	normalVolatility float64
	engine           BachelierEngine
}

// New constructs a swaption on an underlying swap.
//
// The expiry date must not be after the swap's effective date and the
// normal volatility must be positive.
func New(underlying *swap.VanillaSwap, expiryDate time.Time, normalVolatility float64) (*Swaption, error) {
	if underlying == nil {
		return nil, fmt.Errorf("swaption.New: nil underlying swap")
	}
	if expiryDate.After(underlying.EffectiveDate) {
		return nil, fmt.Errorf("swaption.New: expiry %s after swap start %s",
			expiryDate.Format("2006-01-02"), underlying.EffectiveDate.Format("2006-01-02"))
	}
	if normalVolatility <= 0 {
		return nil, fmt.Errorf("swaption.New: non-positive normal volatility %g", normalVolatility)
	}
	engine, err := NewBachelierEngine(underlying.Curve(), normalVolatility)
	if err != nil {
		return nil, fmt.Errorf("swaption.New: %w", err)
	}
	return &Swaption{
		underlying:       underlying,
		expiryDate:       expiryDate,
		normalVolatility: normalVolatility,
		engine:           engine,
	}, nil
}

// Underlying returns the underlying swap.
func (s *Swaption) Underlying() *swap.VanillaSwap { return s.underlying }

// ExpiryDate returns the option expiry date.
func (s *Swaption) ExpiryDate() time.Time { return s.expiryDate }

// NormalVolatility returns the assigned Bachelier volatility.
func (s *Swaption) NormalVolatility() float64 { return s.normalVolatility }

// FairRate returns the underlying swap's fair rate.
func (s *Swaption) FairRate() float64 { return s.underlying.FairRate() }

// Annuity returns the underlying swap's annuity factor.
func (s *Swaption) Annuity() float64 { return s.underlying.Annuity() }

// expiryTime is the ACT/365F year fraction from the curve reference date to expiry.
func (s *Swaption) expiryTime() float64 {
	return utils.Act365(s.underlying.Curve().ReferenceDate(), s.expiryDate)
}

// callOrPut maps the swap direction onto the Bachelier flag for the swap
// rate: a payer swaption is a call on the rate, a receiver swaption a put.
func callOrPut(position swap.Position) float64 {
	if position == swap.Payer {
		return bachelier.Call
	}
	return bachelier.Put
}

// NPV prices the swaption through the attached Bachelier engine.
func (s *Swaption) NPV() (float64, error) {
	return s.engine.NPV(s.underlying, s.expiryDate)
}

// NPVRaw recomputes the Bachelier price directly from the swap economics,
// independent of the engine. It must agree with NPV up to floating-point
// noise; the pair is the facade's internal cross-check.
func (s *Swaption) NPVRaw() (float64, error) {
	price, err := bachelier.Price(
		s.underlying.FixedRate,
		s.underlying.FairRate(),
		s.normalVolatility,
		s.expiryTime(),
		callOrPut(s.underlying.Position),
	)
	if err != nil {
		return 0, fmt.Errorf("NPVRaw: %w", err)
	}
	return s.underlying.Annuity() * price, nil
}

// Vega returns the price sensitivity to a one-basis-point move of the
// normal volatility.
func (s *Swaption) Vega() float64 {
	return s.underlying.Annuity() *
		bachelier.Vega(s.underlying.FixedRate, s.underlying.FairRate(), s.normalVolatility, s.expiryTime()) *
		1.0e-4
}
