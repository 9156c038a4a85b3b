// Package payoffs defines derivative payoff objects handed to the
// simulation engine.
package payoffs

import (
	"fmt"

	"github.com/meenmo/swaptionlib/hullwhite"
)

// CouponBond is a package of fixed cashflows at fixed future pay times,
// observed at a single expiry. The swaption facade emits it with cashflows
// sign-adjusted so the holder is always long the package.
type CouponBond struct {
	model      *hullwhite.Model
	expiryTime float64
	payTimes   []float64
	cashFlows  []float64
}

// NewCouponBond validates the pay-time/cashflow pairing and builds the payoff.
func NewCouponBond(model *hullwhite.Model, expiryTime float64, payTimes, cashFlows []float64) (*CouponBond, error) {
	if model == nil {
		return nil, fmt.Errorf("NewCouponBond: nil model")
	}
	if len(payTimes) == 0 || len(payTimes) != len(cashFlows) {
		return nil, fmt.Errorf("NewCouponBond: need equal, non-zero numbers of pay times and cashflows (got %d and %d)",
			len(payTimes), len(cashFlows))
	}
	if expiryTime < 0 {
		return nil, fmt.Errorf("NewCouponBond: negative expiry time %g", expiryTime)
	}
	return &CouponBond{
		model:      model,
		expiryTime: expiryTime,
		payTimes:   append([]float64(nil), payTimes...),
		cashFlows:  append([]float64(nil), cashFlows...),
	}, nil
}

// Model returns the Hull-White model the payoff is written on.
func (p *CouponBond) Model() *hullwhite.Model { return p.model }

// ExpiryTime returns the observation time in years.
func (p *CouponBond) ExpiryTime() float64 { return p.expiryTime }

// PayTimes returns a copy of the cashflow pay times.
func (p *CouponBond) PayTimes() []float64 {
	return append([]float64(nil), p.payTimes...)
}

// CashFlows returns a copy of the signed cashflow amounts.
func (p *CouponBond) CashFlows() []float64 {
	return append([]float64(nil), p.cashFlows...)
}

// ValueAt returns the package value at expiry in model state x: the sum of
// cashflows discounted by the state-dependent zero bonds P(T, t_i, x).
func (p *CouponBond) ValueAt(x float64) float64 {
	v := 0.0
	for i := range p.payTimes {
		v += p.cashFlows[i] * p.model.ZeroBond(p.expiryTime, p.payTimes[i], x)
	}
	return v
}
