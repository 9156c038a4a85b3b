package swaption

import (
	"fmt"

	"github.com/meenmo/swaptionlib/bachelier"
	"github.com/meenmo/swaptionlib/hullwhite"
	"github.com/meenmo/swaptionlib/payoffs"
	"github.com/meenmo/swaptionlib/swap"
	"github.com/meenmo/swaptionlib/utils"
)

// BondOptionDetails is the coupon-bond-option representation of a
// physically-settled swaption: inputs to the Hull-White analytic formula.
//
// PayTimes[i] pairs with CashFlows[i]. Strike is 0 by construction: the
// economic strike is embedded in the synthesized cashflows, so it must
// never be reinterpreted as the swap's fixed rate. All times are ACT/365F
// year fractions from the discount curve's reference date.
type BondOptionDetails struct {
	CallOrPut  float64
	Strike     float64
	ExpiryTime float64
	PayTimes   []float64
	CashFlows  []float64
}

// BondOptionDetails derives the equivalent coupon bond option from the
// underlying swap and its discount curve. It is a deterministic function of
// the swap and curve, recomputed on every call.
//
// The synthetic bond is short the floating bond and long the fixed bond:
// the option is a call (+1) for a receiver swap and a put (-1) for a payer.
// Floating coupons are replaced by the curve-implied deterministic amount
// ((1 + accrual*rate) * df(end)/df(start) - 1) * nominal paid at the accrual
// start, which values identically to the real coupon under any future state
// and telescopes against the notional exchange on a single curve.
func (s *Swaption) BondOptionDetails() BondOptionDetails {
	underlying := s.underlying
	curve := underlying.Curve()
	refDate := curve.ReferenceDate()

	cp := bachelier.Call
	if underlying.Position == swap.Payer {
		cp = bachelier.Put
	}

	fixedLeg := underlying.FixedLeg()
	floatLeg := underlying.FloatLeg()

	payTimes := make([]float64, 0, len(floatLeg)+len(fixedLeg)+2)
	cashFlows := make([]float64, 0, len(floatLeg)+len(fixedLeg)+2)

	// Initial notional payment at the first float accrual start.
	payTimes = append(payTimes, utils.Act365(refDate, floatLeg[0].StartDate))
	cashFlows = append(cashFlows, -floatLeg[0].Nominal)

	for _, p := range floatLeg {
		amount := ((1.0+p.Accrual*p.Rate)*curve.DF(p.EndDate)/curve.DF(p.StartDate) - 1.0) * p.Nominal
		payTimes = append(payTimes, utils.Act365(refDate, p.StartDate))
		cashFlows = append(cashFlows, -amount)
	}

	for _, cf := range fixedLeg {
		payTimes = append(payTimes, utils.Act365(refDate, cf.EndDate))
		cashFlows = append(cashFlows, cf.Amount)
	}

	// Terminal notional exchange at the final float accrual end.
	last := floatLeg[len(floatLeg)-1]
	payTimes = append(payTimes, utils.Act365(refDate, last.EndDate))
	cashFlows = append(cashFlows, last.Nominal)

	return BondOptionDetails{
		CallOrPut:  cp,
		Strike:     0.0,
		ExpiryTime: utils.Act365(refDate, s.expiryDate),
		PayTimes:   payTimes,
		CashFlows:  cashFlows,
	}
}

// ResultFlag selects what NPVHullWhite computes.
type ResultFlag string

const (
	// ResultPrice computes the Hull-White price only.
	ResultPrice ResultFlag = "p"
	// ResultVol computes the Bachelier volatility implied by the
	// Hull-White price only.
	ResultVol ResultFlag = "v"
	// ResultPriceVol computes both.
	ResultPriceVol ResultFlag = "pv"
)

// HullWhiteResult carries the outputs selected by a ResultFlag; fields not
// requested are zero.
type HullWhiteResult struct {
	Price      float64
	ImpliedVol float64
}

// NPVHullWhite prices the swaption as a coupon bond option under the given
// Hull-White model and, if requested, inverts the price to an implied
// Bachelier volatility.
//
// The inversion negates the bond option's call/put flag: the bond-option
// sign convention (call = receiver) is inverted relative to the swap-rate
// convention (call = payer), and the implied volatility is quoted in the
// latter.
func (s *Swaption) NPVHullWhite(model *hullwhite.Model, flag ResultFlag) (HullWhiteResult, error) {
	switch flag {
	case ResultPrice, ResultVol, ResultPriceVol:
	default:
		return HullWhiteResult{}, fmt.Errorf("NPVHullWhite: unknown result flag %q", flag)
	}

	details := s.BondOptionDetails()
	npv, err := model.CouponBondOption(details.ExpiryTime, details.PayTimes, details.CashFlows, details.Strike, details.CallOrPut)
	if err != nil {
		return HullWhiteResult{}, fmt.Errorf("NPVHullWhite: %w", err)
	}
	if flag == ResultPrice {
		return HullWhiteResult{Price: npv}, nil
	}

	vol, err := bachelier.ImpliedVol(
		npv/s.underlying.Annuity(),
		s.underlying.FixedRate,
		s.underlying.FairRate(),
		details.ExpiryTime,
		-details.CallOrPut,
	)
	if err != nil {
		return HullWhiteResult{}, fmt.Errorf("NPVHullWhite: %w", err)
	}

	if flag == ResultVol {
		return HullWhiteResult{ImpliedVol: vol}, nil
	}
	return HullWhiteResult{Price: npv, ImpliedVol: vol}, nil
}

// Payoff builds the CouponBond payoff for simulation, with cashflows
// sign-adjusted by the call/put flag so the holder is long the package
// regardless of payer/receiver direction.
func (s *Swaption) Payoff(model *hullwhite.Model) (*payoffs.CouponBond, error) {
	details := s.BondOptionDetails()
	adjusted := make([]float64, len(details.CashFlows))
	for i, cf := range details.CashFlows {
		adjusted[i] = details.CallOrPut * cf
	}
	payoff, err := payoffs.NewCouponBond(model, details.ExpiryTime, details.PayTimes, adjusted)
	if err != nil {
		return nil, fmt.Errorf("Payoff: %w", err)
	}
	return payoff, nil
}
