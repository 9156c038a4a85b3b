// Package hullwhite implements a one-factor Hull-White short-rate model with
// a piecewise-constant volatility term structure and analytic zero-bond and
// coupon-bond option pricing (Jamshidian decomposition).
//
// The model is parametrized by the state variable x(t) = r(t) - f(0,t) with
// reconstitution P(t,T,x) = P(0,T)/P(0,t) * exp(-G(t,T)x - G(t,T)^2 y(t)/2),
// where G(t,T) = (1 - exp(-a(T-t)))/a and y(t) is the state variance. Under
// the t-forward measure x(t) is centered Gaussian with variance y(t).
package hullwhite

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/swaptionlib/solver"
)

// YieldCurve is the discounting capability the model requires: discount
// factors on the ACT/365F year-fraction axis from the curve reference date.
type YieldCurve interface {
	DFTime(t float64) float64
}

// Model is an immutable Hull-White model instance.
type Model struct {
	curve         YieldCurve
	meanReversion float64
	volTimes      []float64 // breakpoints, strictly increasing
	volValues     []float64 // sigma on (prev breakpoint, volTimes[i]]; last value extrapolates flat
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// smallest mean reversion treated as exact; below it the a->0 limits apply
const meanReversionFloor = 1e-8

// New validates and constructs a model from a discount curve, a mean
// reversion speed and parallel volatility breakpoint/value slices.
func New(curve YieldCurve, meanReversion float64, volTimes, volValues []float64) (*Model, error) {
	if curve == nil {
		return nil, fmt.Errorf("hullwhite.New: nil curve")
	}
	if len(volTimes) == 0 || len(volTimes) != len(volValues) {
		return nil, fmt.Errorf("hullwhite.New: need equal, non-zero numbers of volatility times and values (got %d and %d)",
			len(volTimes), len(volValues))
	}
	for i, t := range volTimes {
		if t <= 0 {
			return nil, fmt.Errorf("hullwhite.New: non-positive volatility time %g", t)
		}
		if i > 0 && t <= volTimes[i-1] {
			return nil, fmt.Errorf("hullwhite.New: volatility times not increasing at index %d", i)
		}
		if volValues[i] < 0 {
			return nil, fmt.Errorf("hullwhite.New: negative volatility %g at index %d", volValues[i], i)
		}
	}
	m := &Model{
		curve:         curve,
		meanReversion: meanReversion,
		volTimes:      append([]float64(nil), volTimes...),
		volValues:     append([]float64(nil), volValues...),
	}
	return m, nil
}

// MeanReversion returns the mean reversion speed a.
func (m *Model) MeanReversion() float64 { return m.meanReversion }

// VolatilityTimes returns a copy of the volatility breakpoints.
func (m *Model) VolatilityTimes() []float64 {
	return append([]float64(nil), m.volTimes...)
}

// VolatilityValues returns a copy of the volatility levels.
func (m *Model) VolatilityValues() []float64 {
	return append([]float64(nil), m.volValues...)
}

// Curve returns the model's discount curve.
func (m *Model) Curve() YieldCurve { return m.curve }

// Volatility returns the piecewise-constant short-rate volatility at time t.
func (m *Model) Volatility(t float64) float64 {
	for i, bp := range m.volTimes {
		if t <= bp {
			return m.volValues[i]
		}
	}
	return m.volValues[len(m.volValues)-1]
}

// G returns the mean-reversion damped time integral
// G(t,T) = (1 - exp(-a(T-t)))/a, with the a->0 limit T-t.
func (m *Model) G(t, T float64) float64 {
	a := m.meanReversion
	if math.Abs(a) < meanReversionFloor {
		return T - t
	}
	return (1.0 - math.Exp(-a*(T-t))) / a
}

// Variance returns y(t), the variance of the state variable x(t):
// the integral of sigma(u)^2 exp(-2a(t-u)) over [0, t], accumulated in
// closed form across the piecewise-constant volatility intervals.
func (m *Model) Variance(t float64) float64 {
	if t <= 0 {
		return 0
	}
	a := m.meanReversion
	y := 0.0
	u0 := 0.0
	for i := 0; u0 < t; i++ {
		u1 := t
		var sigma float64
		if i < len(m.volTimes) {
			if m.volTimes[i] < t {
				u1 = m.volTimes[i]
			}
			sigma = m.volValues[i]
		} else {
			sigma = m.volValues[len(m.volValues)-1]
			u1 = t
		}
		if u1 > u0 {
			if math.Abs(a) < meanReversionFloor {
				y += sigma * sigma * (u1 - u0)
			} else {
				y += sigma * sigma / (2.0 * a) *
					(math.Exp(-2.0*a*(t-u1)) - math.Exp(-2.0*a*(t-u0)))
			}
			u0 = u1
		}
		if i >= len(m.volTimes) {
			break
		}
	}
	return y
}

// ZeroBond returns the zero-coupon bond price P(t,T) in state x.
func (m *Model) ZeroBond(t, T, x float64) float64 {
	if t == 0 {
		return m.curve.DFTime(T)
	}
	g := m.G(t, T)
	return m.curve.DFTime(T) / m.curve.DFTime(t) *
		math.Exp(-g*x-0.5*g*g*m.Variance(t))
}

// ZeroBondOption prices a European option with expiry T1 and strike K on a
// zero-coupon bond maturing at T2. Zero volatility degenerates to the
// discounted intrinsic value.
func (m *Model) ZeroBondOption(expiryTime, maturityTime, strike, callOrPut float64) float64 {
	p1 := m.curve.DFTime(expiryTime)
	p2 := m.curve.DFTime(maturityTime)
	nu := math.Abs(m.G(expiryTime, maturityTime)) * math.Sqrt(m.Variance(expiryTime))
	if nu == 0 || strike <= 0 {
		return math.Max(callOrPut*(p2-strike*p1), 0.0)
	}
	h := math.Log(p2/(strike*p1))/nu + 0.5*nu
	return callOrPut * (p2*stdNormal.CDF(callOrPut*h) - strike*p1*stdNormal.CDF(callOrPut*(h-nu)))
}

const (
	criticalStateBracket    = 0.5
	criticalStateExpansions = 12
	criticalStateTolX       = 1e-12
)

// CouponBondOption prices a European option on a package of fixed cashflows
// via Jamshidian decomposition: it solves for the critical state x* at which
// the package value equals the strike, then sums zero-bond options struck at
// the critical-state bond prices.
//
// payTimes[i] pairs with cashFlows[i]; callOrPut is +1 (call) or -1 (put).
func (m *Model) CouponBondOption(expiryTime float64, payTimes, cashFlows []float64, strike, callOrPut float64) (float64, error) {
	if callOrPut != 1 && callOrPut != -1 {
		return 0, fmt.Errorf("CouponBondOption: call/put flag must be +1 or -1, got %g", callOrPut)
	}
	if len(payTimes) == 0 || len(payTimes) != len(cashFlows) {
		return 0, fmt.Errorf("CouponBondOption: need equal, non-zero numbers of pay times and cashflows (got %d and %d)",
			len(payTimes), len(cashFlows))
	}
	if expiryTime < 0 {
		return 0, fmt.Errorf("CouponBondOption: negative expiry time %g", expiryTime)
	}

	// Deterministic limit: zero variance at expiry means the package value
	// is known today, so the option collapses to discounted intrinsic.
	if expiryTime == 0 || m.Variance(expiryTime) == 0 {
		pv := 0.0
		for i := range payTimes {
			pv += cashFlows[i] * m.curve.DFTime(payTimes[i])
		}
		return math.Max(callOrPut*(pv-strike*m.curve.DFTime(expiryTime)), 0.0), nil
	}

	bondValue := func(x float64) float64 {
		v := 0.0
		for i := range payTimes {
			v += cashFlows[i] * m.ZeroBond(expiryTime, payTimes[i], x)
		}
		return v
	}

	// Bracket the critical state, widening geometrically if needed.
	lo, hi := -criticalStateBracket, criticalStateBracket
	objective := func(x float64) float64 { return bondValue(x) - strike }
	n := 0
	for ; n < criticalStateExpansions && (objective(lo) > 0) == (objective(hi) > 0); n++ {
		lo *= 2.0
		hi *= 2.0
	}
	if n == criticalStateExpansions {
		return 0, fmt.Errorf("CouponBondOption: critical state search: %w", solver.ErrNoBracket)
	}

	xStar, err := solver.Brent(objective, lo, hi, solver.Options{TolX: criticalStateTolX})
	if err != nil {
		return 0, fmt.Errorf("CouponBondOption: critical state search: %w", err)
	}

	price := 0.0
	for i := range payTimes {
		ki := m.ZeroBond(expiryTime, payTimes[i], xStar)
		price += cashFlows[i] * m.ZeroBondOption(expiryTime, payTimes[i], ki, callOrPut)
	}
	return price, nil
}
