// Package bachelier implements closed-form option pricing under the normal
// (Bachelier) model: price, vega and implied-volatility inversion.
//
// Rates, strikes and volatilities are decimals (0.01 == 1% == 100bp).
package bachelier

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/swaptionlib/solver"
)

// Call/put flags. Payer swaptions are calls on the swap rate.
const (
	Call = 1.0
	Put  = -1.0
)

// ErrOutOfBounds is returned by ImpliedVol when the target price lies
// outside the arbitrage-free bounds for the given strike and forward.
var ErrOutOfBounds = errors.New("price outside arbitrage-free bounds")

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

func validateFlag(callOrPut float64) error {
	if callOrPut != Call && callOrPut != Put {
		return fmt.Errorf("call/put flag must be +1 or -1, got %g", callOrPut)
	}
	return nil
}

// Price returns the undiscounted Bachelier option price on a forward.
//
// vol and expiryTime must be non-negative; callOrPut is +1 (call) or -1
// (put). A zero volatility or zero expiry degenerates to intrinsic value.
func Price(strike, forward, vol, expiryTime, callOrPut float64) (float64, error) {
	if err := validateFlag(callOrPut); err != nil {
		return 0, fmt.Errorf("Price: %w", err)
	}
	if vol < 0 {
		return 0, fmt.Errorf("Price: negative volatility %g", vol)
	}
	if expiryTime < 0 {
		return 0, fmt.Errorf("Price: negative expiry time %g", expiryTime)
	}

	stdDev := vol * math.Sqrt(expiryTime)
	if stdDev == 0 {
		return math.Max(callOrPut*(forward-strike), 0.0), nil
	}

	h := callOrPut * (forward - strike) / stdDev
	return callOrPut*(forward-strike)*stdNormal.CDF(h) + stdDev*stdNormal.Prob(h), nil
}

// Vega returns the derivative of the Bachelier price with respect to
// volatility. Any basis-point scaling is applied by the caller.
func Vega(strike, forward, vol, expiryTime float64) float64 {
	if expiryTime <= 0 {
		return 0
	}
	stdDev := vol * math.Sqrt(expiryTime)
	if stdDev == 0 {
		if forward != strike {
			return 0
		}
		return math.Sqrt(expiryTime) * stdNormal.Prob(0)
	}
	return math.Sqrt(expiryTime) * stdNormal.Prob((forward-strike)/stdDev)
}

const (
	impliedVolTolX      = 1e-10
	impliedVolBracketHi = 1e-4
	bracketExpansions   = 60
)

// ImpliedVol inverts a Bachelier price to a normal volatility.
//
// It returns ErrOutOfBounds when the price is below intrinsic value and
// solver errors when the bounded root search fails to converge.
func ImpliedVol(price, strike, forward, expiryTime, callOrPut float64) (float64, error) {
	if err := validateFlag(callOrPut); err != nil {
		return 0, fmt.Errorf("ImpliedVol: %w", err)
	}
	if expiryTime <= 0 {
		return 0, fmt.Errorf("ImpliedVol: non-positive expiry time %g", expiryTime)
	}

	intrinsic := math.Max(callOrPut*(forward-strike), 0.0)
	if price < intrinsic {
		return 0, fmt.Errorf("ImpliedVol: price %g below intrinsic %g: %w", price, intrinsic, ErrOutOfBounds)
	}
	if price == intrinsic {
		return 0, nil
	}

	objective := func(vol float64) float64 {
		p, _ := Price(strike, forward, vol, expiryTime, callOrPut)
		return p - price
	}

	// Expand the upper bracket until the model price exceeds the target.
	hi := impliedVolBracketHi
	n := 0
	for ; n < bracketExpansions && objective(hi) < 0; n++ {
		hi *= 2.0
	}
	if n == bracketExpansions {
		return 0, fmt.Errorf("ImpliedVol: bracket expansion exhausted at vol %g: %w", hi, solver.ErrNoConvergence)
	}

	vol, err := solver.Brent(objective, 0.0, hi, solver.Options{TolX: impliedVolTolX})
	if err != nil {
		return 0, fmt.Errorf("ImpliedVol: %w", err)
	}
	return vol, nil
}
