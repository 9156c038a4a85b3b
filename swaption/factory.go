package swaption

import (
	"fmt"

	"github.com/meenmo/swaptionlib/calendar"
	"github.com/meenmo/swaptionlib/swap"
)

// Defaults used by CreateSwaption when the corresponding parameter is zero.
const (
	// DefaultNormalVolatility is 1% (100bp) normal volatility.
	DefaultNormalVolatility = 0.01
	// DefaultNotional prices swaptions per unit notional.
	DefaultNotional = 1.0
	// noticeBusinessDays is the exercise notice period before swap start.
	noticeBusinessDays = 2
)

// CreateSwaptionParams configures the convenience factory.
type CreateSwaptionParams struct {
	// ExpiryTenor and SwapTenor are periods like "5y", "18m".
	ExpiryTenor string
	SwapTenor   string

	DiscCurve swap.DiscountCurve
	ProjCurve swap.ProjectionCurve

	// Strike is the fixed rate; ATM overrides it with the fair rate.
	Strike float64
	ATM    bool

	Position         swap.Position // default Payer
	NormalVolatility float64       // default DefaultNormalVolatility
	Notional         float64       // default DefaultNotional
}

// CreateSwaption builds a standard European swaption:
//
//   - swap start = curve reference date advanced by the expiry tenor,
//     Modified Following on the TARGET calendar
//   - swap end = start advanced by the swap tenor, Modified Following
//   - option expiry = start less a 2-business-day notice period
//   - EUR leg conventions (annual 30/360 fixed vs semiannual ACT/360 float)
//
// With ATM set, the strike is the fair rate of the forward-starting swap.
func CreateSwaption(params CreateSwaptionParams) (*Swaption, error) {
	if params.DiscCurve == nil {
		return nil, fmt.Errorf("CreateSwaption: %w", swap.ErrNilCurve)
	}
	if params.Position == "" {
		params.Position = swap.Payer
	}
	if params.NormalVolatility == 0 {
		params.NormalVolatility = DefaultNormalVolatility
	}
	if params.Notional == 0 {
		params.Notional = DefaultNotional
	}

	today := params.DiscCurve.ReferenceDate()
	startDate, err := calendar.AdvanceTenor(calendar.TARGET, today, params.ExpiryTenor)
	if err != nil {
		return nil, fmt.Errorf("CreateSwaption: expiry tenor: %w", err)
	}
	endDate, err := calendar.AdvanceTenor(calendar.TARGET, startDate, params.SwapTenor)
	if err != nil {
		return nil, fmt.Errorf("CreateSwaption: swap tenor: %w", err)
	}
	expiryDate := calendar.AddBusinessDays(calendar.TARGET, startDate, -noticeBusinessDays)

	swapParams := swap.VanillaSwapParams{
		EffectiveDate: startDate,
		MaturityDate:  endDate,
		Notional:      params.Notional,
		FixedRate:     params.Strike,
		Position:      params.Position,
		DiscCurve:     params.DiscCurve,
		ProjCurve:     params.ProjCurve,
	}

	if params.ATM {
		atmProbe, err := swap.NewVanillaSwap(swapParams)
		if err != nil {
			return nil, fmt.Errorf("CreateSwaption: %w", err)
		}
		swapParams.FixedRate = atmProbe.FairRate()
	}

	underlying, err := swap.NewVanillaSwap(swapParams)
	if err != nil {
		return nil, fmt.Errorf("CreateSwaption: %w", err)
	}
	return New(underlying, expiryDate, params.NormalVolatility)
}
