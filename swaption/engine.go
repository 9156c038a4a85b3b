package swaption

import (
	"fmt"
	"time"

	"github.com/meenmo/swaptionlib/bachelier"
	"github.com/meenmo/swaptionlib/swap"
	"github.com/meenmo/swaptionlib/utils"
)

// BachelierEngine prices swaptions as annuity-scaled Bachelier options on
// the swap rate. It derives expiry time, forward and annuity from the swap
// itself, so its result is an independent assembly of the same closed form
// that NPVRaw computes inline.
type BachelierEngine struct {
	curve swap.DiscountCurve
	vol   float64
}

// NewBachelierEngine builds an engine from a discount curve and a normal
// volatility quote.
func NewBachelierEngine(curve swap.DiscountCurve, vol float64) (BachelierEngine, error) {
	if curve == nil {
		return BachelierEngine{}, fmt.Errorf("NewBachelierEngine: %w", swap.ErrNilCurve)
	}
	if vol <= 0 {
		return BachelierEngine{}, fmt.Errorf("NewBachelierEngine: non-positive volatility %g", vol)
	}
	return BachelierEngine{curve: curve, vol: vol}, nil
}

// NPV prices a European swaption on the given swap expiring at expiryDate.
func (e BachelierEngine) NPV(s *swap.VanillaSwap, expiryDate time.Time) (float64, error) {
	T := utils.Act365(e.curve.ReferenceDate(), expiryDate)
	price, err := bachelier.Price(s.FixedRate, s.FairRate(), e.vol, T, callOrPut(s.Position))
	if err != nil {
		return 0, fmt.Errorf("BachelierEngine.NPV: %w", err)
	}
	return s.Annuity() * price, nil
}
