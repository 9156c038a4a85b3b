package swaption_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/swaptionlib/bachelier"
	"github.com/meenmo/swaptionlib/calendar"
	"github.com/meenmo/swaptionlib/curve"
	"github.com/meenmo/swaptionlib/swap"
	"github.com/meenmo/swaptionlib/swaption"
	"github.com/meenmo/swaptionlib/utils"
)

var refDate = time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

func flatCurve() *curve.Curve {
	return curve.NewFlatForward(refDate, 0.03)
}

func newTestSwaption(t *testing.T, expiryTenor, swapTenor string, strikeOffset float64, position swap.Position) *swaption.Swaption {
	t.Helper()
	crv := flatCurve()
	atm, err := swaption.CreateSwaption(swaption.CreateSwaptionParams{
		ExpiryTenor: expiryTenor,
		SwapTenor:   swapTenor,
		DiscCurve:   crv,
		ATM:         true,
		Position:    position,
	})
	if err != nil {
		t.Fatalf("CreateSwaption (ATM probe) error: %v", err)
	}
	if strikeOffset == 0 {
		return atm
	}
	s, err := swaption.CreateSwaption(swaption.CreateSwaptionParams{
		ExpiryTenor: expiryTenor,
		SwapTenor:   swapTenor,
		DiscCurve:   crv,
		Strike:      atm.Underlying().FixedRate + strikeOffset,
		Position:    position,
	})
	if err != nil {
		t.Fatalf("CreateSwaption error: %v", err)
	}
	return s
}

func TestNPVMatchesRaw(t *testing.T) {
	t.Parallel()

	for _, position := range []swap.Position{swap.Payer, swap.Receiver} {
		for _, offset := range []float64{-0.005, -0.0025, 0, 0.0025, 0.005} {
			s := newTestSwaption(t, "5y", "10y", offset, position)
			npv, err := s.NPV()
			if err != nil {
				t.Fatalf("NPV error (%s, offset %.4f): %v", position, offset, err)
			}
			raw, err := s.NPVRaw()
			if err != nil {
				t.Fatalf("NPVRaw error (%s, offset %.4f): %v", position, offset, err)
			}
			if math.Abs(npv-raw) > 1e-12*s.Annuity() {
				t.Fatalf("NPV and NPVRaw disagree (%s, offset %.4f): %.15f vs %.15f",
					position, offset, npv, raw)
			}
		}
	}
}

func TestCreateSwaptionATM(t *testing.T) {
	t.Parallel()

	s := newTestSwaption(t, "5y", "10y", 0, swap.Payer)
	underlying := s.Underlying()

	if math.Abs(underlying.FixedRate-underlying.FairRate()) > 1e-14 {
		t.Fatalf("ATM strike must equal fair rate: %.12f vs %.12f",
			underlying.FixedRate, underlying.FairRate())
	}
	if !s.ExpiryDate().Before(underlying.EffectiveDate) {
		t.Fatalf("expiry %s must precede swap start %s",
			s.ExpiryDate().Format("2006-01-02"), underlying.EffectiveDate.Format("2006-01-02"))
	}
	npv, err := s.NPV()
	if err != nil {
		t.Fatalf("NPV error: %v", err)
	}
	if npv <= 0 {
		t.Fatalf("ATM swaption must have positive value, got %.10f", npv)
	}
	if s.Vega() <= 0 {
		t.Fatalf("vega must be positive, got %.12f", s.Vega())
	}
}

func TestBondOptionDetails(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		position swap.Position
		wantCP   float64
	}{
		{swap.Payer, bachelier.Put},
		{swap.Receiver, bachelier.Call},
	} {
		s := newTestSwaption(t, "1y", "5y", 0.001, tc.position)
		details := s.BondOptionDetails()

		underlying := s.Underlying()
		fixedLeg := underlying.FixedLeg()
		floatLeg := underlying.FloatLeg()

		// Initial notional, one entry per float period, one per fixed
		// coupon, terminal notional.
		wantLen := 1 + len(floatLeg) + len(fixedLeg) + 1
		if len(details.PayTimes) != wantLen || len(details.CashFlows) != wantLen {
			t.Fatalf("%s: expected %d paired entries, got %d pay times and %d cashflows",
				tc.position, wantLen, len(details.PayTimes), len(details.CashFlows))
		}
		if details.CallOrPut != tc.wantCP {
			t.Fatalf("%s: call/put flag %v, want %v", tc.position, details.CallOrPut, tc.wantCP)
		}
		if details.Strike != 0 {
			t.Fatalf("%s: strike must be zero, got %v", tc.position, details.Strike)
		}
		if details.ExpiryTime <= 0 || details.ExpiryTime >= details.PayTimes[0] {
			t.Fatalf("%s: expiry time %.6f must lie in (0, first pay time %.6f)",
				tc.position, details.ExpiryTime, details.PayTimes[0])
		}
		for i := 1; i < len(details.PayTimes); i++ {
			if details.PayTimes[i] <= 0 {
				t.Fatalf("%s: non-positive pay time at %d", tc.position, i)
			}
		}

		// Curve-implied float amounts vanish on a single curve, so the
		// package total is the notionals (which cancel) plus the fixed
		// coupons.
		sumFixed := 0.0
		for _, cf := range fixedLeg {
			sumFixed += cf.Amount
		}
		sumFlows := 0.0
		for _, cf := range details.CashFlows {
			sumFlows += cf
		}
		if math.Abs(sumFlows-sumFixed) > 1e-8*underlying.Notional {
			t.Fatalf("%s: cashflow total %.12f, want fixed-leg total %.12f",
				tc.position, sumFlows, sumFixed)
		}

		// Discounting the package reproduces the receiver swap value.
		crv := underlying.Curve().(*curve.Curve)
		pv := 0.0
		for i, cf := range details.CashFlows {
			pv += cf * crv.DFTime(details.PayTimes[i])
		}
		receiverNPV := underlying.NPV()
		if tc.position == swap.Payer {
			receiverNPV = -receiverNPV
		}
		if math.Abs(pv-receiverNPV) > 1e-8*underlying.Notional {
			t.Fatalf("%s: package PV %.12f, want receiver swap NPV %.12f",
				tc.position, pv, receiverNPV)
		}
	}
}

func TestBondOptionDetailsCustomLegs(t *testing.T) {
	t.Parallel()

	crv := flatCurve()
	underlying, err := swap.NewVanillaSwap(swap.VanillaSwapParams{
		EffectiveDate: time.Date(2027, 8, 5, 0, 0, 0, 0, time.UTC),
		MaturityDate:  time.Date(2032, 8, 5, 0, 0, 0, 0, time.UTC),
		Notional:      1_000_000,
		FixedRate:     0.032,
		Position:      swap.Payer,
		FixedLeg: swap.LegConvention{
			DayCount:     utils.Thirty360,
			PayFrequency: swap.FreqSemi,
			Calendar:     calendar.TARGET,
		},
		FloatLeg: swap.LegConvention{
			DayCount:     utils.Act360,
			PayFrequency: swap.FreqQuarterly,
			Calendar:     calendar.TARGET,
		},
		DiscCurve: crv,
	})
	if err != nil {
		t.Fatalf("NewVanillaSwap error: %v", err)
	}
	s, err := swaption.New(underlying, time.Date(2027, 8, 3, 0, 0, 0, 0, time.UTC), 0.01)
	if err != nil {
		t.Fatalf("swaption.New error: %v", err)
	}

	details := s.BondOptionDetails()

	// 5y of quarterly float periods and semiannual fixed coupons, plus the
	// two notional exchanges.
	if wantLen := 1 + 20 + 10 + 1; len(details.PayTimes) != wantLen || len(details.CashFlows) != wantLen {
		t.Fatalf("expected %d paired entries, got %d pay times and %d cashflows",
			1+20+10+1, len(details.PayTimes), len(details.CashFlows))
	}
	if details.CallOrPut != bachelier.Put {
		t.Fatalf("payer swaption must map to a put on the bond, got %v", details.CallOrPut)
	}
	if details.CashFlows[0] != -underlying.Notional {
		t.Fatalf("first cashflow must be the negated notional, got %.2f", details.CashFlows[0])
	}
	if last := details.CashFlows[len(details.CashFlows)-1]; last != underlying.Notional {
		t.Fatalf("last cashflow must be the notional, got %.2f", last)
	}

	// Notionals cancel and the single-curve float replacements vanish, so
	// the package totals to the fixed coupons alone.
	sumFixed := 0.0
	for _, cf := range underlying.FixedLeg() {
		sumFixed += cf.Amount
	}
	sumFlows := 0.0
	for _, cf := range details.CashFlows {
		sumFlows += cf
	}
	if math.Abs(sumFlows-sumFixed) > 1e-8*underlying.Notional {
		t.Fatalf("cashflow total %.10f, want fixed-leg total %.10f", sumFlows, sumFixed)
	}
}

func TestCalibrationReproducesBachelierPrice(t *testing.T) {
	t.Parallel()

	for _, position := range []swap.Position{swap.Payer, swap.Receiver} {
		s := newTestSwaption(t, "5y", "10y", 0, position)
		npv, err := s.NPV()
		if err != nil {
			t.Fatalf("NPV error: %v", err)
		}

		model, err := swaption.HullWhiteModelFromSwaption(s, swaption.DefaultMeanReversion)
		if err != nil {
			t.Fatalf("calibration error (%s): %v", position, err)
		}
		res, err := s.NPVHullWhite(model, swaption.ResultPriceVol)
		if err != nil {
			t.Fatalf("NPVHullWhite error (%s): %v", position, err)
		}
		if math.Abs(res.Price-npv) > 1e-6*npv {
			t.Fatalf("%s: calibrated price %.12f does not match Bachelier price %.12f",
				position, res.Price, npv)
		}
		if math.Abs(res.ImpliedVol-s.NormalVolatility()) > 1e-6 {
			t.Fatalf("%s: implied vol %.10f, want %.10f",
				position, res.ImpliedVol, s.NormalVolatility())
		}
	}
}

func TestNPVHullWhiteAwayFromTheMoney(t *testing.T) {
	t.Parallel()

	s := newTestSwaption(t, "5y", "10y", 0, swap.Payer)
	model, err := swaption.HullWhiteModelFromSwaption(s, swaption.DefaultMeanReversion)
	if err != nil {
		t.Fatalf("calibration error: %v", err)
	}

	// Reprice off-market strikes with the ATM-calibrated model: prices
	// stay positive and decrease in strike for a payer.
	prev := math.Inf(1)
	for _, offset := range []float64{-0.005, 0, 0.005} {
		off := newTestSwaption(t, "5y", "10y", offset, swap.Payer)
		res, err := off.NPVHullWhite(model, swaption.ResultPrice)
		if err != nil {
			t.Fatalf("NPVHullWhite error at offset %.4f: %v", offset, err)
		}
		if res.Price <= 0 {
			t.Fatalf("price at offset %.4f must be positive, got %.12f", offset, res.Price)
		}
		if res.Price >= prev {
			t.Fatalf("payer price must decrease in strike: %.12f then %.12f", prev, res.Price)
		}
		prev = res.Price
	}
}

func TestNPVHullWhiteUnknownFlag(t *testing.T) {
	t.Parallel()

	s := newTestSwaption(t, "1y", "5y", 0, swap.Payer)
	model, err := swaption.HullWhiteModelFromSwaption(s, swaption.DefaultMeanReversion)
	if err != nil {
		t.Fatalf("calibration error: %v", err)
	}
	if _, err := s.NPVHullWhite(model, "price"); err == nil {
		t.Fatal("expected error for unknown result flag")
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	crv := flatCurve()
	underlying, err := swap.NewVanillaSwap(swap.VanillaSwapParams{
		EffectiveDate: time.Date(2027, 8, 5, 0, 0, 0, 0, time.UTC),
		MaturityDate:  time.Date(2032, 8, 5, 0, 0, 0, 0, time.UTC),
		Notional:      1.0,
		FixedRate:     0.03,
		DiscCurve:     crv,
	})
	if err != nil {
		t.Fatalf("NewVanillaSwap error: %v", err)
	}

	if _, err := swaption.New(nil, refDate, 0.01); err == nil {
		t.Fatal("expected error for nil underlying")
	}
	late := underlying.EffectiveDate.AddDate(0, 0, 1)
	if _, err := swaption.New(underlying, late, 0.01); err == nil {
		t.Fatal("expected error for expiry after swap start")
	}
	if _, err := swaption.New(underlying, time.Date(2027, 8, 3, 0, 0, 0, 0, time.UTC), 0); err == nil {
		t.Fatal("expected error for non-positive volatility")
	}
}
