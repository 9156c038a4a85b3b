package main

import (
	"fmt"
	"log"
	"time"

	"github.com/meenmo/swaptionlib/curve"
	"github.com/meenmo/swaptionlib/mc"
	"github.com/meenmo/swaptionlib/swap"
	"github.com/meenmo/swaptionlib/swaption"
)

func main() {
	today := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	disc := curve.NewFlatForward(today, 0.03)

	fmt.Println("================================================================================")
	fmt.Println("EUROPEAN SWAPTION PRICING: BACHELIER vs HULL-WHITE")
	fmt.Println("================================================================================")
	fmt.Println("Reference Date:", today.Format("2006-01-02"))
	fmt.Println("Discount Curve: flat 3.00% (continuous)")
	fmt.Println()

	// ATM 5y x 10y payer swaption, 100bp normal volatility.
	swpt, err := swaption.CreateSwaption(swaption.CreateSwaptionParams{
		ExpiryTenor: "5y",
		SwapTenor:   "10y",
		DiscCurve:   disc,
		ATM:         true,
		Position:    swap.Payer,
		Notional:    10_000_000,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("ATM 5Y x 10Y PAYER SWAPTION | Notional: 10,000,000 | Normal Vol: 100bp")
	fmt.Printf("  Swap Start:   %s\n", swpt.Underlying().EffectiveDate.Format("2006-01-02"))
	fmt.Printf("  Swap End:     %s\n", swpt.Underlying().MaturityDate.Format("2006-01-02"))
	fmt.Printf("  Expiry:       %s\n", swpt.ExpiryDate().Format("2006-01-02"))
	fmt.Printf("  Fair Rate:    %.6f%%\n", swpt.FairRate()*100)
	fmt.Printf("  Annuity:      %.2f\n", swpt.Annuity())

	npv, err := swpt.NPV()
	if err != nil {
		log.Fatal(err)
	}
	npvRaw, err := swpt.NPVRaw()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  NPV:          %.2f\n", npv)
	fmt.Printf("  NPV (raw):    %.2f\n", npvRaw)
	fmt.Printf("  Vega (1bp):   %.2f\n", swpt.Vega())
	fmt.Println()

	// Calibrate Hull-White to the Bachelier price and cross-check.
	model, err := swaption.HullWhiteModelFromSwaption(swpt, swaption.DefaultMeanReversion)
	if err != nil {
		log.Fatal(err)
	}
	res, err := swpt.NPVHullWhite(model, swaption.ResultPriceVol)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("HULL-WHITE (mean reversion %.2f%%)\n", swaption.DefaultMeanReversion*100)
	fmt.Printf("  Calibrated Vol:  %.4f%%\n", model.VolatilityValues()[0]*100)
	fmt.Printf("  NPV:             %.2f\n", res.Price)
	fmt.Printf("  Implied Vol:     %.4f%%\n", res.ImpliedVol*100)
	fmt.Printf("  Price Diff:      %.6f\n", res.Price-npv)
	fmt.Println()

	// Monte-Carlo valuation of the long payoff package.
	payoff, err := swpt.Payoff(model)
	if err != nil {
		log.Fatal(err)
	}
	engine := mc.Engine{Paths: 100_000, Seed: 20260803}
	sim, err := engine.OptionValue(payoff)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("MONTE-CARLO (100,000 paths)")
	fmt.Printf("  Option Value:    %.2f +/- %.2f\n", sim.Value, sim.StdError)
}
