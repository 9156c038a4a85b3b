package main

import (
	"fmt"
	"log"
	"time"

	"github.com/meenmo/swaptionlib/curve"
	"github.com/meenmo/swaptionlib/swap"
	"github.com/meenmo/swaptionlib/swaption"
)

// Sweeps payer and receiver swaptions across strikes and reports the flat
// Hull-White volatility calibrated to each Bachelier price.
func main() {
	today := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	disc := curve.NewFlatForward(today, 0.03)

	atm, err := swaption.CreateSwaption(swaption.CreateSwaptionParams{
		ExpiryTenor: "5y",
		SwapTenor:   "10y",
		DiscCurve:   disc,
		ATM:         true,
	})
	if err != nil {
		log.Fatal(err)
	}
	fairRate := atm.FairRate()

	fmt.Println("HULL-WHITE CALIBRATION SWEEP | 5Y x 10Y | flat 3% curve | 100bp normal vol")
	fmt.Printf("ATM rate: %.6f%%\n\n", fairRate*100)
	fmt.Println("position  strike      bachelier npv   hw vol (bp)   hw implied vol (bp)")

	for _, position := range []swap.Position{swap.Payer, swap.Receiver} {
		for _, offsetBP := range []float64{-50, -25, 0, 25, 50} {
			strike := fairRate + offsetBP*1e-4
			swpt, err := swaption.CreateSwaption(swaption.CreateSwaptionParams{
				ExpiryTenor: "5y",
				SwapTenor:   "10y",
				DiscCurve:   disc,
				Strike:      strike,
				Position:    position,
			})
			if err != nil {
				log.Fatal(err)
			}
			npv, err := swpt.NPV()
			if err != nil {
				log.Fatal(err)
			}
			model, err := swaption.HullWhiteModelFromSwaption(swpt, swaption.DefaultMeanReversion)
			if err != nil {
				log.Fatal(err)
			}
			res, err := swpt.NPVHullWhite(model, swaption.ResultVol)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%-9s %.4f%%   %.8f      %8.3f      %8.3f\n",
				position, strike*100, npv,
				model.VolatilityValues()[0]*1e4, res.ImpliedVol*1e4)
		}
	}
}
