package swaption

import (
	"fmt"

	"github.com/meenmo/swaptionlib/hullwhite"
	"github.com/meenmo/swaptionlib/solver"
)

// Calibration defaults.
const (
	// DefaultMeanReversion is the Hull-White mean reversion used by the
	// cmd drivers when nothing else is specified.
	DefaultMeanReversion = 0.01
	// calibrationTolX is the convergence tolerance on the volatility.
	calibrationTolX = 1e-8
	// Bracket multipliers around the swaption's own normal volatility.
	calibrationBracketLo = 0.1
	calibrationBracketHi = 5.0
)

// HullWhiteModelFromSwaption finds the flat Hull-White volatility (a single
// bucket spanning the swaption expiry) that reproduces the swaption's
// Bachelier price, and returns the calibrated model.
//
// The objective is pure: each evaluation constructs a fresh model. The
// search brackets [0.1, 5.0] times the swaption's normal volatility; a
// missing sign change or an exhausted iteration budget surfaces as a
// solver error.
func HullWhiteModelFromSwaption(s *Swaption, meanReversion float64) (*hullwhite.Model, error) {
	if s == nil {
		return nil, fmt.Errorf("HullWhiteModelFromSwaption: nil swaption")
	}
	curve, ok := s.Underlying().Curve().(hullwhite.YieldCurve)
	if !ok {
		return nil, fmt.Errorf("HullWhiteModelFromSwaption: discount curve %T does not expose year-fraction discounting", s.Underlying().Curve())
	}

	target, err := s.NPV()
	if err != nil {
		return nil, fmt.Errorf("HullWhiteModelFromSwaption: %w", err)
	}
	volTimes := []float64{s.BondOptionDetails().ExpiryTime}

	var evalErr error
	objective := func(sigma float64) float64 {
		model, err := hullwhite.New(curve, meanReversion, volTimes, []float64{sigma})
		if err != nil {
			evalErr = err
			return 0
		}
		res, err := s.NPVHullWhite(model, ResultPrice)
		if err != nil {
			evalErr = err
			return 0
		}
		return res.Price - target
	}

	initial := s.NormalVolatility()
	sigma, err := solver.Brent(objective,
		calibrationBracketLo*initial,
		calibrationBracketHi*initial,
		solver.Options{TolX: calibrationTolX})
	if evalErr != nil {
		return nil, fmt.Errorf("HullWhiteModelFromSwaption: %w", evalErr)
	}
	if err != nil {
		return nil, fmt.Errorf("HullWhiteModelFromSwaption: %w", err)
	}

	return hullwhite.New(curve, meanReversion, volTimes, []float64{sigma})
}
