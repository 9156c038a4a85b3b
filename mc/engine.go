// Package mc values payoff objects by Monte-Carlo simulation of the
// Hull-White state variable.
//
// European payoffs need the state only at their expiry, so the engine draws
// it exactly: under the expiry-forward measure the state is centered
// Gaussian with the model variance y(T), and the expectation is discounted
// with the expiry discount factor.
package mc

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/swaptionlib/payoffs"
)

// DefaultPaths is the path count used when Engine.Paths is zero.
const DefaultPaths = 65536

// Engine is a seeded Monte-Carlo valuation engine. It is cheap to construct;
// use one engine per goroutine.
type Engine struct {
	Paths int
	Seed  uint64
}

// Result holds a simulation estimate and its standard error.
type Result struct {
	Value    float64
	StdError float64
}

func (e Engine) paths() int {
	if e.Paths <= 0 {
		return DefaultPaths
	}
	return e.Paths
}

func (e Engine) simulate(p *payoffs.CouponBond, transform func(float64) float64) (Result, error) {
	if p == nil {
		return Result{}, fmt.Errorf("mc: nil payoff")
	}
	model := p.Model()
	expiry := p.ExpiryTime()
	df := model.Curve().DFTime(expiry)

	variance := model.Variance(expiry)
	if variance == 0 {
		// Deterministic limit: one evaluation at the zero state.
		return Result{Value: df * transform(p.ValueAt(0))}, nil
	}

	dist := distuv.Normal{Mu: 0, Sigma: math.Sqrt(variance), Src: rand.NewSource(e.Seed)}

	n := e.paths()
	sum := 0.0
	sumSq := 0.0
	for i := 0; i < n; i++ {
		v := transform(p.ValueAt(dist.Rand()))
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	sampleVar := (sumSq - float64(n)*mean*mean) / float64(n-1)
	if sampleVar < 0 {
		sampleVar = 0
	}
	return Result{
		Value:    df * mean,
		StdError: df * math.Sqrt(sampleVar/float64(n)),
	}, nil
}

// ForwardValue estimates the present value of receiving the payoff's
// cashflow package unconditionally (no optionality). For a deterministic
// package it reproduces the curve PV, which makes it a useful sanity check.
func (e Engine) ForwardValue(p *payoffs.CouponBond) (Result, error) {
	return e.simulate(p, func(v float64) float64 { return v })
}

// OptionValue estimates the present value of the option to receive the
// package at expiry: the expectation of its positive part.
func (e Engine) OptionValue(p *payoffs.CouponBond) (Result, error) {
	return e.simulate(p, func(v float64) float64 { return math.Max(v, 0) })
}
