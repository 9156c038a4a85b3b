package curve

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meenmo/swaptionlib/utils"
)

// Curve is an immutable discount curve: a reference date plus
// continuously-compounded zero rates on an ACT/365F time axis.
//
// Discount factors between pillars are interpolated log-linearly
// (linear in zeroRate*t), which is the interpolation the bootstrap
// quotes are assumed to be consistent with. Rates beyond the last
// pillar are extrapolated flat.
type Curve struct {
	referenceDate time.Time
	times         []float64 // year fractions from referenceDate, strictly increasing
	zeros         []float64 // decimal, continuous compounding
}

// NewFlatForward creates a curve with a single continuously-compounded
// zero rate applied at every maturity.
func NewFlatForward(referenceDate time.Time, rate float64) *Curve {
	return &Curve{
		referenceDate: referenceDate,
		times:         []float64{1.0},
		zeros:         []float64{rate},
	}
}

// NewZeroCurve creates a curve from pillar dates and decimal zero rates.
// Dates must be after the reference date; inputs are sorted by date.
func NewZeroCurve(referenceDate time.Time, dates []time.Time, zeros []float64) (*Curve, error) {
	if len(dates) == 0 || len(dates) != len(zeros) {
		return nil, fmt.Errorf("NewZeroCurve: need equal, non-zero numbers of dates and zeros (got %d and %d)", len(dates), len(zeros))
	}
	type pillar struct {
		t float64
		z float64
	}
	pillars := make([]pillar, 0, len(dates))
	for i, d := range dates {
		t := utils.Act365(referenceDate, d)
		if t <= 0 {
			return nil, fmt.Errorf("NewZeroCurve: pillar %s not after reference date %s",
				d.Format("2006-01-02"), referenceDate.Format("2006-01-02"))
		}
		pillars = append(pillars, pillar{t: t, z: zeros[i]})
	}
	sort.Slice(pillars, func(i, j int) bool { return pillars[i].t < pillars[j].t })

	c := &Curve{
		referenceDate: referenceDate,
		times:         make([]float64, len(pillars)),
		zeros:         make([]float64, len(pillars)),
	}
	for i, p := range pillars {
		c.times[i] = p.t
		c.zeros[i] = p.z
	}
	return c, nil
}

// NewCurveFromDFs creates a curve from discount factors keyed by date.
// A factor at the reference date (necessarily 1.0) is ignored.
func NewCurveFromDFs(referenceDate time.Time, dfs map[time.Time]float64) (*Curve, error) {
	dates := make([]time.Time, 0, len(dfs))
	zeros := make([]float64, 0, len(dfs))
	for d, df := range dfs {
		t := utils.Act365(referenceDate, d)
		if t <= 0 {
			continue
		}
		if df <= 0 {
			return nil, fmt.Errorf("NewCurveFromDFs: non-positive discount factor %g at %s", df, d.Format("2006-01-02"))
		}
		dates = append(dates, d)
		zeros = append(zeros, -math.Log(df)/t)
	}
	return NewZeroCurve(referenceDate, dates, zeros)
}

// ReferenceDate returns the curve's valuation anchor date.
func (c *Curve) ReferenceDate() time.Time {
	return c.referenceDate
}

// zeroAt interpolates the zero rate at year fraction t (flat extrapolation).
func (c *Curve) zeroAt(t float64) float64 {
	n := len(c.times)
	if n == 1 || t <= c.times[0] {
		return c.zeros[0]
	}
	if t >= c.times[n-1] {
		return c.zeros[n-1]
	}
	i := sort.SearchFloat64s(c.times, t)
	if c.times[i] == t {
		return c.zeros[i]
	}
	// Linear in zeroRate*t between pillars i-1 and i, i.e. log-linear DFs.
	t0, t1 := c.times[i-1], c.times[i]
	rt0, rt1 := c.zeros[i-1]*t0, c.zeros[i]*t1
	rt := rt0 + (rt1-rt0)*(t-t0)/(t1-t0)
	return rt / t
}

// DFTime returns the discount factor at year fraction t from the reference date.
func (c *Curve) DFTime(t float64) float64 {
	if t <= 0 {
		return 1.0
	}
	return math.Exp(-c.zeroAt(t) * t)
}

// DF returns the discount factor at a date.
func (c *Curve) DF(t time.Time) float64 {
	return c.DFTime(utils.Act365(c.referenceDate, t))
}

// ZeroRateAt returns the continuously-compounded decimal zero rate at a date.
func (c *Curve) ZeroRateAt(t time.Time) float64 {
	return c.zeroAt(utils.Act365(c.referenceDate, t))
}
