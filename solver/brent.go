// Package solver provides the bracketed scalar root-finding used by the
// implied-volatility inversion, the Jamshidian critical-state search and the
// Hull-White calibration loop.
package solver

import (
	"errors"
	"math"
)

var (
	// ErrNoBracket is returned when the objective does not change sign
	// across the supplied bracket.
	ErrNoBracket = errors.New("objective has no sign change across bracket")
	// ErrNoConvergence is returned when the iteration budget is exhausted
	// before the bracket shrinks below tolerance.
	ErrNoConvergence = errors.New("root search did not converge")
)

const (
	// DefaultTolX is the convergence tolerance on the independent variable.
	DefaultTolX = 1e-8
	// DefaultMaxIter caps the number of Brent iterations.
	DefaultMaxIter = 100
)

// Options configures a Brent root search. Zero values select the defaults.
type Options struct {
	TolX    float64
	MaxIter int
}

// Brent finds x in [a, b] with f(x) = 0 using Brent's method (inverse
// quadratic interpolation with a bisection fallback). f(a) and f(b) must
// have opposite signs.
func Brent(f func(float64) float64, a, b float64, opts Options) (float64, error) {
	tol := opts.TolX
	if tol <= 0 {
		tol = DefaultTolX
	}
	maxIter := opts.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	fa := f(a)
	fb := f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, ErrNoBracket
	}

	c, fc := a, fa
	d := b - a
	e := d

	for iter := 0; iter < maxIter; iter++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		const eps = 2.220446049250313e-16
		tol1 := 2.0*eps*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation.
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2.0 * xm * s
				q = 1.0 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2.0*xm*q*(q-r) - (b-a)*(r-1.0))
				q = (q - 1.0) * (r - 1.0) * (s - 1.0)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3.0*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2.0*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}

	return 0, ErrNoConvergence
}
