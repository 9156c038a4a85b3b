package solver_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/swaptionlib/solver"
)

func TestBrentFindsCubicRoot(t *testing.T) {
	t.Parallel()

	f := func(x float64) float64 { return x*x*x - 2.0*x - 5.0 }

	root, err := solver.Brent(f, 1.0, 3.0, solver.Options{})
	if err != nil {
		t.Fatalf("Brent error: %v", err)
	}
	// Known root of x^3 - 2x - 5.
	if math.Abs(root-2.0945514815423265) > 1e-7 {
		t.Fatalf("root mismatch: got %.12f", root)
	}
}

func TestBrentLinear(t *testing.T) {
	t.Parallel()

	f := func(x float64) float64 { return 3.0*x - 1.5 }

	root, err := solver.Brent(f, -10.0, 10.0, solver.Options{TolX: 1e-12})
	if err != nil {
		t.Fatalf("Brent error: %v", err)
	}
	if math.Abs(root-0.5) > 1e-10 {
		t.Fatalf("root mismatch: got %.12f", root)
	}
}

func TestBrentNoBracket(t *testing.T) {
	t.Parallel()

	f := func(x float64) float64 { return x*x + 1.0 }

	_, err := solver.Brent(f, -1.0, 1.0, solver.Options{})
	if !errors.Is(err, solver.ErrNoBracket) {
		t.Fatalf("expected ErrNoBracket, got %v", err)
	}
}

func TestBrentRootAtEndpoint(t *testing.T) {
	t.Parallel()

	f := func(x float64) float64 { return x }

	root, err := solver.Brent(f, 0.0, 1.0, solver.Options{})
	if err != nil {
		t.Fatalf("Brent error: %v", err)
	}
	if root != 0.0 {
		t.Fatalf("expected endpoint root 0, got %g", root)
	}
}
