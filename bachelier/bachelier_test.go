package bachelier_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/swaptionlib/bachelier"
)

func TestCallPutParity(t *testing.T) {
	t.Parallel()

	strikes := []float64{0.01, 0.025, 0.03, 0.045}
	const forward, vol, expiry = 0.03, 0.0085, 4.75

	for _, strike := range strikes {
		call, err := bachelier.Price(strike, forward, vol, expiry, bachelier.Call)
		if err != nil {
			t.Fatalf("Price(call) error: %v", err)
		}
		put, err := bachelier.Price(strike, forward, vol, expiry, bachelier.Put)
		if err != nil {
			t.Fatalf("Price(put) error: %v", err)
		}
		if math.Abs(call-put-(forward-strike)) > 1e-14 {
			t.Fatalf("parity violated at strike %g: call=%.16f put=%.16f", strike, call, put)
		}
	}
}

func TestDegenerateIntrinsic(t *testing.T) {
	t.Parallel()

	const strike, forward = 0.02, 0.03

	for _, cp := range []float64{bachelier.Call, bachelier.Put} {
		want := math.Max(cp*(forward-strike), 0)

		got, err := bachelier.Price(strike, forward, 0.0, 5.0, cp)
		if err != nil {
			t.Fatalf("Price(vol=0) error: %v", err)
		}
		if got != want {
			t.Fatalf("vol=0: got %g want %g", got, want)
		}

		got, err = bachelier.Price(strike, forward, 0.01, 0.0, cp)
		if err != nil {
			t.Fatalf("Price(T=0) error: %v", err)
		}
		if got != want {
			t.Fatalf("T=0: got %g want %g", got, want)
		}
	}
}

func TestImpliedVolRoundTrip(t *testing.T) {
	t.Parallel()

	const strike, forward, expiry = 0.025, 0.03, 2.0

	vols := []float64{0.0001, 0.001, 0.005, 0.01, 0.02, 0.05}
	for _, vol := range vols {
		for _, cp := range []float64{bachelier.Call, bachelier.Put} {
			price, err := bachelier.Price(strike, forward, vol, expiry, cp)
			if err != nil {
				t.Fatalf("Price error: %v", err)
			}
			implied, err := bachelier.ImpliedVol(price, strike, forward, expiry, cp)
			if err != nil {
				t.Fatalf("ImpliedVol error at vol=%g cp=%g: %v", vol, cp, err)
			}
			if math.Abs(implied-vol) > 1e-6 {
				t.Fatalf("round trip at vol=%g cp=%g: got %.10f", vol, cp, implied)
			}
		}
	}
}

func TestImpliedVolOutOfBounds(t *testing.T) {
	t.Parallel()

	// Call intrinsic is 0.01; any lower price is not arbitrage-free.
	_, err := bachelier.ImpliedVol(0.005, 0.02, 0.03, 1.0, bachelier.Call)
	if !errors.Is(err, bachelier.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestImpliedVolAtIntrinsicIsZero(t *testing.T) {
	t.Parallel()

	// 0.04 - 0.02 is exactly 0.02 in binary, so the price sits exactly at
	// the intrinsic bound.
	vol, err := bachelier.ImpliedVol(0.02, 0.02, 0.04, 1.0, bachelier.Call)
	if err != nil {
		t.Fatalf("ImpliedVol error: %v", err)
	}
	if vol != 0 {
		t.Fatalf("expected zero vol at intrinsic price, got %g", vol)
	}
}

func TestInvalidFlag(t *testing.T) {
	t.Parallel()

	if _, err := bachelier.Price(0.02, 0.03, 0.01, 1.0, 2.0); err == nil {
		t.Fatal("expected error for call/put flag 2.0")
	}
	if _, err := bachelier.ImpliedVol(0.01, 0.02, 0.03, 1.0, 0.0); err == nil {
		t.Fatal("expected error for call/put flag 0.0")
	}
}

func TestVegaMatchesFiniteDifference(t *testing.T) {
	t.Parallel()

	const strike, forward, vol, expiry = 0.028, 0.03, 0.009, 3.0
	const bump = 1e-6

	up, err := bachelier.Price(strike, forward, vol+bump, expiry, bachelier.Call)
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	down, err := bachelier.Price(strike, forward, vol-bump, expiry, bachelier.Call)
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	fd := (up - down) / (2 * bump)

	vega := bachelier.Vega(strike, forward, vol, expiry)
	if math.Abs(vega-fd) > 1e-6 {
		t.Fatalf("vega mismatch: analytic %.10f fd %.10f", vega, fd)
	}
}
