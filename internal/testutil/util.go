// Package testutil holds shared helpers for the numeric test suites.
package testutil

import (
	"math"
	"testing"
)

// CheckClose fails t when got and want differ by more than tol, using a
// relative tolerance for values larger than one.
func CheckClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	scale := math.Max(1, math.Abs(want))
	if math.IsNaN(got) || math.Abs(got-want) > tol*scale {
		t.Fatalf("%s: got %v, want %v (tol %g)", name, got, want, tol)
	}
}

// CheckWithin fails t unless lo < v < hi.
func CheckWithin(t *testing.T, name string, v, lo, hi float64) {
	t.Helper()
	if math.IsNaN(v) || v <= lo || v >= hi {
		t.Fatalf("%s: got %v, want within (%g, %g)", name, v, lo, hi)
	}
}

// CheckFinite fails t when v is NaN or infinite.
func CheckFinite(t *testing.T, name string, v float64) {
	t.Helper()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("%s: got non-finite value %v", name, v)
	}
}
