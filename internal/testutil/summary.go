// Package testutil provides shared assertion helpers for tests outside
// package sim (sim/export, cmd). Tests inside package sim cannot import it.
package testutil

import (
	"math"
	"testing"

	"github.com/inference-sim/fuel-sim/sim"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertSummaryConsistent checks the bookkeeping identities of a finished run:
// totals equal the per-pump sums, every routed car is served, lost, waiting
// or in service, and no brand's stock is negative.
func AssertSummaryConsistent(t *testing.T, s *sim.Summary) {
	t.Helper()
	served, lost, routed := 0, 0, 0
	liters := 0.0
	for _, p := range s.Pumps {
		inService := 0
		if p.Busy {
			inService = 1
		}
		if got := p.ServedCars + p.LostCars + p.QueueLen + inService; got != p.Routed {
			t.Errorf("pump %d: served+lost+queued+in-service = %d, routed = %d", p.ID, got, p.Routed)
		}
		served += p.ServedCars
		lost += p.LostCars
		routed += p.Routed
		liters += p.ServedLiters
	}
	if served != s.ServedCars {
		t.Errorf("served cars: pumps sum to %d, summary says %d", served, s.ServedCars)
	}
	if lost != s.LostCars {
		t.Errorf("lost cars: pumps sum to %d, summary says %d", lost, s.LostCars)
	}
	if routed != s.Arrivals {
		t.Errorf("routed cars %d != arrivals %d", routed, s.Arrivals)
	}
	AssertFloat64Equal(t, "served liters", liters, s.ServedLiters, 1e-9)
	for brand, left := range s.Inventory {
		if left < 0 {
			t.Errorf("inventory for %s is negative: %v", brand, left)
		}
	}
	if s.Profit < 0 {
		t.Errorf("profit is negative: %v", s.Profit)
	}
}
