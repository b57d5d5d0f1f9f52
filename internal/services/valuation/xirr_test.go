package valuation

import (
	"math"
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestSolve_TenPercentOneYear(t *testing.T) {
	// -1000 at day 0, +1100 at day 365 → 10% annualised
	flows := []CashflowPoint{
		{Amount: -1000, Date: date(2024, 1, 1)},
		{Amount: 1100, Date: date(2024, 1, 1).AddDate(0, 0, 365)},
	}

	rate := Solve(flows)
	if rate == nil {
		t.Fatal("Solve() = nil, want ~10%")
	}
	if math.Abs(*rate-10.0) > 0.01 {
		t.Errorf("Solve() = %.4f%%, want 10%% ±0.01", *rate)
	}
}

func TestSolve_Loss(t *testing.T) {
	flows := []CashflowPoint{
		{Amount: -1000, Date: date(2024, 1, 1)},
		{Amount: 800, Date: date(2024, 1, 1).AddDate(0, 0, 365)},
	}

	rate := Solve(flows)
	if rate == nil {
		t.Fatal("Solve() = nil, want ~-20%")
	}
	if math.Abs(*rate-(-20.0)) > 0.05 {
		t.Errorf("Solve() = %.4f%%, want -20%% ±0.05", *rate)
	}
}

func TestSolve_MultipleOutflows(t *testing.T) {
	// Two buys six months apart, valued a year after the first.
	flows := []CashflowPoint{
		{Amount: -1000, Date: date(2024, 1, 1)},
		{Amount: -1000, Date: date(2024, 7, 1)},
		{Amount: 2200, Date: date(2025, 1, 1)},
	}

	rate := Solve(flows)
	if rate == nil {
		t.Fatal("Solve() = nil for conventional series")
	}
	// The second flow is only invested ~half the year, so the
	// annualised rate exceeds the simple 10% aggregate gain.
	if *rate < 10 || *rate > 20 {
		t.Errorf("Solve() = %.4f%%, want between 10%% and 20%%", *rate)
	}
}

func TestSolve_NilForTooFewFlows(t *testing.T) {
	if Solve(nil) != nil {
		t.Error("Solve(nil) should be nil")
	}
	if Solve([]CashflowPoint{{Amount: -1000, Date: date(2024, 1, 1)}}) != nil {
		t.Error("Solve() with one flow should be nil")
	}
}

func TestSolve_NilForAllZeroAmounts(t *testing.T) {
	flows := []CashflowPoint{
		{Amount: 0, Date: date(2024, 1, 1)},
		{Amount: 0, Date: date(2024, 6, 1)},
		{Amount: 0, Date: date(2025, 1, 1)},
	}
	if Solve(flows) != nil {
		t.Error("Solve() with all-zero amounts should be nil")
	}
}

func TestSolve_NilForNonFiniteAmount(t *testing.T) {
	flows := []CashflowPoint{
		{Amount: -1000, Date: date(2024, 1, 1)},
		{Amount: math.NaN(), Date: date(2025, 1, 1)},
	}
	if Solve(flows) != nil {
		t.Error("Solve() with NaN amount should be nil")
	}
}

func TestSolve_NilWhenRootNotBracketed(t *testing.T) {
	// All inflows: NPV is positive for every rate, no root in bounds.
	flows := []CashflowPoint{
		{Amount: 1000, Date: date(2024, 1, 1)},
		{Amount: 1100, Date: date(2025, 1, 1)},
	}
	if Solve(flows) != nil {
		t.Error("Solve() without a sign change should be nil")
	}
}

func TestSolve_OrderInsensitive(t *testing.T) {
	a := []CashflowPoint{
		{Amount: -1000, Date: date(2024, 1, 1)},
		{Amount: 1100, Date: date(2025, 1, 1)},
	}
	b := []CashflowPoint{
		{Amount: 1100, Date: date(2025, 1, 1)},
		{Amount: -1000, Date: date(2024, 1, 1)},
	}

	ra, rb := Solve(a), Solve(b)
	if ra == nil || rb == nil {
		t.Fatal("Solve() returned nil for solvable series")
	}
	if math.Abs(*ra-*rb) > 1e-9 {
		t.Errorf("Solve() depends on input order: %v vs %v", *ra, *rb)
	}
}

func TestSolve_ConcurrentCalls(t *testing.T) {
	flows := []CashflowPoint{
		{Amount: -1000, Date: date(2024, 1, 1)},
		{Amount: 1100, Date: date(2025, 1, 1)},
	}

	done := make(chan *float64, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- Solve(flows) }()
	}
	for i := 0; i < 8; i++ {
		rate := <-done
		if rate == nil || math.Abs(*rate-10.0) > 0.01 {
			t.Errorf("concurrent Solve() = %v, want ~10%%", rate)
		}
	}
}
