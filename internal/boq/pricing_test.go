package boq

import "testing"

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.125, 0.13}, // exact binary half rounds up, not to even
		{1.234, 1.23},
		{1.236, 1.24},
		{0, 0},
		{10, 10},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Fatalf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestComputeTotals_GlobalMargin(t *testing.T) {
	it := Item{Quantity: 2, UnitPrice: 100}
	got := ComputeTotals(it, 10, 1)
	if got.UnitPriceFinal != 110 {
		t.Fatalf("unitPriceFinal = %v", got.UnitPriceFinal)
	}
	if got.LineTotal != 220 {
		t.Fatalf("lineTotal = %v", got.LineTotal)
	}
}

func TestComputeTotals_ItemMarginOverridesGlobal(t *testing.T) {
	margin := 25.0
	it := Item{Quantity: 1, UnitPrice: 100, Margin: &margin}
	got := ComputeTotals(it, 10, 1)
	if got.UnitPriceFinal != 125 {
		t.Fatalf("unitPriceFinal = %v, want item margin applied", got.UnitPriceFinal)
	}
}

func TestComputeTotals_NegativeMarginClampsToZero(t *testing.T) {
	neg := -15.0
	it := Item{Quantity: 1, UnitPrice: 100, Margin: &neg}
	got := ComputeTotals(it, 20, 1)
	if got.UnitPriceFinal != 100 {
		t.Fatalf("unitPriceFinal = %v, want 100 (clamped margin)", got.UnitPriceFinal)
	}
}

func TestComputeTotals_CurrencyRateAppliedOnce(t *testing.T) {
	it := Item{Quantity: 3, UnitPrice: 10}
	got := ComputeTotals(it, 0, 83.1234)
	wantUnit := Round2(10 * 83.1234)
	if got.UnitPriceFinal != wantUnit {
		t.Fatalf("unitPriceFinal = %v, want %v", got.UnitPriceFinal, wantUnit)
	}
	if got.LineTotal != Round2(wantUnit*3) {
		t.Fatalf("lineTotal = %v, rounding must not compound", got.LineTotal)
	}
}

func TestRecomputeTotals(t *testing.T) {
	b := Boq{
		{Quantity: 3, UnitPrice: 19.99, TotalPrice: 999}, // oracle arithmetic, ignored
		{Quantity: 1, UnitPrice: 0, TotalPrice: 5},
	}
	out := RecomputeTotals(b)
	if out[0].TotalPrice != Round2(3*19.99) {
		t.Fatalf("totalPrice = %v", out[0].TotalPrice)
	}
	if out[1].TotalPrice != 0 {
		t.Fatalf("totalPrice = %v, want 0", out[1].TotalPrice)
	}
	if b[0].TotalPrice != 999 {
		t.Fatalf("input mutated: %v", b[0].TotalPrice)
	}
}
