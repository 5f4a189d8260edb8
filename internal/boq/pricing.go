package boq

import "math"

// Round2 rounds half-up to two decimals. Applied once per value; callers
// must not re-round already rounded numbers through a pipeline of
// multiplications.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Totals is the priced view of one line item.
type Totals struct {
	UnitPriceFinal float64 `json:"unitPriceFinal"`
	LineTotal      float64 `json:"lineTotal"`
}

// ComputeTotals applies margin and currency conversion to one line item.
// The item's own margin wins over globalMargin; negative margins clamp
// to 0. Shared by the on-screen display and the export renderer.
func ComputeTotals(it Item, globalMargin, currencyRate float64) Totals {
	margin := globalMargin
	if it.Margin != nil {
		margin = *it.Margin
	}
	if margin < 0 {
		margin = 0
	}
	unit := Round2(it.UnitPrice * currencyRate * (1 + margin/100))
	return Totals{
		UnitPriceFinal: unit,
		LineTotal:      Round2(unit * float64(it.Quantity)),
	}
}

// RecomputeTotal restores the totalPrice invariant on a single item.
func RecomputeTotal(it Item) Item {
	it.TotalPrice = Round2(float64(it.Quantity) * it.UnitPrice)
	return it
}

// RecomputeTotals restores the totalPrice invariant across a whole BOQ.
func RecomputeTotals(b Boq) Boq {
	out := make(Boq, len(b))
	for i, it := range b {
		out[i] = RecomputeTotal(it)
	}
	return out
}
