package catalog

import (
	"fmt"
	"testing"

	"avboq/internal/boq"
)

func speakerRecords(brand string, n int) []boq.ProductRecord {
	out := make([]boq.ProductRecord, n)
	for i := range out {
		out[i] = boq.ProductRecord{
			Brand:       brand,
			Model:       fmt.Sprintf("%s-%03d", brand, i),
			Category:    "Speakers",
			Description: "Ceiling speaker",
		}
	}
	return out
}

func TestIndex_CategoryMatchIsCaseSensitive(t *testing.T) {
	idx := NewIndex([]boq.ProductRecord{
		{Brand: "Poly", Category: "VC system", Model: "X52"},
		{Brand: "Cisco", Category: "VC System", Model: "Room Bar"},
	})
	if got := idx.ByCategories([]string{"VC system"}); len(got) != 1 || got[0].Brand != "Poly" {
		t.Fatalf("expected the exact-case label only, got %+v", got)
	}
	if got := idx.ByCategories([]string{"VC system", "VC System"}); len(got) != 2 {
		t.Fatalf("both label variants requested, got %d", len(got))
	}
}

func TestIndex_BrandMatchIsCaseInsensitive(t *testing.T) {
	idx := NewIndex([]boq.ProductRecord{
		{Brand: "JBL", Category: "Speakers", Model: "Control 26CT"},
	})
	if got := idx.ByBrandCategory("jbl", "Speakers"); len(got) != 1 {
		t.Fatalf("case-insensitive brand lookup failed: %+v", got)
	}
	if got := idx.ByBrandCategory("JBL", "speakers"); len(got) != 0 {
		t.Fatalf("category side stays case-sensitive, got %+v", got)
	}
	if !idx.BrandAvailable("jBl", []string{"Speakers"}) {
		t.Fatalf("BrandAvailable should see JBL speakers")
	}
	if idx.BrandAvailable("JBL", []string{"Microphones"}) {
		t.Fatalf("no JBL microphones exist")
	}
}

func TestIndex_ExcerptGroupCap(t *testing.T) {
	records := append(speakerRecords("Acme", 25), speakerRecords("QSC", 35)...)
	idx := NewIndex(records)
	excerpt := idx.Excerpt([]string{"Speakers"})

	counts := map[string]int{}
	for _, r := range excerpt {
		counts[r.Brand]++
	}
	if counts["Acme"] != groupCap {
		t.Fatalf("Acme capped at %d, want %d", counts["Acme"], groupCap)
	}
	if counts["QSC"] != groupCapTier1 {
		t.Fatalf("tier-1 QSC capped at %d, want %d", counts["QSC"], groupCapTier1)
	}
}

func TestIndex_ExcerptKeepsDiscoveryOrder(t *testing.T) {
	records := speakerRecords("Acme", 25)
	idx := NewIndex(records)
	excerpt := idx.Excerpt([]string{"Speakers"})
	for i, r := range excerpt {
		// First N encountered, no reordering or best-of selection.
		if want := fmt.Sprintf("Acme-%03d", i); r.Model != want {
			t.Fatalf("position %d holds %s, want %s", i, r.Model, want)
		}
	}
}

func TestIndex_BrandCacheReturnsConsistentResults(t *testing.T) {
	idx := NewIndex(speakerRecords("Bose", 3))
	first := idx.ByBrandCategory("bose", "Speakers")
	second := idx.ByBrandCategory("bose", "Speakers")
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("cache changed results: %d then %d", len(first), len(second))
	}
}
