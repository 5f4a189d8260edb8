// Package catalog indexes the static parts catalog and runs the offline
// normalizer pass that produces it from raw vendor data.
package catalog

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"avboq/internal/boq"
)

// Per-(category,brand) inclusion caps for the generation excerpt. The cap
// keeps one oversubscribed brand/category pair from crowding everything
// else out of a size-constrained instruction payload.
const (
	groupCap      = 20
	groupCapTier1 = 30
)

// Tier1Brands is the enumerated allowlist granted the higher excerpt cap
// and used as default guidance when no brand preference is declared.
var Tier1Brands = map[string]bool{
	"samsung":         true,
	"lg":              true,
	"sony":            true,
	"shure":           true,
	"sennheiser":      true,
	"biamp":           true,
	"qsc":             true,
	"bose":            true,
	"jbl":             true,
	"crestron":        true,
	"extron":          true,
	"amx":             true,
	"poly":            true,
	"logitech":        true,
	"cisco":           true,
	"kramer":          true,
	"chief":           true,
	"middle atlantic": true,
}

// IsTier1 reports whether brand is on the Tier-1 allowlist.
func IsTier1(brand string) bool {
	return Tier1Brands[strings.ToLower(strings.TrimSpace(brand))]
}

// Index answers category and brand membership queries over an immutable
// record set. Safe for concurrent readers after construction.
type Index struct {
	records []boq.ProductRecord

	// Category lookup is exact and case-sensitive on purpose: the labels
	// are messy vendor strings ("VC system" vs "VC System") and the
	// resolver enumerates the variants instead of normalizing here.
	byCategory map[string][]int

	brandCache *lru.Cache[string, []boq.ProductRecord]
}

// NewIndex builds the index. Records are shared, not copied; callers must
// not mutate them afterwards.
func NewIndex(records []boq.ProductRecord) *Index {
	byCategory := make(map[string][]int)
	for i, r := range records {
		byCategory[r.Category] = append(byCategory[r.Category], i)
	}
	// Brand-availability lookups repeat heavily across sourcing passes;
	// 512 entries comfortably covers one catalog's brand/category pairs.
	cache, _ := lru.New[string, []boq.ProductRecord](512)
	return &Index{records: records, byCategory: byCategory, brandCache: cache}
}

// Len returns the number of indexed records.
func (x *Index) Len() int { return len(x.records) }

// ByCategories returns every record whose category label exactly matches
// one of labels, in discovery order.
func (x *Index) ByCategories(labels []string) []boq.ProductRecord {
	var out []boq.ProductRecord
	for _, label := range labels {
		for _, i := range x.byCategory[label] {
			out = append(out, x.records[i])
		}
	}
	return out
}

// ByBrandCategory returns records matching brand (case-insensitive) within
// one exact category label. Results are cached.
func (x *Index) ByBrandCategory(brand, category string) []boq.ProductRecord {
	key := strings.ToLower(strings.TrimSpace(brand)) + "\x00" + category
	if hit, ok := x.brandCache.Get(key); ok {
		return hit
	}
	var out []boq.ProductRecord
	for _, i := range x.byCategory[category] {
		if strings.EqualFold(x.records[i].Brand, brand) {
			out = append(out, x.records[i])
		}
	}
	x.brandCache.Add(key, out)
	return out
}

// BrandAvailable reports whether brand has at least one record under any
// of the given category labels.
func (x *Index) BrandAvailable(brand string, labels []string) bool {
	for _, label := range labels {
		if len(x.ByBrandCategory(brand, label)) > 0 {
			return true
		}
	}
	return false
}

// Excerpt returns the bounded catalog slice handed to the generation
// step: records under the given labels, grouped by (category, brand) and
// truncated to the per-group cap. Truncation stops appending once the cap
// is hit; it is first-N-encountered, not a best-of selection.
func (x *Index) Excerpt(labels []string) []boq.ProductRecord {
	counts := make(map[string]int)
	var out []boq.ProductRecord
	for _, label := range labels {
		for _, i := range x.byCategory[label] {
			r := x.records[i]
			key := r.Category + "\x00" + strings.ToLower(r.Brand)
			limit := groupCap
			if IsTier1(r.Brand) {
				limit = groupCapTier1
			}
			if counts[key] >= limit {
				continue
			}
			counts[key]++
			out = append(out, r)
		}
	}
	return out
}
