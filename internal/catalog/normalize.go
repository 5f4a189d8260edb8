package catalog

import (
	"strings"
	"unicode"

	"avboq/internal/boq"
)

// applyCategorySubstringAliases gates substring-containment remapping of
// category labels. The containment match is computed for diagnostics but
// the remap stays off: whether over-eager containment remapping is wanted
// at all is an unresolved design choice, so exact-match-only is the
// behavior we ship.
const applyCategorySubstringAliases = false

// RawRecord is one vendor row as found in the raw catalog file. Field
// names are heterogeneous across vendors; Model/AwmdbID and
// Price/PriceINR are alternates for the same data.
type RawRecord struct {
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	AwmdbID     string   `json:"awmdb_id"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	PriceINR    *float64 `json:"price_inr"`
	Currency    string   `json:"currency"`
}

// Normalize runs the offline cleaning pass: canonical brands, exact-match
// category aliasing, price-flagging, and first-seen dedupe on the
// normalized brand + model-or-description key. Rows with an empty brand
// after normalization are dropped.
func Normalize(raw []RawRecord, aliases AliasTable) []boq.ProductRecord {
	seen := make(map[string]bool)
	var out []boq.ProductRecord
	for _, r := range raw {
		brand := NormalizeBrand(r.Brand, aliases)
		if brand == "" {
			continue
		}
		rec := boq.ProductRecord{
			Brand:       brand,
			Model:       firstNonEmpty(r.Model, r.AwmdbID),
			Category:    normalizeCategory(r.Category, aliases),
			Description: strings.TrimSpace(r.Description),
		}
		switch {
		case r.Price != nil:
			rec.Price = r.Price
			rec.Currency = firstNonEmpty(strings.ToUpper(strings.TrimSpace(r.Currency)), "USD")
		case r.PriceINR != nil:
			rec.Price = r.PriceINR
			rec.Currency = "INR"
		default:
			// Keep the record; downstream marks the price as estimated.
			rec.PriceEstimateRequired = true
			rec.PriceSource = boq.PriceEstimated
			rec.Currency = firstNonEmpty(strings.ToUpper(strings.TrimSpace(r.Currency)), "USD")
		}
		key := strings.ToLower(rec.Brand) + "\x00" + strings.ToLower(firstNonEmpty(rec.Model, rec.Description))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}

// NormalizeBrand maps a raw brand through the alias table
// (case-insensitive exact match). Unmapped brands get first-letter
// capitalization only; the rest of the string keeps its original casing.
func NormalizeBrand(raw string, aliases AliasTable) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := aliases.Brands[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	runes := []rune(trimmed)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func normalizeCategory(raw string, aliases AliasTable) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	if mapped, ok := aliases.Categories[lower]; ok {
		return mapped
	}
	if sub, ok := categorySubstringAlias(lower, aliases); ok && applyCategorySubstringAliases {
		return sub
	}
	return trimmed
}

// categorySubstringAlias computes the containment match that the exact
// lookup above skips. Its result is only applied when
// applyCategorySubstringAliases is on.
func categorySubstringAlias(lower string, aliases AliasTable) (string, bool) {
	for k, v := range aliases.Categories {
		if strings.Contains(lower, k) {
			return v, true
		}
	}
	return "", false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
