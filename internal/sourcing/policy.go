package sourcing

import (
	"avboq/internal/boq"
	"avboq/internal/catalog"
)

// FallbackGenerateFromBrand marks a directive whose brand has no catalog
// coverage: the item must still be produced, from generated knowledge.
const FallbackGenerateFromBrand = "generate_from_brand"

// Directive is the per-(sub-category, brand) sourcing decision consumed
// by the generation directive builder and by output post-validation.
type Directive struct {
	SubCategory string              `json:"subCategory"`
	Brand       string              `json:"brand"`
	CatalogHits []boq.ProductRecord `json:"catalogHits,omitempty"`

	// MustUseBrand is the brand lock: the declared brand appears in the
	// output for this sub-category no matter what the catalog holds.
	MustUseBrand bool   `json:"mustUseBrand"`
	Fallback     string `json:"fallback,omitempty"`
}

// tier1Defaults are the ordered default brand chains used as generation
// guidance when no preference is declared. Guidance only; these are never
// brand locks.
var tier1Defaults = map[string][]string{
	boq.SubDisplay:      {"Samsung", "LG", "Sony"},
	boq.SubMount:        {"Chief", "Kramer"},
	boq.SubMicrophone:   {"Shure", "Sennheiser", "Biamp"},
	boq.SubDSPAmplifier: {"Biamp", "QSC", "Extron"},
	boq.SubSpeaker:      {"QSC", "JBL", "Bose"},
	boq.SubVC:           {"Poly", "Logitech", "Cisco"},
	boq.SubConnectivity: {"Kramer", "Extron"},
	boq.SubControl:      {"Crestron", "Extron", "AMX"},
	boq.SubRack:         {"Middle Atlantic"},
}

// DefaultBrands returns the Tier-1 guidance chain for a sub-category.
func DefaultBrands(sub string) []string {
	return tier1Defaults[sub]
}

// Directives builds one directive per declared brand preference. A brand
// with catalog hits sources database-first (a nil catalog price still
// uses the item, with the price marked estimated); a brand with zero hits
// keeps the lock and falls back to generated knowledge. The engine never
// substitutes a different brand than the one declared.
func Directives(prefs map[string][]string, idx *catalog.Index) []Directive {
	var out []Directive
	for _, sub := range subCategoryOrder {
		brands := prefs[sub]
		labels := LabelsForSubCategory(sub)
		for _, brand := range brands {
			d := Directive{
				SubCategory:  sub,
				Brand:        brand,
				MustUseBrand: true,
			}
			for _, label := range labels {
				d.CatalogHits = append(d.CatalogHits, idx.ByBrandCategory(brand, label)...)
			}
			if len(d.CatalogHits) == 0 {
				d.Fallback = FallbackGenerateFromBrand
			}
			out = append(out, d)
		}
	}
	return out
}

// subCategoryOrder keeps directive output deterministic (map iteration
// order is not).
var subCategoryOrder = []string{
	boq.SubDisplay,
	boq.SubMount,
	boq.SubVC,
	boq.SubMicrophone,
	boq.SubDSPAmplifier,
	boq.SubSpeaker,
	boq.SubConnectivity,
	boq.SubRack,
	boq.SubControl,
}
