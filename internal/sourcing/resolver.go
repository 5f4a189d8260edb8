// Package sourcing maps abstract requirement systems to concrete catalog
// categories and decides, per category and brand preference, whether a
// line item draws from the catalog or from generated knowledge.
package sourcing

import "avboq/internal/boq"

// systemLabels maps an abstract requirement-system key to the concrete
// catalog category labels it covers. The label variants mirror the messy
// vendor strings accumulated in the catalog ("VC system" vs "VC System");
// they are enumerated here rather than normalized at lookup time.
var systemLabels = map[string][]string{
	"display": {
		"Display",
		"Displays & Projectors",
	},
	"video_conferencing": {
		"VC system",
		"VC System",
		"Video Conferencing",
	},
	"audio": {
		"Microphones",
		"Speakers",
		"DSP & Amplifiers",
		"Audio",
	},
	"connectivity_control": {
		"Cables & Connectivity",
		"Control Systems",
	},
	"infrastructure": {
		"Racks & Enclosures",
		"Power & Infrastructure",
	},
	"acoustics": {
		"Acoustic Treatment",
	},
}

// alwaysLabels are appended regardless of the requested systems; every
// BOQ carries accessories and installation lines.
var alwaysLabels = []string{
	"Accessories & Services",
	"Installation & Services",
}

// subCategoryLabels maps a brand-preference sub-category to the catalog
// labels queried for brand availability.
var subCategoryLabels = map[string][]string{
	boq.SubDisplay:      {"Display", "Displays & Projectors"},
	boq.SubMount:        {"Mounts", "Display", "Accessories & Services"},
	boq.SubMicrophone:   {"Microphones", "Audio"},
	boq.SubDSPAmplifier: {"DSP & Amplifiers", "Audio"},
	boq.SubSpeaker:      {"Speakers", "Audio"},
	boq.SubVC:           {"VC system", "VC System", "Video Conferencing"},
	boq.SubConnectivity: {"Cables & Connectivity"},
	boq.SubControl:      {"Control Systems"},
	boq.SubRack:         {"Racks & Enclosures", "Power & Infrastructure"},
}

// ResolveCategories maps abstract system keys to a deduplicated list of
// concrete catalog labels. Unknown keys contribute nothing; that is not
// an error, an unrecognized system simply adds no labels.
func ResolveCategories(systems []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(labels []string) {
		for _, l := range labels {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	for _, sys := range systems {
		add(systemLabels[sys])
	}
	add(alwaysLabels)
	return out
}

// LabelsForSubCategory returns the catalog labels backing one
// brand-preference sub-category.
func LabelsForSubCategory(sub string) []string {
	return subCategoryLabels[sub]
}

// systemSubs maps an abstract system key to the sub-categories it puts in
// play for brand locking and default-brand guidance.
var systemSubs = map[string][]string{
	"display":              {boq.SubDisplay, boq.SubMount},
	"video_conferencing":   {boq.SubVC},
	"audio":                {boq.SubMicrophone, boq.SubDSPAmplifier, boq.SubSpeaker},
	"connectivity_control": {boq.SubConnectivity, boq.SubControl},
	"infrastructure":       {boq.SubRack},
	"acoustics":            {boq.SubAcoustics},
}

// SubsForSystems returns the deduplicated sub-categories in play for the
// requested systems, in request order.
func SubsForSystems(systems []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, sys := range systems {
		for _, sub := range systemSubs[sys] {
			if !seen[sub] {
				seen[sub] = true
				out = append(out, sub)
			}
		}
	}
	return out
}
