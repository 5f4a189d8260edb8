package boq

import (
	"sort"
	"strings"
)

// Sub-category identifiers used for brand preferences, sourcing directives
// and the deterministic audit checks.
const (
	SubDisplay      = "display"
	SubMount        = "mount"
	SubMicrophone   = "microphone"
	SubDSPAmplifier = "dsp_amplifier"
	SubSpeaker      = "speaker"
	SubVC           = "video_conferencing"
	SubConnectivity = "connectivity"
	SubControl      = "control"
	SubRack         = "rack"
	SubAcoustics    = "acoustics"
	SubAccessories  = "accessories"
)

// flowRank orders sub-categories in system-flow order:
// visual -> conferencing -> audio -> connectivity -> infrastructure ->
// control -> acoustics -> accessories.
var flowRank = map[string]int{
	SubDisplay:      0,
	SubMount:        1,
	SubVC:           2,
	SubMicrophone:   3,
	SubDSPAmplifier: 4,
	SubSpeaker:      5,
	SubConnectivity: 6,
	SubRack:         7,
	SubControl:      8,
	SubAcoustics:    9,
	SubAccessories:  10,
}

// classKeywords maps lower-cased substrings of a line item's category or
// description to a sub-category. Mount must win over display ("display
// mount"), so matching walks this list in order.
var classKeywords = []struct {
	needle string
	sub    string
}{
	{"mount", SubMount},
	{"bracket", SubMount},
	{"display", SubDisplay},
	{"projector", SubDisplay},
	{"screen", SubDisplay},
	{"codec", SubVC},
	{"camera", SubVC},
	{"video conferencing", SubVC},
	{"vc ", SubVC},
	{"vc system", SubVC},
	{"microphone", SubMicrophone},
	{"mic", SubMicrophone},
	{"dsp", SubDSPAmplifier},
	{"amplifier", SubDSPAmplifier},
	{"amp", SubDSPAmplifier},
	{"speaker", SubSpeaker},
	{"soundbar", SubSpeaker},
	{"extender", SubConnectivity},
	{"cable", SubConnectivity},
	{"connectivity", SubConnectivity},
	{"switcher", SubConnectivity},
	{"matrix", SubConnectivity},
	{"fiber", SubConnectivity},
	{"control", SubControl},
	{"touch panel", SubControl},
	{"rack", SubRack},
	{"enclosure", SubRack},
	{"power", SubRack},
	{"pdu", SubRack},
	{"ups", SubRack},
	{"acoustic", SubAcoustics},
	{"installation", SubAccessories},
	{"accessor", SubAccessories},
	{"service", SubAccessories},
}

// Classify maps a line item to a sub-category. The walk is keyword-major:
// each keyword is tested against both the category and the description
// before the next keyword is tried, so a higher-priority keyword in the
// description beats a lower-priority one in the category ("Display" /
// "Tilting display mount" is a mount). Unmatched items classify as
// accessories so they sort last instead of failing.
func Classify(it Item) string {
	category := strings.ToLower(it.Category)
	description := strings.ToLower(it.ItemDescription)
	for _, kw := range classKeywords {
		if strings.Contains(category, kw.needle) || strings.Contains(description, kw.needle) {
			return kw.sub
		}
	}
	return SubAccessories
}

// FlowRank returns the system-flow position for a sub-category; unknown
// sub-categories sort last.
func FlowRank(sub string) int {
	if r, ok := flowRank[sub]; ok {
		return r
	}
	return len(flowRank)
}

// SortByFlow orders a BOQ in system-flow order. The sort is stable so
// items within one sub-category keep their generated order.
func SortByFlow(b Boq) {
	sort.SliceStable(b, func(i, j int) bool {
		return FlowRank(Classify(b[i])) < FlowRank(Classify(b[j]))
	})
}
