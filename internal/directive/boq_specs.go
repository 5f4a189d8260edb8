package directive

import (
	"fmt"
	"strings"

	"avboq/internal/boq"
	"avboq/internal/roommetrics"
	"avboq/internal/sourcing"
)

// FlowOrderContract is the output-ordering rule every BOQ-shaped response
// must follow.
const FlowOrderContract = "Order line items in system-flow order: visual, conferencing, audio, connectivity, infrastructure, control, acoustics, accessories."

var signalChainRules = []string{
	"Every display requires a matching mount and a source cable.",
	"When both microphones and speakers are present, include the full chain: microphone -> DSP -> amplifier -> speaker, with echo cancellation in the DSP.",
	"Video conferencing requires camera, codec, microphone, and speaker coverage.",
}

var cableThresholds = []string{
	"0-25 ft: passive copper cable.",
	"25-50 ft: active or premium certified cable.",
	"50-150 ft: extender transmitter/receiver pair (HDBaseT class).",
	"150 ft and above: fiber link.",
}

// itemFields is the response contract for generate and refine. Every
// field marked required must be present on every item.
func itemFields() []Field {
	return []Field{
		{Name: "category", Type: "string", Required: true},
		{Name: "itemDescription", Type: "string", Required: true},
		{Name: "keyRemarks", Type: "string", Required: true},
		{Name: "brand", Type: "string", Required: true},
		{Name: "model", Type: "string", Required: true},
		{Name: "quantity", Type: "number", Required: true, Description: "Must be greater than zero."},
		{Name: "unitPrice", Type: "number", Required: true, Description: "Zero or more; catalog price when available."},
		{Name: "totalPrice", Type: "number", Required: true},
		{Name: "source", Type: "string", Required: true, Description: "\"database\" or \"web\"."},
		{Name: "priceSource", Type: "string", Required: true, Description: "\"database\" or \"estimated\"."},
	}
}

// Generation assembles the full instruction for a fresh BOQ.
func Generation(m roommetrics.Metrics, scope []string, dirs []sourcing.Directive, defaults map[string][]string) Spec {
	return Spec{
		Purpose: "Produce a complete, internally consistent Bill of Quantities for one meeting-room AV installation.",
		Sections: []Section{
			{Title: "CATEGORY_SCOPE", Body: formatList(scope)},
			{Title: "BRAND_LOCKS", Body: formatBrandLocks(dirs)},
			{Title: "DEFAULT_BRANDS", Body: formatDefaults(defaults)},
			{Title: "QUANTITY_FORMULAS", Body: formatQuantities(m)},
			{Title: "SIGNAL_CHAIN_RULES", Body: formatList(signalChainRules)},
			{Title: "CABLE_RULES", Body: formatCableRules(m)},
			{Title: "ORDERING", Body: FlowOrderContract},
		},
		OutputFields: itemFields(),
		Constraints: append(StrictJSONConstraints(),
			"Use only categories inside CATEGORY_SCOPE.",
			"BRAND_LOCKS override everything, including catalog availability.",
			"The catalog excerpt in the input is the authoritative price source for matching items.",
		),
		OutputFormat: "A JSON array of line-item objects, nothing else.",
	}
}

// Refinement assembles the instruction that applies a free-text edit to
// an existing BOQ. The instruction has authority over prior brand locks
// for the categories it touches; locks on untouched categories stand.
func Refinement(instruction string, dirs []sourcing.Directive) Spec {
	return Spec{
		Purpose: "Apply the user's instruction to the current Bill of Quantities and return the complete revised item list.",
		Sections: []Section{
			{Title: "INSTRUCTION", Body: strings.TrimSpace(instruction)},
			{Title: "BRAND_LOCKS", Body: formatBrandLocks(dirs)},
			{Title: "SIGNAL_CHAIN_RULES", Body: formatList(signalChainRules)},
			{Title: "ORDERING", Body: FlowOrderContract},
		},
		OutputFields: itemFields(),
		Constraints: append(StrictJSONConstraints(),
			"The INSTRUCTION overrides brand locks for the categories it names; brand locks on untouched categories still apply.",
			"Return the COMPLETE item list: re-emit every retained item, do not return a diff or omit unchanged items.",
			"Do not change items in categories the instruction does not touch.",
		),
		OutputFormat: "A JSON array of line-item objects, nothing else.",
	}
}

// Audit assembles the semantic-phase validation instruction.
func Audit(summary string) Spec {
	return Spec{
		Purpose: "Audit the Bill of Quantities in the input against the stated room requirements for engineering completeness and AVIXA-style compliance.",
		Sections: []Section{
			{Title: "REQUIREMENTS", Body: strings.TrimSpace(summary)},
			{Title: "AUDIT_SCOPE", Body: formatList([]string{
				"Acoustic coverage and microphone pickup.",
				"Display sizing and viewing distance.",
				"Electrical and safety code compliance.",
				"Missing infrastructure items and accessories.",
			})},
		},
		OutputFields: []Field{
			{Name: "isValid", Type: "boolean", Required: true},
			{Name: "warnings", Type: "[]string", Required: true},
			{Name: "suggestions", Type: "[]string", Required: true},
			{Name: "missingComponents", Type: "[]string", Required: true},
			{Name: "score", Type: "number", Required: true, Description: "0-100 overall design score."},
			{Name: "complianceNotes", Type: "[]string", Required: true},
		},
		Constraints:  StrictJSONConstraints(),
		OutputFormat: "A single JSON object, nothing else.",
	}
}

// Assistant assembles the conversational-helper instruction. The input
// payload carries the conversation history and, when the caller supplied
// one, the room's current BOQ.
func Assistant() Spec {
	return Spec{
		Purpose: "Answer the integrator's question about the meeting-room design or its Bill of Quantities, using the conversation history and BOQ in the input.",
		Sections: []Section{
			{Title: "RULES", Body: formatList([]string{
				"Answer from the provided BOQ and history; say so when information is missing.",
				"Keep answers short and concrete; quantities and models over prose.",
			})},
		},
		OutputFields: []Field{
			{Name: "reply", Type: "string", Required: true, Description: "The assistant's answer."},
		},
		Constraints:  StrictJSONConstraints(),
		OutputFormat: "A single JSON object, nothing else.",
	}
}

func formatBrandLocks(dirs []sourcing.Directive) string {
	var buf strings.Builder
	for _, d := range dirs {
		if len(d.CatalogHits) > 0 {
			fmt.Fprintf(&buf, "- %s: %s (locked; %d catalog matches; prefer catalog, catalog price authoritative; a null catalog price still uses the item with priceSource=%q)\n",
				d.SubCategory, d.Brand, len(d.CatalogHits), boq.PriceEstimated)
			continue
		}
		fmt.Fprintf(&buf, "- %s: %s (locked; zero catalog matches; still produce %s items from generated knowledge with source=%q, priceSource=%q)\n",
			d.SubCategory, d.Brand, d.Brand, boq.SourceWeb, boq.PriceEstimated)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatDefaults(defaults map[string][]string) string {
	if len(defaults) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, sub := range []string{
		boq.SubDisplay, boq.SubMount, boq.SubVC, boq.SubMicrophone,
		boq.SubDSPAmplifier, boq.SubSpeaker, boq.SubConnectivity,
		boq.SubRack, boq.SubControl,
	} {
		brands := defaults[sub]
		if len(brands) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "- %s: %s (guidance only, not a lock)\n", sub, strings.Join(brands, ", "))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatQuantities(m roommetrics.Metrics) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "- Room area: %.0f sq ft; volume: %.0f cu ft.\n", m.Area, m.Volume)
	fmt.Fprintf(&buf, "- Ceiling microphones required: %d.\n", m.CeilingMicCount)
	fmt.Fprintf(&buf, "- Table microphones required: %d.\n", m.TableMicCount)
	fmt.Fprintf(&buf, "- Ceiling speakers required: %d.\n", m.CeilingSpeakerCount)
	return strings.TrimRight(buf.String(), "\n")
}

func formatCableRules(m roommetrics.Metrics) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "- Estimated cable run (rack to farthest endpoint, with service loop): %.0f ft.\n", m.CableRunEstimate)
	fmt.Fprintf(&buf, "- Display signal run (rack + table + vertical drop): %.0f ft.\n", m.DisplayTotalRun)
	buf.WriteString("Select cabling by total run length:\n")
	buf.WriteString(formatList(cableThresholds))
	return buf.String()
}
