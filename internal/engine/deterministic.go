package engine

import (
	"fmt"
	"strings"

	"avboq/internal/boq"
	"avboq/internal/roommetrics"
)

// Runs longer than this need an extender pair on the signal path.
const extenderThresholdFt = 50

// deterministicReport is the oracle-free half of a validation result.
type deterministicReport struct {
	warnings      []string
	suggestions   []string
	missing       []string
	criticalCount int
}

func (r *deterministicReport) critical(msg string) {
	r.warnings = append(r.warnings, msg)
	r.criticalCount++
}

// deterministicAudit runs the structural checks that must hold no matter
// what the semantic audit says. Brand-preference mismatches are checked
// first; they are the highest-priority finding.
func deterministicAudit(b boq.Boq, req boq.RoomRequirements) deterministicReport {
	var rep deterministicReport

	// Declared brand preference vs. actual item brands, per sub-category.
	prefs := req.BrandPreferences()
	for _, sub := range []string{
		boq.SubDisplay, boq.SubMount, boq.SubVC, boq.SubMicrophone,
		boq.SubDSPAmplifier, boq.SubSpeaker, boq.SubConnectivity,
		boq.SubRack, boq.SubControl,
	} {
		brands := prefs[sub]
		if len(brands) == 0 {
			continue
		}
		for _, it := range b {
			if boq.Classify(it) != sub {
				continue
			}
			if !matchesAny(it.Brand, brands) {
				rep.critical(fmt.Sprintf(
					"brand mismatch: %s item %q is %s, declared preference %s",
					sub, it.ItemDescription, it.Brand, strings.Join(brands, "/")))
			}
		}
	}

	// Display/mount parity.
	displays := quantityOf(b, boq.SubDisplay)
	mounts := quantityOf(b, boq.SubMount)
	if displays > 0 && mounts != displays {
		rep.critical(fmt.Sprintf("missing mount: %d display(s) but %d mount(s)", displays, mounts))
	}

	// Extender on long runs implied by rack distance and table length.
	m := roommetrics.Compute(req)
	if m.DisplayTotalRun > extenderThresholdFt && !hasExtender(b) {
		rep.critical(fmt.Sprintf(
			"signal run %.0f ft exceeds %d ft with no extender or fiber link in the BOQ",
			m.DisplayTotalRun, extenderThresholdFt))
	}

	// Microphones plus speakers without an echo-cancelling DSP/amplifier
	// is a feedback risk.
	if quantityOf(b, boq.SubMicrophone) > 0 && quantityOf(b, boq.SubSpeaker) > 0 && !hasEchoCancellingDSP(b) {
		rep.critical("feedback risk: microphones and speakers present without an echo-cancelling DSP/amplifier")
		rep.missing = append(rep.missing, "DSP with acoustic echo cancellation")
	}

	if displays == 0 {
		rep.suggestions = append(rep.suggestions, "No display line items; confirm the room is audio-only.")
	}
	return rep
}

// quantityOf sums item quantities within one sub-category.
func quantityOf(b boq.Boq, sub string) int {
	total := 0
	for _, it := range b {
		if boq.Classify(it) == sub {
			total += it.Quantity
		}
	}
	return total
}

func hasExtender(b boq.Boq) bool {
	for _, it := range b {
		text := strings.ToLower(it.Category + " " + it.ItemDescription)
		if strings.Contains(text, "extender") || strings.Contains(text, "fiber") {
			return true
		}
	}
	return false
}

func hasEchoCancellingDSP(b boq.Boq) bool {
	for _, it := range b {
		if boq.Classify(it) != boq.SubDSPAmplifier {
			continue
		}
		text := strings.ToLower(it.ItemDescription + " " + it.KeyRemarks + " " + it.Model)
		if strings.Contains(text, "aec") || strings.Contains(text, "echo") {
			return true
		}
	}
	return false
}
