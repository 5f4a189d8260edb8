package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"avboq/internal/activity"
	"avboq/internal/boq"
	"avboq/internal/directive"
	"avboq/internal/roommetrics"
)

const (
	// A deterministic critical finding caps the overall score no matter
	// how generous the semantic audit was.
	criticalScoreCeiling = 59

	// Score reported when the semantic phase could not run.
	degradedScore = 40
)

// Validate audits a BOQ in two phases: deterministic structural checks
// that never touch the oracle, then a semantic audit from the oracle.
// Findings are merged by concatenation; the semantic phase can never
// suppress a deterministic critical. Oracle failure degrades gracefully
// to the deterministic result instead of failing this read-only call.
func (e *Engine) Validate(ctx context.Context, b boq.Boq, req boq.RoomRequirements, summary string) (boq.ValidationResult, error) {
	det := deterministicAudit(b, req)
	if strings.TrimSpace(summary) == "" {
		summary = summarizeRequirements(req)
	}

	activity.Fire(e.activity, activity.Event{
		Action: "boq.validate",
		Detail: map[string]any{"items": len(b), "criticals": det.criticalCount},
	})

	semantic, err := e.semanticAudit(ctx, b, summary)
	if err != nil {
		log.Printf("engine: semantic audit unavailable: %v", err)
		return boq.ValidationResult{
			IsValid:           false,
			Warnings:          det.warnings,
			Suggestions:       det.suggestions,
			MissingComponents: det.missing,
			Score:             degradedScore,
			ComplianceNotes:   []string{"Semantic audit did not run; deterministic checks only."},
		}, nil
	}

	merged := boq.ValidationResult{
		IsValid:           semantic.IsValid && det.criticalCount == 0,
		Warnings:          append(append([]string{}, det.warnings...), semantic.Warnings...),
		Suggestions:       append(append([]string{}, det.suggestions...), semantic.Suggestions...),
		MissingComponents: append(append([]string{}, det.missing...), semantic.MissingComponents...),
		Score:             semantic.Score,
		ComplianceNotes:   semantic.ComplianceNotes,
	}
	if det.criticalCount > 0 && merged.Score > criticalScoreCeiling {
		merged.Score = criticalScoreCeiling
	}
	return merged, nil
}

func (e *Engine) semanticAudit(ctx context.Context, b boq.Boq, summary string) (boq.ValidationResult, error) {
	prompt, err := directive.Render(directive.Audit(summary))
	if err != nil {
		return boq.ValidationResult{}, err
	}
	raw, err := e.oracle.Complete(ctx, prompt, map[string]any{"boq": b})
	if err != nil {
		return boq.ValidationResult{}, err
	}
	return parseAudit(raw)
}

// summarizeRequirements renders the questionnaire answers into the short
// text the semantic audit works against.
func summarizeRequirements(req boq.RoomRequirements) string {
	m := roommetrics.Compute(req)
	var buf strings.Builder
	fmt.Fprintf(&buf, "Room %.0fx%.0fx%.0f ft (%.0f sq ft), table %.0f ft, rack distance %.0f ft, capacity %.0f.",
		m.Length, m.Width, m.Height, m.Area, m.TableLength, m.RackDistance, m.Capacity)
	if systems := req.Strings(boq.KeyRequiredSystems); len(systems) > 0 {
		fmt.Fprintf(&buf, " Required systems: %s.", strings.Join(systems, ", "))
	}
	prefs := req.BrandPreferences()
	for _, sub := range []string{
		boq.SubDisplay, boq.SubMount, boq.SubVC, boq.SubMicrophone,
		boq.SubDSPAmplifier, boq.SubSpeaker, boq.SubConnectivity,
		boq.SubRack, boq.SubControl,
	} {
		if brands := prefs[sub]; len(brands) > 0 {
			fmt.Fprintf(&buf, " Preferred %s brand(s): %s.", sub, strings.Join(brands, ", "))
		}
	}
	return buf.String()
}
