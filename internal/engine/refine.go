package engine

import (
	"context"
	"fmt"
	"strings"

	"avboq/internal/activity"
	"avboq/internal/boq"
	"avboq/internal/directive"
	"avboq/internal/sourcing"
)

// Refine applies a free-text instruction to an existing BOQ. The
// instruction has authority over prior brand locks for whatever it
// touches; locks derived from the untouched categories are restated so
// they survive the edit. The response must be a complete replacement:
// items not re-emitted are gone, never assumed to survive by omission.
// current is read-only; on any failure the caller's BOQ stands.
func (e *Engine) Refine(ctx context.Context, current boq.Boq, instruction string) (boq.Boq, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("refine: %w: empty instruction", ErrDomainInvariant)
	}
	if len(current) == 0 {
		return nil, fmt.Errorf("refine: %w: empty BOQ", ErrDomainInvariant)
	}

	// Re-derive sourcing directives from the categories actually present
	// in the current BOQ, not the original requirement set.
	dirs := sourcing.Directives(presentBrands(current), e.catalog)

	prompt, err := directive.Render(directive.Refinement(instruction, dirs))
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}
	raw, err := e.oracle.Complete(ctx, prompt, map[string]any{
		"currentBoq": current,
	})
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}
	items, err := parseItems(raw)
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}
	items = applyDirectiveMetadata(items, dirs)
	items = boq.RecomputeTotals(items)
	boq.SortByFlow(items)

	activity.Fire(e.activity, activity.Event{
		Action: "boq.refine",
		Detail: map[string]any{"items": len(items), "instruction": instruction},
	})
	return items, nil
}

// presentBrands collects the brands currently in use per sub-category.
func presentBrands(b boq.Boq) map[string][]string {
	out := make(map[string][]string)
	for _, it := range b {
		sub := boq.Classify(it)
		brand := strings.TrimSpace(it.Brand)
		if brand == "" {
			continue
		}
		if !containsFold(out[sub], brand) {
			out[sub] = append(out[sub], brand)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
