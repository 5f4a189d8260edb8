// Package engine orchestrates BOQ generation, refinement, and audit. It
// is stateless per call: all state lives in the arguments and the
// immutable catalog index, so one engine serves concurrent rooms.
package engine

import (
	"context"
	"fmt"
	"strings"

	"avboq/internal/activity"
	"avboq/internal/boq"
	"avboq/internal/catalog"
	"avboq/internal/directive"
	"avboq/internal/oracle"
	"avboq/internal/roommetrics"
	"avboq/internal/sourcing"
)

type Engine struct {
	oracle   oracle.Oracle
	catalog  *catalog.Index
	activity activity.Logger
}

// New wires an engine. The catalog index is owned by the composition
// root and shared read-only; act may be nil.
func New(o oracle.Oracle, idx *catalog.Index, act activity.Logger) *Engine {
	return &Engine{oracle: o, catalog: idx, activity: act}
}

// Generate builds a fresh BOQ for one room. Any oracle failure or
// contract violation fails the whole call; no partial BOQ is returned.
func (e *Engine) Generate(ctx context.Context, req boq.RoomRequirements) (boq.Boq, error) {
	systems := req.Strings(boq.KeyRequiredSystems)
	scope := sourcing.ResolveCategories(systems)
	metrics := roommetrics.Compute(req)
	prefs := req.BrandPreferences()
	dirs := sourcing.Directives(prefs, e.catalog)
	defaults := defaultGuidance(systems, prefs)

	prompt, err := directive.Render(directive.Generation(metrics, scope, dirs, defaults))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	raw, err := e.oracle.Complete(ctx, prompt, map[string]any{
		"catalog": e.catalog.Excerpt(scope),
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	items, err := parseItems(raw)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	items = applyDirectiveMetadata(items, dirs)
	if err := enforceBrandLocks(items, dirs, sourcing.SubsForSystems(systems)); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	items = boq.RecomputeTotals(items)
	boq.SortByFlow(items)

	activity.Fire(e.activity, activity.Event{
		Action: "boq.generate",
		Detail: map[string]any{"items": len(items), "systems": systems},
	})
	return items, nil
}

// defaultGuidance returns the Tier-1 chains for every in-play
// sub-category that has no declared preference. Guidance, not a lock.
func defaultGuidance(systems []string, prefs map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for _, sub := range sourcing.SubsForSystems(systems) {
		if len(prefs[sub]) > 0 {
			continue
		}
		if chain := sourcing.DefaultBrands(sub); len(chain) > 0 {
			out[sub] = chain
		}
	}
	return out
}

// applyDirectiveMetadata stamps source/priceSource on items covered by a
// generated-knowledge fallback directive. The directive knows the
// sourcing truth better than the oracle's own labeling, and this is
// metadata the engine decided before generation, not a guessed value.
func applyDirectiveMetadata(items boq.Boq, dirs []sourcing.Directive) boq.Boq {
	for i, it := range items {
		sub := boq.Classify(it)
		for _, d := range dirs {
			if d.SubCategory != sub || !strings.EqualFold(d.Brand, it.Brand) {
				continue
			}
			if d.Fallback == sourcing.FallbackGenerateFromBrand {
				items[i].Source = boq.SourceWeb
				items[i].PriceSource = boq.PriceEstimated
			}
		}
	}
	return items
}

// enforceBrandLocks post-validates the oracle output against every lock
// whose sub-category is in play: at least one item of the locked brand
// must exist in that sub-category, and no item in a locked sub-category
// may carry a brand outside its locks.
func enforceBrandLocks(items boq.Boq, dirs []sourcing.Directive, activeSubs []string) error {
	active := make(map[string]bool, len(activeSubs))
	for _, s := range activeSubs {
		active[s] = true
	}
	locked := make(map[string][]string)
	for _, d := range dirs {
		if d.MustUseBrand && active[d.SubCategory] {
			locked[d.SubCategory] = append(locked[d.SubCategory], d.Brand)
		}
	}
	for sub, brands := range locked {
		found := false
		for _, it := range items {
			if boq.Classify(it) != sub {
				continue
			}
			if matchesAny(it.Brand, brands) {
				found = true
			} else {
				return fmt.Errorf("%w: brand lock violated: %s item has brand %q, locked to %v",
					ErrDomainInvariant, sub, it.Brand, brands)
			}
		}
		if !found {
			return fmt.Errorf("%w: brand lock violated: no %s item for locked brand(s) %v",
				ErrDomainInvariant, sub, brands)
		}
	}
	return nil
}

func matchesAny(brand string, brands []string) bool {
	for _, b := range brands {
		if strings.EqualFold(brand, b) {
			return true
		}
	}
	return false
}
