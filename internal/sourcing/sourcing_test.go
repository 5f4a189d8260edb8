package sourcing

import (
	"testing"

	"avboq/internal/boq"
	"avboq/internal/catalog"
)

func TestResolveCategories_AlwaysAppendsServiceLabels(t *testing.T) {
	got := ResolveCategories(nil)
	if len(got) != 2 || got[0] != "Accessories & Services" || got[1] != "Installation & Services" {
		t.Fatalf("got %v", got)
	}
}

func TestResolveCategories_UnknownKeyContributesNothing(t *testing.T) {
	got := ResolveCategories([]string{"hologram_deck"})
	if len(got) != 2 {
		t.Fatalf("unknown key must resolve silently to nothing, got %v", got)
	}
}

func TestResolveCategories_Deduplicates(t *testing.T) {
	got := ResolveCategories([]string{"audio", "audio", "display"})
	seen := map[string]int{}
	for _, label := range got {
		seen[label]++
		if seen[label] > 1 {
			t.Fatalf("label %q duplicated in %v", label, got)
		}
	}
}

func TestDirectives_CatalogHitsPreferDatabase(t *testing.T) {
	idx := catalog.NewIndex([]boq.ProductRecord{
		{Brand: "Samsung", Category: "Display", Model: "QM55"},
	})
	dirs := Directives(map[string][]string{boq.SubDisplay: {"Samsung"}}, idx)
	if len(dirs) != 1 {
		t.Fatalf("got %d directives", len(dirs))
	}
	d := dirs[0]
	if !d.MustUseBrand {
		t.Fatalf("declared preference must be a lock")
	}
	if len(d.CatalogHits) != 1 || d.Fallback != "" {
		t.Fatalf("catalog hit should source database-first: %+v", d)
	}
}

func TestDirectives_BrandLockSurvivesCatalogAbsence(t *testing.T) {
	// JBL speakers exist; JBL microphones do not. The microphone lock
	// must stand anyway, with the generated-knowledge fallback.
	idx := catalog.NewIndex([]boq.ProductRecord{
		{Brand: "JBL", Category: "Speakers", Model: "Control 26CT"},
	})
	dirs := Directives(map[string][]string{boq.SubMicrophone: {"JBL"}}, idx)
	if len(dirs) != 1 {
		t.Fatalf("got %d directives", len(dirs))
	}
	d := dirs[0]
	if !d.MustUseBrand {
		t.Fatalf("brand lock dropped on catalog absence")
	}
	if len(d.CatalogHits) != 0 {
		t.Fatalf("unexpected hits: %+v", d.CatalogHits)
	}
	if d.Fallback != FallbackGenerateFromBrand {
		t.Fatalf("fallback = %q", d.Fallback)
	}
}

func TestDirectives_DeterministicOrder(t *testing.T) {
	idx := catalog.NewIndex(nil)
	prefs := map[string][]string{
		boq.SubSpeaker: {"Bose"},
		boq.SubDisplay: {"LG"},
	}
	dirs := Directives(prefs, idx)
	if len(dirs) != 2 || dirs[0].SubCategory != boq.SubDisplay || dirs[1].SubCategory != boq.SubSpeaker {
		t.Fatalf("directive order not deterministic: %+v", dirs)
	}
}

func TestSubsForSystems(t *testing.T) {
	subs := SubsForSystems([]string{"audio", "display"})
	want := []string{boq.SubMicrophone, boq.SubDSPAmplifier, boq.SubSpeaker, boq.SubDisplay, boq.SubMount}
	if len(subs) != len(want) {
		t.Fatalf("got %v", subs)
	}
	for i := range want {
		if subs[i] != want[i] {
			t.Fatalf("got %v, want %v", subs, want)
		}
	}
}

func TestDefaultBrands_GuidanceExists(t *testing.T) {
	for _, sub := range []string{boq.SubDisplay, boq.SubMicrophone, boq.SubDSPAmplifier, boq.SubSpeaker, boq.SubVC, boq.SubControl} {
		if len(DefaultBrands(sub)) == 0 {
			t.Fatalf("no Tier-1 chain for %s", sub)
		}
	}
}
