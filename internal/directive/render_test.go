package directive

import (
	"strings"
	"testing"

	"avboq/internal/boq"
	"avboq/internal/roommetrics"
	"avboq/internal/sourcing"
)

func TestRender_SectionLayout(t *testing.T) {
	out, err := Render(Spec{
		Purpose: "Do the thing.",
		Sections: []Section{
			{Title: "FIRST", Body: "alpha"},
			{Title: "EMPTY", Body: "   "},
			{Title: "SECOND", Body: "beta"},
		},
		OutputFields: []Field{{Name: "value", Type: "string", Required: true}},
		Constraints:  StrictJSONConstraints(),
		OutputFormat: "A single JSON object, nothing else.",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"[PURPOSE]", "[FIRST]", "[SECOND]", "[OUTPUT]", "[CONSTRAINTS]", "[OUTPUT_FORMAT]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[EMPTY]") {
		t.Fatalf("blank section must be skipped:\n%s", out)
	}
	if strings.Index(out, "[FIRST]") > strings.Index(out, "[SECOND]") {
		t.Fatalf("sections out of order:\n%s", out)
	}
	if !strings.Contains(out, "- value (string, required)") {
		t.Fatalf("output contract missing:\n%s", out)
	}
}

func TestRender_RejectsEmptyPurposeAndFields(t *testing.T) {
	if _, err := Render(Spec{OutputFields: []Field{{Name: "x", Type: "string"}}}); err == nil {
		t.Fatalf("empty purpose must fail")
	}
	if _, err := Render(Spec{Purpose: "p"}); err == nil {
		t.Fatalf("empty output fields must fail")
	}
}

func TestGeneration_ZeroHitLockKeepsBrandInPlay(t *testing.T) {
	m := roommetrics.Compute(boq.RoomRequirements{
		boq.KeyRoomLength: 20.0, boq.KeyRoomWidth: 15.0, boq.KeyCapacity: 10.0,
	})
	dirs := []sourcing.Directive{{
		SubCategory:  boq.SubMicrophone,
		Brand:        "JBL",
		MustUseBrand: true,
		Fallback:     sourcing.FallbackGenerateFromBrand,
	}}
	out, err := Render(Generation(m, []string{"Microphones"}, dirs, nil))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `source="web"`) || !strings.Contains(out, `priceSource="estimated"`) {
		t.Fatalf("zero-hit lock must direct generated sourcing:\n%s", out)
	}
	if !strings.Contains(out, "microphone: JBL") {
		t.Fatalf("lock line missing:\n%s", out)
	}
	if !strings.Contains(out, "Table microphones required: 3") {
		t.Fatalf("computed quantities must be explicit numbers:\n%s", out)
	}
}

func TestGeneration_CatalogHitLockPrefersCatalog(t *testing.T) {
	m := roommetrics.Compute(nil)
	dirs := []sourcing.Directive{{
		SubCategory:  boq.SubDisplay,
		Brand:        "Samsung",
		CatalogHits:  []boq.ProductRecord{{Brand: "Samsung", Model: "QM55", Category: "Display"}},
		MustUseBrand: true,
	}}
	out, err := Render(Generation(m, []string{"Display"}, dirs, nil))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "display: Samsung (locked; 1 catalog matches") {
		t.Fatalf("catalog-hit lock line missing:\n%s", out)
	}
	if !strings.Contains(out, "catalog price authoritative") {
		t.Fatalf("price authority rule missing:\n%s", out)
	}
}

func TestRefinement_CompleteReplacementContract(t *testing.T) {
	out, err := Render(Refinement("change the displays to LG", nil))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "[INSTRUCTION]\nchange the displays to LG") {
		t.Fatalf("instruction section missing:\n%s", out)
	}
	if !strings.Contains(out, "Return the COMPLETE item list") {
		t.Fatalf("complete-replacement constraint missing:\n%s", out)
	}
	if !strings.Contains(out, "overrides brand locks for the categories it names") {
		t.Fatalf("instruction-authority constraint missing:\n%s", out)
	}
}

func TestAudit_ResponseContract(t *testing.T) {
	out, err := Render(Audit("Room 20x15x10 ft, capacity 10."))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, field := range []string{"isValid", "warnings", "suggestions", "missingComponents", "score", "complianceNotes"} {
		if !strings.Contains(out, "- "+field+" (") {
			t.Fatalf("audit field %s missing:\n%s", field, out)
		}
	}
	if !strings.Contains(out, "[REQUIREMENTS]") {
		t.Fatalf("requirements section missing:\n%s", out)
	}
}
