package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

const validItem = `{
  "category": "Speakers", "itemDescription": "Ceiling speaker", "keyRemarks": "70V line",
  "brand": "QSC", "model": "AD-C6T", "quantity": 2, "unitPrice": 250.5, "totalPrice": 0,
  "source": "database", "priceSource": "database"
}`

func TestParseItems_Valid(t *testing.T) {
	items, err := parseItems(json.RawMessage(`[` + validItem + `]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 || items[0].UnitPrice != 250.5 {
		t.Fatalf("items = %+v", items)
	}
}

func TestParseItems_StripsCodeFences(t *testing.T) {
	raw := "```json\n[" + validItem + "]\n```"
	items, err := parseItems(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("fenced response must parse: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %+v", items)
	}
}

func TestParseItems_FloatQuantityCoerces(t *testing.T) {
	raw := `[{"category":"Speakers","itemDescription":"x","keyRemarks":"","brand":"QSC","model":"m",
		"quantity":2.0,"unitPrice":1,"totalPrice":2,"source":"web","priceSource":"estimated"}]`
	items, err := parseItems(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("quantity = %d", items[0].Quantity)
	}
}

func TestParseItems_MissingFieldFailsWholeResponse(t *testing.T) {
	raw := `[` + validItem + `,
		{"category":"Microphones","itemDescription":"Table mic","brand":"Shure","model":"MXA310",
		 "quantity":1,"unitPrice":500,"totalPrice":500,"source":"database","priceSource":"database"}]`
	_, err := parseItems(json.RawMessage(raw))
	if !errors.Is(err, ErrResponseSchema) {
		t.Fatalf("want ErrResponseSchema for missing keyRemarks, got %v", err)
	}
}

func TestParseItems_NonPositiveQuantityFails(t *testing.T) {
	raw := `[{"category":"Speakers","itemDescription":"x","keyRemarks":"","brand":"QSC","model":"m",
		"quantity":0,"unitPrice":1,"totalPrice":0,"source":"web","priceSource":"estimated"}]`
	if _, err := parseItems(json.RawMessage(raw)); !errors.Is(err, ErrResponseSchema) {
		t.Fatalf("want ErrResponseSchema, got %v", err)
	}
}

func TestParseItems_NotJSON(t *testing.T) {
	if _, err := parseItems(json.RawMessage("sorry, I cannot do that")); !errors.Is(err, ErrResponseSchema) {
		t.Fatalf("want ErrResponseSchema, got %v", err)
	}
}

func TestParseItems_ExtraFieldsTolerated(t *testing.T) {
	raw := `[{"category":"Speakers","itemDescription":"x","keyRemarks":"","brand":"QSC","model":"m",
		"quantity":1,"unitPrice":1,"totalPrice":1,"source":"web","priceSource":"estimated",
		"confidence":0.9,"reasoning":"because"}]`
	if _, err := parseItems(json.RawMessage(raw)); err != nil {
		t.Fatalf("unrequested extra fields must be ignored: %v", err)
	}
}

func TestParseAudit_RoundsScore(t *testing.T) {
	raw := `{"isValid":true,"warnings":[],"suggestions":[],"missingComponents":[],
		"score":88.4,"complianceNotes":["ok"]}`
	result, err := parseAudit(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.Score != 88 {
		t.Fatalf("score = %d", result.Score)
	}
}

func TestParseAudit_MissingFieldFails(t *testing.T) {
	raw := `{"isValid":true,"warnings":[],"suggestions":[],"score":90,"complianceNotes":[]}`
	if _, err := parseAudit(json.RawMessage(raw)); !errors.Is(err, ErrResponseSchema) {
		t.Fatalf("want ErrResponseSchema, got %v", err)
	}
}
