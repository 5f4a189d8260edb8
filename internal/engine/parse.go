package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"avboq/internal/boq"
)

// itemsSchema is the contract every generate/refine response must meet.
// Extra fields are tolerated (and ignored on decode); missing required
// fields or a non-positive quantity fail the whole response.
const itemsSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["category", "itemDescription", "keyRemarks", "brand", "model",
                 "quantity", "unitPrice", "totalPrice", "source", "priceSource"],
    "properties": {
      "category":        {"type": "string", "minLength": 1},
      "itemDescription": {"type": "string", "minLength": 1},
      "keyRemarks":      {"type": "string"},
      "brand":           {"type": "string", "minLength": 1},
      "model":           {"type": "string"},
      "quantity":        {"type": "number", "exclusiveMinimum": 0, "multipleOf": 1},
      "unitPrice":       {"type": "number", "minimum": 0},
      "totalPrice":      {"type": "number"},
      "source":          {"enum": ["database", "web"]},
      "priceSource":     {"enum": ["database", "estimated"]},
      "margin":          {"type": "number", "minimum": 0}
    }
  }
}`

const auditSchema = `{
  "type": "object",
  "required": ["isValid", "warnings", "suggestions", "missingComponents", "score", "complianceNotes"],
  "properties": {
    "isValid":           {"type": "boolean"},
    "warnings":          {"type": "array", "items": {"type": "string"}},
    "suggestions":       {"type": "array", "items": {"type": "string"}},
    "missingComponents": {"type": "array", "items": {"type": "string"}},
    "score":             {"type": "number", "minimum": 0, "maximum": 100},
    "complianceNotes":   {"type": "array", "items": {"type": "string"}}
  }
}`

var (
	compiledItemsSchema = jsonschema.MustCompileString("items.json", itemsSchema)
	compiledAuditSchema = jsonschema.MustCompileString("audit.json", auditSchema)
)

// stripFences removes markdown code-fence wrappers some models insist on
// despite the strict-JSON constraints.
func stripFences(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(trimmed, []byte("```")) {
		return trimmed
	}
	if i := bytes.IndexByte(trimmed, '\n'); i >= 0 {
		trimmed = trimmed[i+1:]
	} else {
		trimmed = bytes.TrimPrefix(trimmed, []byte("```"))
	}
	trimmed = bytes.TrimSpace(trimmed)
	trimmed = bytes.TrimSuffix(trimmed, []byte("```"))
	return bytes.TrimSpace(trimmed)
}

// parseItems decodes and validates a generate/refine response into typed
// line items. Any schema violation fails the whole call; partial BOQs
// with silently dropped items are worse than a visible hard failure.
func parseItems(raw json.RawMessage) (boq.Boq, error) {
	body := stripFences(raw)
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: not JSON: %v", ErrResponseSchema, err)
	}
	if err := compiledItemsSchema.Validate(decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseSchema, err)
	}
	var wire []wireItem
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: decode items: %v", ErrResponseSchema, err)
	}
	items := make(boq.Boq, 0, len(wire))
	for i, w := range wire {
		qty := int(w.Quantity)
		if qty <= 0 {
			return nil, fmt.Errorf("%w: item %d quantity %v", ErrResponseSchema, i, w.Quantity)
		}
		if w.UnitPrice < 0 || math.IsNaN(w.UnitPrice) || math.IsInf(w.UnitPrice, 0) {
			return nil, fmt.Errorf("%w: item %d unitPrice %v", ErrResponseSchema, i, w.UnitPrice)
		}
		items = append(items, boq.Item{
			Category:        w.Category,
			ItemDescription: w.ItemDescription,
			KeyRemarks:      w.KeyRemarks,
			Brand:           w.Brand,
			Model:           w.Model,
			Quantity:        qty,
			UnitPrice:       w.UnitPrice,
			TotalPrice:      w.TotalPrice,
			Source:          w.Source,
			PriceSource:     w.PriceSource,
			Margin:          w.Margin,
		})
	}
	return items, nil
}

// wireItem mirrors boq.Item with a float quantity: models emit "2" and
// "2.0" interchangeably, and the schema's multipleOf guard has already
// confirmed integrality by the time this decodes.
type wireItem struct {
	Category        string   `json:"category"`
	ItemDescription string   `json:"itemDescription"`
	KeyRemarks      string   `json:"keyRemarks"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	Quantity        float64  `json:"quantity"`
	UnitPrice       float64  `json:"unitPrice"`
	TotalPrice      float64  `json:"totalPrice"`
	Source          string   `json:"source"`
	PriceSource     string   `json:"priceSource"`
	Margin          *float64 `json:"margin,omitempty"`
}

// parseAudit decodes and validates a semantic-audit response.
func parseAudit(raw json.RawMessage) (boq.ValidationResult, error) {
	body := stripFences(raw)
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return boq.ValidationResult{}, fmt.Errorf("%w: not JSON: %v", ErrResponseSchema, err)
	}
	if err := compiledAuditSchema.Validate(decoded); err != nil {
		return boq.ValidationResult{}, fmt.Errorf("%w: %v", ErrResponseSchema, err)
	}
	var wire struct {
		IsValid           bool     `json:"isValid"`
		Warnings          []string `json:"warnings"`
		Suggestions       []string `json:"suggestions"`
		MissingComponents []string `json:"missingComponents"`
		Score             float64  `json:"score"`
		ComplianceNotes   []string `json:"complianceNotes"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return boq.ValidationResult{}, fmt.Errorf("%w: decode result: %v", ErrResponseSchema, err)
	}
	return boq.ValidationResult{
		IsValid:           wire.IsValid,
		Warnings:          wire.Warnings,
		Suggestions:       wire.Suggestions,
		MissingComponents: wire.MissingComponents,
		Score:             int(math.Round(wire.Score)),
		ComplianceNotes:   wire.ComplianceNotes,
	}, nil
}
