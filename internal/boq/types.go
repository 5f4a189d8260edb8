package boq

// ProductRecord is one entry in the static parts catalog.
// Brand is non-empty after normalization; Price is nil when the vendor
// data carried no usable price.
type ProductRecord struct {
	Brand       string   `json:"brand"`
	Model       string   `json:"model,omitempty"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       *float64 `json:"price,omitempty"`
	Currency    string   `json:"currency"`

	// Set by the offline normalizer when neither price field was present.
	PriceEstimateRequired bool   `json:"price_estimate_required,omitempty"`
	PriceSource           string `json:"price_source,omitempty"`
}

// Item source / price-source values.
const (
	SourceDatabase = "database"
	SourceWeb      = "web"

	PriceFromDatabase = "database"
	PriceEstimated    = "estimated"
)

// Item is one BOQ line item. TotalPrice is always recomputed from
// Quantity*UnitPrice by the engine; the value returned by the oracle is
// never trusted.
type Item struct {
	Category        string   `json:"category"`
	ItemDescription string   `json:"itemDescription"`
	KeyRemarks      string   `json:"keyRemarks"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	Quantity        int      `json:"quantity"`
	UnitPrice       float64  `json:"unitPrice"`
	TotalPrice      float64  `json:"totalPrice"`
	Source          string   `json:"source"`
	PriceSource     string   `json:"priceSource"`
	Margin          *float64 `json:"margin,omitempty"`
}

// Boq is an ordered sequence of line items. Order is semantically
// meaningful (system-flow order), not an accident of generation.
type Boq []Item

// ValidationResult is the merged output of the deterministic and semantic
// audit phases.
type ValidationResult struct {
	IsValid           bool     `json:"isValid"`
	Warnings          []string `json:"warnings"`
	Suggestions       []string `json:"suggestions"`
	MissingComponents []string `json:"missingComponents"`
	Score             int      `json:"score"`
	ComplianceNotes   []string `json:"complianceNotes"`
}
