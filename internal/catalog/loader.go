package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"avboq/internal/boq"
)

// LoadFile reads a cleaned catalog JSON array (the normalizer's output)
// into product records.
func LoadFile(path string) ([]boq.ProductRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var records []boq.ProductRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return records, nil
}

// LoadRawFile reads a raw vendor JSON array for the normalizer binary.
func LoadRawFile(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return records, nil
}
