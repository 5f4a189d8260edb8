package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AliasTable maps raw vendor brand and category strings to canonical
// values. Keys are matched case-insensitively and exactly; substring
// matching is deliberately not applied (see normalize.go).
type AliasTable struct {
	Brands     map[string]string `yaml:"brands"`
	Categories map[string]string `yaml:"categories"`
}

// DefaultAliases returns the compiled-in alias table used when no YAML
// file is supplied.
func DefaultAliases() AliasTable {
	return AliasTable{
		Brands: map[string]string{
			"samsung electronics":      "Samsung",
			"samsung india":            "Samsung",
			"lg electronics":           "LG",
			"sony corporation":         "Sony",
			"sony india":               "Sony",
			"shure inc":                "Shure",
			"shure incorporated":       "Shure",
			"biamp systems":            "Biamp",
			"qsc audio":                "QSC",
			"qsc llc":                  "QSC",
			"bose corporation":         "Bose",
			"bose professional":        "Bose",
			"jbl professional":         "JBL",
			"harman jbl":               "JBL",
			"crestron electronics":     "Crestron",
			"extron electronics":       "Extron",
			"poly (plantronics)":       "Poly",
			"plantronics":              "Poly",
			"logitech international":   "Logitech",
			"cisco systems":            "Cisco",
			"kramer electronics":       "Kramer",
			"chief manufacturing":      "Chief",
			"middle atlantic products": "Middle Atlantic",
			"sennheiser electronic":    "Sennheiser",
		},
		Categories: map[string]string{
			"vc":                 "VC System",
			"video conference":   "VC System",
			"mic":                "Microphones",
			"mics":               "Microphones",
			"speakers & amps":    "Speakers",
			"install":            "Installation & Services",
			"misc":               "Accessories & Services",
			"display & mounts":   "Display",
			"acoustic panels":    "Acoustic Treatment",
			"cables":             "Cables & Connectivity",
			"control processors": "Control Systems",
		},
	}
}

// LoadAliases reads an alias table from a YAML file and lower-cases its
// keys so lookups stay case-insensitive.
func LoadAliases(path string) (AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AliasTable{}, fmt.Errorf("catalog: read aliases: %w", err)
	}
	var t AliasTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return AliasTable{}, fmt.Errorf("catalog: parse aliases: %w", err)
	}
	return t.lowered(), nil
}

func (t AliasTable) lowered() AliasTable {
	out := AliasTable{
		Brands:     make(map[string]string, len(t.Brands)),
		Categories: make(map[string]string, len(t.Categories)),
	}
	for k, v := range t.Brands {
		out.Brands[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for k, v := range t.Categories {
		out.Categories[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
