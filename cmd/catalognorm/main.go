// catalognorm is the offline catalog-cleaning pass: it reads a raw
// vendor JSON array, normalizes brands and categories, deduplicates, and
// writes the cleaned catalog the API server indexes at startup.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"avboq/internal/catalog"
)

func main() {
	in := flag.String("in", "data/catalog_raw.json", "raw vendor catalog JSON")
	out := flag.String("out", "data/catalog.json", "cleaned catalog output path")
	aliasPath := flag.String("aliases", "", "optional alias table YAML; compiled-in defaults when empty")
	flag.Parse()

	_ = godotenv.Load()

	aliases := catalog.DefaultAliases()
	if *aliasPath != "" {
		loaded, err := catalog.LoadAliases(*aliasPath)
		if err != nil {
			log.Fatalf("catalognorm: %v", err)
		}
		aliases = loaded
	}

	raw, err := catalog.LoadRawFile(*in)
	if err != nil {
		log.Fatalf("catalognorm: %v", err)
	}
	cleaned := catalog.Normalize(raw, aliases)
	log.Printf("catalognorm: %d raw records -> %d cleaned", len(raw), len(cleaned))

	data, err := json.MarshalIndent(cleaned, "", "  ")
	if err != nil {
		log.Fatalf("catalognorm: encode: %v", err)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		log.Fatalf("catalognorm: write %s: %v", *out, err)
	}
	log.Printf("catalognorm: wrote %s", *out)
}
