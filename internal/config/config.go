// Package config loads process configuration from flags, .env, and the
// environment.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	CatalogPath string
	AliasPath   string
	OracleModel string

	// UseFakeOracle switches the composition root to the scripted fake;
	// used for offline runs.
	UseFakeOracle bool

	// GlobalMarginPct and CurrencyRate feed the pricing view endpoint.
	GlobalMarginPct float64
	CurrencyRate    float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8082", "server port")
	catalogPath := flag.String("catalog", "data/catalog.json", "cleaned catalog JSON path")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}
	if p := strings.TrimSpace(os.Getenv("CATALOG_PATH")); p != "" {
		*catalogPath = p
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:            *port,
		Env:             env,
		CatalogPath:     *catalogPath,
		AliasPath:       strings.TrimSpace(os.Getenv("ALIAS_PATH")),
		OracleModel:     strings.TrimSpace(os.Getenv("ORACLE_MODEL")),
		UseFakeOracle:   strings.EqualFold(strings.TrimSpace(os.Getenv("ORACLE_PROVIDER")), "fake"),
		GlobalMarginPct: envFloat("GLOBAL_MARGIN_PCT", 0),
		CurrencyRate:    envFloat("CURRENCY_RATE", 1),
	}, nil
}

func envFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}
