package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"avboq/internal/activity"
	"avboq/internal/catalog"
	"avboq/internal/config"
	"avboq/internal/engine"
	"avboq/internal/oracle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	records, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	idx := catalog.NewIndex(records)
	log.Printf("catalog: %d records indexed from %s", idx.Len(), cfg.CatalogPath)

	orc := buildOracle(cfg)
	defer orc.Close()

	eng := engine.New(orc, idx, activity.LogSink{})
	srv := newAPIServer(eng, idx, orc, cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/boq/generate", srv.handleGenerate)
	mux.HandleFunc("/api/boq/refine", srv.handleRefine)
	mux.HandleFunc("/api/boq/abandon", srv.handleAbandon)
	mux.HandleFunc("/api/boq/validate", srv.handleValidate)
	mux.HandleFunc("/api/boq/price", srv.handlePrice)
	mux.HandleFunc("/api/catalog", srv.handleCatalog)
	mux.HandleFunc("/api/assistant/ws", srv.handleAssistantWS)

	h := corsMiddleware(mux)
	log.Printf("Starting BOQ API server on %s (oracle %s)", cfg.Port, orc.Name())
	log.Fatal(http.ListenAndServe(cfg.Port, h))
}

func buildOracle(cfg *config.Config) oracle.Oracle {
	if cfg.UseFakeOracle {
		log.Printf("oracle: using fake provider")
		return oracle.NewFake()
	}
	g, err := oracle.NewGemini(context.Background(), cfg.OracleModel)
	if err != nil {
		log.Fatalf("oracle: %v", err)
	}
	return g
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
