package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"avboq/internal/boq"
	"avboq/internal/catalog"
	"avboq/internal/config"
	"avboq/internal/engine"
	"avboq/internal/oracle"
	"avboq/internal/sourcing"
)

// apiServer wires the engine behind plain JSON endpoints. Generate,
// refine, and validate serialize per room: a second call for a room with
// one already in flight is rejected, and a result whose request token has
// been superseded is discarded instead of overwriting newer state.
type apiServer struct {
	engine  *engine.Engine
	catalog *catalog.Index
	oracle  oracle.Oracle
	cfg     *config.Config
	rooms   *roomGuard
}

func newAPIServer(eng *engine.Engine, idx *catalog.Index, orc oracle.Oracle, cfg *config.Config) *apiServer {
	return &apiServer{engine: eng, catalog: idx, oracle: orc, cfg: cfg, rooms: newRoomGuard()}
}

type generateRequest struct {
	RoomID       string               `json:"roomId"`
	Requirements boq.RoomRequirements `json:"requirements"`
}

func (s *apiServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in generateRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	token, ok := s.rooms.begin(in.RoomID)
	if !ok {
		http.Error(w, "a call for this room is already in flight", http.StatusConflict)
		return
	}
	defer s.rooms.end(in.RoomID, token)

	result, err := s.engine.Generate(r.Context(), in.Requirements)
	if err != nil {
		writeEngineError(w, "generation failed", err)
		return
	}
	if !s.rooms.stillCurrent(in.RoomID, token) {
		// A newer request superseded this one while the oracle ran.
		http.Error(w, "stale result discarded", http.StatusConflict)
		return
	}
	writeJSON(w, map[string]any{"roomId": in.RoomID, "boq": result})
}

type refineRequest struct {
	RoomID      string  `json:"roomId"`
	Boq         boq.Boq `json:"boq"`
	Instruction string  `json:"instruction"`
}

func (s *apiServer) handleRefine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in refineRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	token, ok := s.rooms.begin(in.RoomID)
	if !ok {
		http.Error(w, "a call for this room is already in flight", http.StatusConflict)
		return
	}
	defer s.rooms.end(in.RoomID, token)

	result, err := s.engine.Refine(r.Context(), in.Boq, in.Instruction)
	if err != nil {
		writeEngineError(w, "refinement failed", err)
		return
	}
	if !s.rooms.stillCurrent(in.RoomID, token) {
		http.Error(w, "stale result discarded", http.StatusConflict)
		return
	}
	writeJSON(w, map[string]any{"roomId": in.RoomID, "boq": result})
}

type abandonRequest struct {
	RoomID string `json:"roomId"`
}

// handleAbandon revokes a room's in-flight generate/refine call so the
// user can re-submit without waiting for a slow oracle round trip. The
// revoked call's result is discarded when it eventually lands.
func (s *apiServer) handleAbandon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in abandonRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"roomId":    in.RoomID,
		"abandoned": s.rooms.abandon(in.RoomID),
	})
}

type validateRequest struct {
	RoomID       string               `json:"roomId"`
	Boq          boq.Boq              `json:"boq"`
	Requirements boq.RoomRequirements `json:"requirements"`
	Summary      string               `json:"summary,omitempty"`
}

func (s *apiServer) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in validateRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	result, err := s.engine.Validate(r.Context(), in.Boq, in.Requirements, in.Summary)
	if err != nil {
		writeEngineError(w, "validation failed", err)
		return
	}
	writeJSON(w, result)
}

type priceRequest struct {
	Boq          boq.Boq  `json:"boq"`
	MarginPct    *float64 `json:"marginPct,omitempty"`
	CurrencyRate *float64 `json:"currencyRate,omitempty"`
}

// handlePrice returns the priced view shared by the on-screen display
// and the export renderer.
func (s *apiServer) handlePrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in priceRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	margin := s.cfg.GlobalMarginPct
	if in.MarginPct != nil {
		margin = *in.MarginPct
	}
	rate := s.cfg.CurrencyRate
	if in.CurrencyRate != nil {
		rate = *in.CurrencyRate
	}
	lines := make([]boq.Totals, 0, len(in.Boq))
	grand := 0.0
	for _, it := range in.Boq {
		t := boq.ComputeTotals(it, margin, rate)
		lines = append(lines, t)
		grand += t.LineTotal
	}
	writeJSON(w, map[string]any{"lines": lines, "grandTotal": boq.Round2(grand)})
}

// handleCatalog serves the bounded excerpt for the requested systems,
// mostly for UI browsing and debugging.
func (s *apiServer) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	systems := r.URL.Query()["system"]
	labels := sourcing.ResolveCategories(systems)
	writeJSON(w, map[string]any{
		"categories": labels,
		"records":    s.catalog.Excerpt(labels),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

// writeEngineError maps the error taxonomy onto HTTP statuses. The body
// carries the stable operation-level message plus the detail.
func writeEngineError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, oracle.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, oracle.ErrCommunication):
		status = http.StatusBadGateway
	case errors.Is(err, engine.ErrResponseSchema), errors.Is(err, engine.ErrDomainInvariant):
		status = http.StatusUnprocessableEntity
	}
	log.Printf("api: %s: %v", msg, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg, "detail": err.Error()})
}
