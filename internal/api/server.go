// Package api provides the read-only HTTP API for observing the network.
// All endpoints are GET and serve copies; nothing mutates the simulation.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/talgya/archipelago/internal/navigation"
	"github.com/talgya/archipelago/internal/persistence"
)

// Server serves the network state over HTTP.
type Server struct {
	Controller *navigation.Controller
	DB         *persistence.DB
	Port       int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/islands", s.handleIslands)
	mux.HandleFunc("/api/v1/voyages", s.handleVoyages)

	addr := fmt.Sprintf(":%d", s.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("API server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server failed", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	st := s.Controller.Status()

	// String forms alongside numeric enums so the endpoint is readable
	// without the source.
	writeJSON(w, map[string]any{
		"network_state":       st.NetworkState.String(),
		"coherence":           st.Coherence,
		"monsoon_phase":       st.MonsoonPhase.String(),
		"monsoon_day":         st.MonsoonDay,
		"total_voyages":       st.TotalVoyages,
		"successful_voyages":  st.SuccessfulVoyages,
		"success_rate":        st.SuccessRate,
		"cultural_exchanges":  st.CulturalExchanges,
		"disruption_events":   st.DisruptionEvents,
		"island_connectivity": st.IslandConnectivity,
	})
}

func (s *Server) handleIslands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type islandView struct {
		Name            string             `json:"name"`
		Specialization  string             `json:"specialization"`
		Autonomy        float64            `json:"autonomy"`
		Connectivity    float64            `json:"connectivity"`
		Resonance       map[string]float64 `json:"cultural_resonance"`
		Capacity        int                `json:"resource_capacity"`
		InnovationIndex float64            `json:"innovation_index"`
	}

	var out []islandView
	for _, i := range s.Controller.Islands() {
		out = append(out, islandView{
			Name:            i.Name,
			Specialization:  i.Specialization.String(),
			Autonomy:        i.Autonomy,
			Connectivity:    i.Connectivity,
			Resonance:       i.CulturalResonance,
			Capacity:        i.ResourceCapacity,
			InnovationIndex: i.InnovationIndex,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleVoyages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "voyage log unavailable", http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	rows, err := s.DB.RecentVoyages(limit)
	if err != nil {
		slog.Error("voyage query failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
