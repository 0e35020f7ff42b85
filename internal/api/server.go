// Package api provides the HTTP API for observing a running experiment.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (bench control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/quellen/simmer/internal/engine"
	"github.com/quellen/simmer/internal/fluid"
	"github.com/quellen/simmer/internal/persistence"
	"github.com/quellen/simmer/internal/room"
)

// Server serves the experiment state over HTTP.
type Server struct {
	Exp      *engine.Experiment
	Eng      *engine.Engine
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// CSV export reads the whole run back from disk; keep it bounded.
	exportLimiter := NewRateLimiter(30, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can check on the bench).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/fluid", s.handleFluid)
	mux.HandleFunc("/api/v1/room", s.handleRoom)
	mux.HandleFunc("/api/v1/exposures", s.handleExposures)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/samples", s.handleSamples)
	mux.HandleFunc("/api/v1/export.csv", RateLimitMiddleware(exportLimiter, s.handleExportCSV))

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/burner", s.adminOnly(s.handleBurner))
	mux.HandleFunc("/api/v1/ac", s.adminOnly(s.handleAC))
	mux.HandleFunc("/api/v1/airhandler", s.adminOnly(s.handleAirHandler))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
// GET requests pass through (for endpoints that support both GET and POST).
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no SIMMER_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	res := s.Exp.LastFluid
	status := map[string]any{
		"name":           s.Exp.Name,
		"run_id":         s.Exp.ID,
		"tick":           s.Exp.CurrentTick(),
		"sim_time":       engine.SimTime(s.Exp.CurrentTick()),
		"speed":          s.Eng.Speed,
		"running":        s.Eng.Running,
		"phase":          res.Phase.String(),
		"boiling":        res.IsBoiling,
		"fluid_temp_c":   s.Exp.Fluid.TempC,
		"fluid_mass":     humanize.SIWithDigits(s.Exp.Fluid.MassKg*1000, 1, "g"),
		"room_temp_c":    s.Exp.Room.TempC,
		"room_pressure":  humanize.SIWithDigits(s.Exp.Room.PressurePa, 2, "Pa"),
		"burner_on":      s.Exp.HeaterOn,
		"burner_watts":   s.Exp.HeaterWatts,
		"active_alerts":  len(s.Exp.Room.Alerts),
		"vapor_total_kg": s.Exp.Stats.VaporTotalKg,
	}
	writeJSON(w, status)
}

func (s *Server) handleFluid(w http.ResponseWriter, r *http.Request) {
	res := s.Exp.LastFluid
	out := map[string]any{
		"substance":   s.Exp.Props.Substance,
		"state":       s.Exp.Fluid,
		"phase":       res.Phase.String(),
		"boiling":     res.IsBoiling,
		"evaporating": res.Evaporating,
	}
	if res.BoilingSource != fluid.SourceNone {
		out["boiling_point_c"] = res.BoilingPointC
		out["boiling_source"] = res.BoilingSource.String()
		out["extrapolated"] = res.Extrapolated
	}
	writeJSON(w, out)
}

func (s *Server) handleRoom(w http.ResponseWriter, r *http.Request) {
	// Sorted composition so the payload is stable across requests.
	species := make([]string, 0, len(s.Exp.Room.Composition))
	for sp := range s.Exp.Room.Composition {
		species = append(species, sp)
	}
	sort.Strings(species)

	comp := make([]map[string]any, 0, len(species))
	for _, sp := range species {
		frac := s.Exp.Room.Composition[sp]
		comp = append(comp, map[string]any{
			"species":  sp,
			"fraction": frac,
			"ppm":      room.PPM(frac),
		})
	}

	writeJSON(w, map[string]any{
		"temp_c":           s.Exp.Room.TempC,
		"pressure_pa":      s.Exp.Room.PressurePa,
		"composition":      comp,
		"ac_enabled":       s.Exp.Room.ACEnabled,
		"ac_setpoint_c":    s.Exp.Room.ACSetpointC,
		"air_handler_mode": s.Exp.Room.AirHandlerMode,
		"energy":           s.Exp.Room.Energy,
	})
}

func (s *Server) handleExposures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"events": s.Exp.Room.Exposures,
		"alerts": s.Exp.Room.Alerts,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events := s.Exp.Events

	if category := r.URL.Query().Get("category"); category != "" {
		var filtered []engine.Event
		for _, e := range events {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	start := 0
	if len(events) > limit {
		start = len(events) - limit
	}

	writeJSON(w, events[start:])
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Exp.Stats)
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "persistence disabled", http.StatusNotFound)
		return
	}
	samples, err := s.DB.Samples(s.Exp.ID)
	if err != nil {
		slog.Error("sample query failed", "error", err)
		http.Error(w, "sample query failed", http.StatusInternalServerError)
		return
	}

	limit := 500
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if len(samples) > limit {
		samples = samples[len(samples)-limit:]
	}
	writeJSON(w, samples)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "persistence disabled", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.csv", s.Exp.ID))
	if err := s.DB.ExportSamplesCSV(s.Exp.ID, w); err != nil {
		slog.Error("csv export failed", "error", err)
	}
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 1000 {
			http.Error(w, "speed must be 0-1000", http.StatusBadRequest)
			return
		}
		s.Eng.Speed = req.Speed
		slog.Info("speed changed", "speed", req.Speed)
	}

	writeJSON(w, map[string]float64{"speed": s.Eng.Speed})
}

func (s *Server) handleBurner(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			On    *bool    `json:"on"`
			Watts *float64 `json:"watts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Watts != nil {
			if *req.Watts < 0 || *req.Watts > 1e6 {
				http.Error(w, "watts out of range", http.StatusBadRequest)
				return
			}
			s.Exp.HeaterWatts = *req.Watts
		}
		if req.On != nil {
			s.Exp.SetBurner(s.Exp.CurrentTick(), *req.On)
		}
		slog.Info("burner changed", "on", s.Exp.HeaterOn, "watts", s.Exp.HeaterWatts)
	}

	writeJSON(w, map[string]any{
		"on":    s.Exp.HeaterOn,
		"watts": s.Exp.HeaterWatts,
	})
}

func (s *Server) handleAC(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Enabled   *bool    `json:"enabled"`
			SetpointC *float64 `json:"setpoint_c"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.SetpointC != nil {
			if *req.SetpointC < -40 || *req.SetpointC > 60 {
				http.Error(w, "setpoint out of range", http.StatusBadRequest)
				return
			}
			s.Exp.Room.ACSetpointC = *req.SetpointC
		}
		if req.Enabled != nil {
			s.Exp.Room.ACEnabled = *req.Enabled
		}
		slog.Info("ac changed", "enabled", s.Exp.Room.ACEnabled, "setpoint_c", s.Exp.Room.ACSetpointC)
	}

	writeJSON(w, map[string]any{
		"enabled":    s.Exp.Room.ACEnabled,
		"setpoint_c": s.Exp.Room.ACSetpointC,
	})
}

func (s *Server) handleAirHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Mode string `json:"mode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if _, ok := s.Exp.AirCfg.Modes[req.Mode]; !ok {
			http.Error(w, "unknown mode", http.StatusBadRequest)
			return
		}
		s.Exp.Room.AirHandlerMode = req.Mode
		slog.Info("air handler changed", "mode", req.Mode)
	}

	writeJSON(w, map[string]string{"mode": s.Exp.Room.AirHandlerMode})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "persistence disabled", http.StatusNotFound)
		return
	}
	if err := s.DB.SaveRun(s.Exp); err != nil {
		slog.Error("snapshot failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"saved": true, "tick": s.Exp.CurrentTick()})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
