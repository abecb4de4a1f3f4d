// Package api serves a generated planet over HTTP.
// GET endpoints are public (read-only queries against one shared World).
// POST endpoints require a bearer token (snapshot control plane).
// See design doc Section 8.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/g10z3r/wofc/internal/export"
	"github.com/g10z3r/wofc/internal/persistence"
	"github.com/g10z3r/wofc/pkg/world"
)

const (
	defaultMapWidth  = 512
	defaultMapHeight = 256
	maxMapDim        = 2048
	maxProfileSteps  = 4096
)

// Server serves planet queries over HTTP.
type Server struct {
	World    *world.World
	Store    *persistence.Store // optional; snapshot endpoints report 503 when nil
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	queries atomic.Int64
	started time.Time
	httpSrv *http.Server
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// Map renders walk the whole sampling pipeline per pixel, so they get a
	// per-IP budget.
	renderLimiter := NewRateLimiter(30, time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/elevation", s.handleElevation)
	mux.HandleFunc("/api/v1/profile", s.handleProfile)
	mux.HandleFunc("/api/v1/map.png", RateLimitMiddleware(renderLimiter, s.handleMap))

	// Snapshot endpoints: GET lists, POST (admin) renders and stores.
	mux.HandleFunc("/api/v1/snapshots", s.adminOnly(s.handleSnapshots))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "", "store", s.Store != nil)

	s.started = time.Now()
	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: corsMiddleware(s.logRequests(mux)),
	}

	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set PLANETGEN_CORS_ORIGINS to a comma-separated list of extra origins;
// localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("PLANETGEN_CORS_ORIGINS"); env != "" {
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

// logRequests logs every request and counts it toward the status endpoint.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.queries.Add(1)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start))
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
// GET requests pass through.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no admin key set)", http.StatusForbidden)
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
	cfg := s.World.Config()
	writeJSON(w, map[string]any{
		"name":           "planetgen",
		"seed":           cfg.Seed,
		"uptime":         time.Since(s.started).Round(time.Second).String(),
		"queries":        s.queries.Load(),
		"snapshot_store": s.Store != nil,
		"config":         cfg,
	})
}

func (s *Server) handleElevation(w http.ResponseWriter, r *http.Request) {
	x, ok := floatParam(w, r, "x")
	if !ok {
		return
	}
	y, ok := floatParam(w, r, "y")
	if !ok {
		return
	}

	terrain := s.World.TerrainAt(x, y)
	writeJSON(w, map[string]any{
		"x":            x,
		"y":            y,
		"elevation":    s.World.ElevationAt(x, y),
		"terrain":      uint8(terrain),
		"terrain_name": terrain.String(),
		"climate":      s.World.ClimateAt(x, y),
	})
}

// handleProfile samples elevation along a parallel, across all longitudes.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	y, ok := floatParam(w, r, "y")
	if !ok {
		return
	}

	samples := 360
	if v := r.URL.Query().Get("samples"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2 || n > maxProfileSteps {
			http.Error(w, fmt.Sprintf("samples must be 2..%d", maxProfileSteps), http.StatusBadRequest)
			return
		}
		samples = n
	}

	elevations := make([]float64, samples)
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range elevations {
		x := -math.Pi + float64(i)/float64(samples)*2*math.Pi
		e := s.World.ElevationAt(x, y)
		elevations[i] = e
		lo = math.Min(lo, e)
		hi = math.Max(hi, e)
	}

	writeJSON(w, map[string]any{
		"y":          y,
		"samples":    samples,
		"min":        lo,
		"max":        hi,
		"elevations": elevations,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gridParams(w, r)
	if !ok {
		return
	}

	field := export.Sample(s.World, g, runtime.NumCPU(), nil)

	w.Header().Set("Content-Type", "image/png")
	var err error
	if r.URL.Query().Get("style") == "color" {
		cfg := s.World.Config()
		err = export.WriteHypsometricPNG(w, field, cfg.SeaLevel*cfg.ContinentHeightScale)
	} else {
		err = export.WriteGrayPNG(w, field)
	}
	if err != nil {
		slog.Error("map encode failed", "error", err)
	}
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "snapshot store not configured", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		infos, err := s.Store.ListSnapshots()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, infos)

	case http.MethodPost:
		var req struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.Width <= 0 {
			req.Width = defaultMapWidth
		}
		if req.Height <= 0 {
			req.Height = defaultMapHeight
		}
		if req.Width > maxMapDim || req.Height > maxMapDim {
			http.Error(w, fmt.Sprintf("dimensions capped at %d", maxMapDim), http.StatusBadRequest)
			return
		}

		g := export.Grid{Width: req.Width, Height: req.Height, Region: export.WorldWindow()}
		field := export.Sample(s.World, g, runtime.NumCPU(), nil)
		id, err := s.Store.SaveSnapshot(s.World.Config(), field)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"id": id, "width": req.Width, "height": req.Height})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// gridParams parses width/height and an optional region window from the query.
func (s *Server) gridParams(w http.ResponseWriter, r *http.Request) (export.Grid, bool) {
	g := export.Grid{Width: defaultMapWidth, Height: defaultMapHeight, Region: export.WorldWindow()}
	q := r.URL.Query()

	for _, dim := range []struct {
		key string
		dst *int
	}{{"width", &g.Width}, {"height", &g.Height}} {
		if v := q.Get(dim.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > maxMapDim {
				http.Error(w, fmt.Sprintf("%s must be 1..%d", dim.key, maxMapDim), http.StatusBadRequest)
				return g, false
			}
			*dim.dst = n
		}
	}

	for _, edge := range []struct {
		key string
		dst *float64
	}{
		{"x0", &g.Region.XMin}, {"x1", &g.Region.XMax},
		{"y0", &g.Region.YMin}, {"y1", &g.Region.YMax},
	} {
		if v := q.Get(edge.key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				http.Error(w, edge.key+" is not a finite number", http.StatusBadRequest)
				return g, false
			}
			*edge.dst = f
		}
	}
	if g.Region.XMin >= g.Region.XMax || g.Region.YMin >= g.Region.YMax {
		http.Error(w, "empty region window", http.StatusBadRequest)
		return g, false
	}
	return g, true
}

// floatParam parses a required finite float query parameter, writing a 400 on
// failure.
func floatParam(w http.ResponseWriter, r *http.Request, key string) (float64, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		http.Error(w, "missing parameter "+key, http.StatusBadRequest)
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		http.Error(w, key+" is not a finite number", http.StatusBadRequest)
		return 0, false
	}
	return f, true
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
