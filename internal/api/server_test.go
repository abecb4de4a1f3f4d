package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/g10z3r/wofc/internal/persistence"
	"github.com/g10z3r/wofc/pkg/world"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	w, err := world.NewBuilder().SetSeed(90210).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return &Server{World: w, started: time.Now()}
}

func getJSON(t *testing.T, h http.HandlerFunc, target string) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d: %s", target, rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("GET %s: decode: %v", target, err)
	}
	return out
}

func TestStatus(t *testing.T) {
	s := newTestServer(t)
	out := getJSON(t, s.handleStatus, "/api/v1/status")

	if out["name"] != "planetgen" {
		t.Errorf("name = %v", out["name"])
	}
	if seed := out["seed"].(float64); uint32(seed) != s.World.Seed() {
		t.Errorf("seed = %v, want %d", seed, s.World.Seed())
	}
	if out["snapshot_store"] != false {
		t.Errorf("snapshot_store = %v", out["snapshot_store"])
	}
}

func TestElevationEndpoint(t *testing.T) {
	s := newTestServer(t)
	out := getJSON(t, s.handleElevation, "/api/v1/elevation?x=0.3&y=0.5")

	want := s.World.ElevationAt(0.3, 0.5)
	if got := out["elevation"].(float64); got != want {
		t.Errorf("elevation = %v, want %v", got, want)
	}
	if name := out["terrain_name"].(string); name == "" {
		t.Error("empty terrain_name")
	}
	if _, ok := out["climate"].(map[string]any); !ok {
		t.Errorf("climate = %v", out["climate"])
	}

	for _, target := range []string{
		"/api/v1/elevation?y=0.5",
		"/api/v1/elevation?x=abc&y=0.5",
		"/api/v1/elevation?x=NaN&y=0.5",
		"/api/v1/elevation?x=Inf&y=0.5",
	} {
		rec := httptest.NewRecorder()
		s.handleElevation(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s: status %d, want 400", target, rec.Code)
		}
	}
}

func TestProfileEndpoint(t *testing.T) {
	s := newTestServer(t)
	out := getJSON(t, s.handleProfile, "/api/v1/profile?y=0.4&samples=16")

	elevations := out["elevations"].([]any)
	if len(elevations) != 16 {
		t.Fatalf("len(elevations) = %d", len(elevations))
	}
	lo := out["min"].(float64)
	hi := out["max"].(float64)
	for i, e := range elevations {
		v := e.(float64)
		if v < lo || v > hi {
			t.Errorf("sample %d (%v) outside [%v, %v]", i, v, lo, hi)
		}
	}

	for _, target := range []string{
		"/api/v1/profile?y=0.4&samples=1",
		"/api/v1/profile?y=0.4&samples=99999",
		"/api/v1/profile",
	} {
		rec := httptest.NewRecorder()
		s.handleProfile(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s: status %d, want 400", target, rec.Code)
		}
	}
}

func TestMapEndpoint(t *testing.T) {
	s := newTestServer(t)

	for _, style := range []string{"", "&style=color"} {
		rec := httptest.NewRecorder()
		s.handleMap(rec, httptest.NewRequest(http.MethodGet, "/api/v1/map.png?width=8&height=4"+style, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("style %q: status %d", style, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("content type = %q", ct)
		}
		img, err := png.Decode(rec.Body)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
			t.Errorf("bounds = %v", b)
		}
	}

	for _, target := range []string{
		"/api/v1/map.png?width=0",
		"/api/v1/map.png?width=100000",
		"/api/v1/map.png?x0=2&x1=1",
		"/api/v1/map.png?y0=bogus",
	} {
		rec := httptest.NewRecorder()
		s.handleMap(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s: status %d, want 400", target, rec.Code)
		}
	}
}

func TestSnapshotsWithoutStore(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.handleSnapshots(rec, httptest.NewRequest(http.MethodGet, "/api/v1/snapshots", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSnapshotsEndpoint(t *testing.T) {
	s := newTestServer(t)
	store, err := persistence.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	s.Store = store
	s.AdminKey = "sekrit"

	handler := s.adminOnly(s.handleSnapshots)

	// Unauthenticated POST is rejected.
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/snapshots", bytes.NewReader([]byte(`{}`))))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated POST: status %d, want 401", rec.Code)
	}

	// Authenticated POST renders and stores.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshots",
		bytes.NewReader([]byte(`{"width": 4, "height": 2}`)))
	req.Header.Set("Authorization", "Bearer sekrit")
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST: status %d: %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["id"] == "" || created["id"] == nil {
		t.Errorf("no id in response: %v", created)
	}

	// GET lists the snapshot without auth.
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/snapshots", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET: status %d", rec.Code)
	}
	var infos []persistence.SnapshotInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != created["id"] {
		t.Errorf("list = %+v, want the created snapshot", infos)
	}
	if infos[0].Width != 4 || infos[0].Height != 2 {
		t.Errorf("stored dims = %dx%d", infos[0].Width, infos[0].Height)
	}
}

func TestSnapshotsDisabledWithoutAdminKey(t *testing.T) {
	s := newTestServer(t)
	handler := s.adminOnly(s.handleSnapshots)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/snapshots", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
