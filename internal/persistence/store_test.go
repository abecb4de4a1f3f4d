package persistence

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/g10z3r/wofc/internal/export"
	"github.com/g10z3r/wofc/pkg/world"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testField(values []float64, w, h int) *export.Field {
	f := &export.Field{
		Grid:   export.Grid{Width: w, Height: h, Region: export.WorldWindow()},
		Values: values,
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
	}
	for _, v := range values {
		f.Min = math.Min(f.Min, v)
		f.Max = math.Max(f.Max, v)
	}
	return f
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openStore(t)

	cfg := world.DefaultConfig()
	cfg.Seed = 99
	cfg.RiverDepth = 0.01
	f := testField([]float64{-0.25, 0.0, 0.125, 0.4375, -0.1, 0.2}, 3, 2)

	id, err := s.SaveSnapshot(cfg, f)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := uuid.Validate(id); err != nil {
		t.Errorf("id %q is not a uuid: %v", id, err)
	}

	gotCfg, gotField, err := s.LoadSnapshot(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotCfg != cfg {
		t.Errorf("config round trip: got %+v, want %+v", gotCfg, cfg)
	}
	if gotField.Grid != f.Grid {
		t.Errorf("grid round trip: got %+v, want %+v", gotField.Grid, f.Grid)
	}
	if gotField.Min != f.Min || gotField.Max != f.Max {
		t.Errorf("min/max round trip: got (%v, %v), want (%v, %v)",
			gotField.Min, gotField.Max, f.Min, f.Max)
	}
	for i := range f.Values {
		if gotField.Values[i] != f.Values[i] {
			t.Fatalf("value %d: got %v, want %v", i, gotField.Values[i], f.Values[i])
		}
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := openStore(t)
	if _, _, err := s.LoadSnapshot(uuid.NewString()); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	s := openStore(t)

	cfg := world.DefaultConfig()
	var ids []string
	for i := 0; i < 3; i++ {
		cfg.Seed = uint32(i)
		id, err := s.SaveSnapshot(cfg, testField([]float64{0.1}, 1, 1))
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	infos, err := s.ListSnapshots()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("len = %d, want 3", len(infos))
	}
	if infos[0].ID != ids[2] {
		t.Errorf("newest first: got %s, want %s", infos[0].ID, ids[2])
	}
	for i := 1; i < len(infos); i++ {
		if infos[i].CreatedAt.After(infos[i-1].CreatedAt) {
			t.Errorf("list not sorted at %d", i)
		}
	}
	if infos[0].Seed != 2 || infos[0].Width != 1 || infos[0].Height != 1 {
		t.Errorf("metadata: %+v", infos[0])
	}
}

func TestPruneSnapshots(t *testing.T) {
	s := openStore(t)

	cfg := world.DefaultConfig()
	var ids []string
	for i := 0; i < 5; i++ {
		id, err := s.SaveSnapshot(cfg, testField([]float64{0.1}, 1, 1))
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	removed, err := s.PruneSnapshots(2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	infos, err := s.ListSnapshots()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("len after prune = %d, want 2", len(infos))
	}
	if infos[0].ID != ids[4] || infos[1].ID != ids[3] {
		t.Errorf("wrong survivors: %s, %s", infos[0].ID, infos[1].ID)
	}

	// Pruning to zero empties the table.
	if removed, err = s.PruneSnapshots(0); err != nil || removed != 2 {
		t.Errorf("prune to zero: removed=%d err=%v", removed, err)
	}
}

func TestValueCodec(t *testing.T) {
	in := []float64{0, -1.5, math.Pi, 0.0078125, -0.375}
	out := decodeValues(encodeValues(in))
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("value %d: got %v, want %v", i, out[i], in[i])
		}
	}
}
