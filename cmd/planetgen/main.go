// Command planetgen renders and serves procedurally generated planets.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/g10z3r/wofc/internal/api"
	"github.com/g10z3r/wofc/internal/export"
	"github.com/g10z3r/wofc/internal/persistence"
	"github.com/g10z3r/wofc/pkg/world"
)

func main() {
	cfg := world.DefaultConfig()

	var (
		seed    uint
		width   int
		height  int
		workers int
		window  string
		out     string
		style   string
		dbPath  string
		keep    int
		serve   bool
		port    int
		verbose bool
	)
	flag.UintVar(&seed, "seed", 0, "world seed (0 = random)")
	flag.IntVar(&width, "width", 512, "map width in pixels")
	flag.IntVar(&height, "height", 256, "map height in pixels")
	flag.IntVar(&workers, "workers", 0, "sampling goroutines (0 = one per CPU)")
	flag.StringVar(&window, "window", "", "region window as x0,x1,y0,y1 in radians (default: whole planet)")
	flag.StringVar(&out, "out", "planet.png", "output PNG path")
	flag.StringVar(&style, "style", "color", "render style: color or gray")
	flag.StringVar(&dbPath, "db", "", "SQLite snapshot database (empty = no snapshots)")
	flag.IntVar(&keep, "keep", 0, "prune the snapshot db down to this many after saving (0 = keep all)")
	flag.BoolVar(&serve, "serve", false, "serve the planet over HTTP instead of rendering a file")
	flag.IntVar(&port, "port", 8080, "HTTP API port")
	flag.BoolVar(&verbose, "v", false, "debug logging")

	flag.Float64Var(&cfg.SeaLevel, "sea-level", cfg.SeaLevel, "sea level on the continentalness signal")
	flag.Float64Var(&cfg.ShelfLevel, "shelf-level", cfg.ShelfLevel, "continental shelf level (below sea level)")
	flag.Float64Var(&cfg.MountainsAmount, "mountains", cfg.MountainsAmount, "mountain coverage fraction of land")
	flag.Float64Var(&cfg.HillsAmount, "hills", cfg.HillsAmount, "hill coverage fraction of land")
	flag.Float64Var(&cfg.BadlandsAmount, "badlands", cfg.BadlandsAmount, "badlands coverage fraction of land")
	flag.Float64Var(&cfg.MountainGlaciation, "glaciation", cfg.MountainGlaciation, "peak sharpening above the glacier line")
	flag.Float64Var(&cfg.RiverDepth, "river-depth", cfg.RiverDepth, "maximum river carving depth")
	flag.Float64Var(&cfg.TerrainOffset, "terrain-offset", cfg.TerrainOffset, "where rugged terrain may appear (<1 high ground only, >2 anywhere)")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── World ─────────────────────────────────────────────────────────
	b := world.NewBuilder()
	cfg.Seed = b.Config().Seed
	if seed != 0 {
		cfg.Seed = uint32(seed)
	}
	w, err := b.SetConfig(cfg).Build()
	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.Info("world ready", "seed", w.Seed())

	// ── Snapshot store ────────────────────────────────────────────────
	var store *persistence.Store
	if dbPath != "" {
		if dir := filepath.Dir(dbPath); dir != "." {
			os.MkdirAll(dir, 0755)
		}
		store, err = persistence.Open(dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		slog.Info("database opened", "path", dbPath)
	}

	if serve {
		runServer(w, store, port)
		return
	}

	// ── Render ────────────────────────────────────────────────────────
	region, err := parseWindow(window)
	if err != nil {
		slog.Error("bad -window", "error", err)
		os.Exit(1)
	}
	if width < 1 || height < 1 {
		slog.Error("width and height must be positive")
		os.Exit(1)
	}
	grid := export.Grid{Width: width, Height: height, Region: region}

	var onRow func(done, total int)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		onRow = func(done, total int) {
			if done%8 == 0 || done == total {
				fmt.Fprintf(os.Stderr, "\rsampling %d/%d rows", done, total)
			}
		}
	}

	start := time.Now()
	field := export.Sample(w, grid, workers, onRow)
	if onRow != nil {
		fmt.Fprintln(os.Stderr)
	}
	slog.Info("field sampled",
		"samples", humanize.Comma(int64(len(field.Values))),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"min", fmt.Sprintf("%.4f", field.Min),
		"max", fmt.Sprintf("%.4f", field.Max),
	)

	fh, err := os.Create(out)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	if style == "gray" {
		err = export.WriteGrayPNG(fh, field)
	} else {
		err = export.WriteHypsometricPNG(fh, field, cfg.SeaLevel*cfg.ContinentHeightScale)
	}
	if err != nil {
		fh.Close()
		slog.Error("failed to encode PNG", "error", err)
		os.Exit(1)
	}
	info, _ := fh.Stat()
	fh.Close()

	fmt.Printf("Wrote %s (%s, %dx%d, seed %d)\n",
		out, humanize.Bytes(uint64(info.Size())), width, height, w.Seed())

	if store != nil {
		id, err := store.SaveSnapshot(w.Config(), field)
		if err != nil {
			slog.Error("snapshot save failed", "error", err)
			os.Exit(1)
		}
		if keep > 0 {
			if _, err := store.PruneSnapshots(keep); err != nil {
				slog.Error("prune failed", "error", err)
			}
		}
		fmt.Printf("Snapshot %s saved to %s\n", id, dbPath)
	}
}

// runServer blocks until SIGINT or SIGTERM, then drains the API.
func runServer(w *world.World, store *persistence.Store, port int) {
	adminKey := os.Getenv("PLANETGEN_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("PLANETGEN_ADMIN_KEY not set, snapshot POST endpoint will be disabled")
	}

	srv := &api.Server{
		World:    w,
		Store:    store,
		Port:     port,
		AdminKey: adminKey,
	}
	srv.Start()

	fmt.Printf("Planet %d is up: http://localhost:%d/api/v1/status\n", w.Seed(), port)
	fmt.Println("Serving... (Ctrl+C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// parseWindow reads a region as four comma-separated radians: x0,x1,y0,y1.
func parseWindow(s string) (export.Region, error) {
	if s == "" {
		return export.WorldWindow(), nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return export.Region{}, fmt.Errorf("want x0,x1,y0,y1, got %d components", len(parts))
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return export.Region{}, fmt.Errorf("component %q: %w", p, err)
		}
		vals[i] = v
	}
	r := export.Region{XMin: vals[0], XMax: vals[1], YMin: vals[2], YMax: vals[3]}
	if r.XMin >= r.XMax || r.YMin >= r.YMax {
		return export.Region{}, fmt.Errorf("empty window")
	}
	return r, nil
}
