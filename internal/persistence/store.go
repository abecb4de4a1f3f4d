// Package persistence provides SQLite-based snapshot storage. A snapshot is a
// sampled elevation field plus the full generator config that produced it, so
// any stored map can be re-derived or re-rendered later.
// See design doc Section 7.
package persistence

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/g10z3r/wofc/internal/export"
	"github.com/g10z3r/wofc/pkg/world"
)

// Store wraps a SQLite connection for snapshot persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		x_min REAL NOT NULL,
		x_max REAL NOT NULL,
		y_min REAL NOT NULL,
		y_max REAL NOT NULL,
		min_elev REAL NOT NULL,
		max_elev REAL NOT NULL,
		elevations BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SnapshotInfo is the metadata of a stored snapshot, without the field data.
type SnapshotInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Seed      uint32    `json:"seed"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	MinElev   float64   `json:"min_elev"`
	MaxElev   float64   `json:"max_elev"`
}

type snapshotRow struct {
	ID         string  `db:"id"`
	CreatedAt  int64   `db:"created_at"`
	Seed       uint32  `db:"seed"`
	ConfigJSON string  `db:"config_json"`
	Width      int     `db:"width"`
	Height     int     `db:"height"`
	XMin       float64 `db:"x_min"`
	XMax       float64 `db:"x_max"`
	YMin       float64 `db:"y_min"`
	YMax       float64 `db:"y_max"`
	MinElev    float64 `db:"min_elev"`
	MaxElev    float64 `db:"max_elev"`
	Elevations []byte  `db:"elevations"`
}

func (r snapshotRow) info() SnapshotInfo {
	return SnapshotInfo{
		ID:        r.ID,
		CreatedAt: time.Unix(0, r.CreatedAt),
		Seed:      r.Seed,
		Width:     r.Width,
		Height:    r.Height,
		MinElev:   r.MinElev,
		MaxElev:   r.MaxElev,
	}
}

// SaveSnapshot stores a sampled field together with its generator config and
// returns the new snapshot's id.
func (s *Store) SaveSnapshot(cfg world.Config, f *export.Field) (string, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	id := uuid.NewString()
	blob := encodeValues(f.Values)

	_, err = s.conn.Exec(`INSERT INTO snapshots
		(id, created_at, seed, config_json, width, height,
		 x_min, x_max, y_min, y_max, min_elev, max_elev, elevations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UnixNano(), cfg.Seed, string(cfgJSON),
		f.Grid.Width, f.Grid.Height,
		f.Grid.Region.XMin, f.Grid.Region.XMax,
		f.Grid.Region.YMin, f.Grid.Region.YMax,
		f.Min, f.Max, blob,
	)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}

	slog.Info("snapshot saved",
		"id", id,
		"grid", fmt.Sprintf("%dx%d", f.Grid.Width, f.Grid.Height),
		"size", humanize.Bytes(uint64(len(blob))))
	return id, nil
}

// LoadSnapshot returns the stored config and field for the given id.
func (s *Store) LoadSnapshot(id string) (world.Config, *export.Field, error) {
	var row snapshotRow
	err := s.conn.Get(&row, "SELECT * FROM snapshots WHERE id = ?", id)
	if err != nil {
		return world.Config{}, nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}

	var cfg world.Config
	if err := json.Unmarshal([]byte(row.ConfigJSON), &cfg); err != nil {
		return world.Config{}, nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(row.Elevations) != row.Width*row.Height*8 {
		return world.Config{}, nil, fmt.Errorf("snapshot %s: blob is %d bytes, want %d",
			id, len(row.Elevations), row.Width*row.Height*8)
	}

	f := &export.Field{
		Grid: export.Grid{
			Width:  row.Width,
			Height: row.Height,
			Region: export.Region{
				XMin: row.XMin, XMax: row.XMax,
				YMin: row.YMin, YMax: row.YMax,
			},
		},
		Values: decodeValues(row.Elevations),
		Min:    row.MinElev,
		Max:    row.MaxElev,
	}
	return cfg, f, nil
}

// ListSnapshots returns metadata for all snapshots, newest first.
func (s *Store) ListSnapshots() ([]SnapshotInfo, error) {
	var rows []snapshotRow
	err := s.conn.Select(&rows, `SELECT id, created_at, seed, config_json,
		width, height, x_min, x_max, y_min, y_max, min_elev, max_elev
		FROM snapshots ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	infos := make([]SnapshotInfo, len(rows))
	for i, r := range rows {
		infos[i] = r.info()
	}
	return infos, nil
}

// PruneSnapshots deletes all but the newest keep snapshots and returns how
// many were removed.
func (s *Store) PruneSnapshots(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.conn.Exec(`DELETE FROM snapshots WHERE id NOT IN
		(SELECT id FROM snapshots ORDER BY created_at DESC, id LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("snapshots pruned", "removed", n, "kept", keep)
	}
	return int(n), nil
}

// encodeValues packs elevations as little-endian float64s.
func encodeValues(values []float64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func decodeValues(blob []byte) []float64 {
	values := make([]float64, len(blob)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return values
}
