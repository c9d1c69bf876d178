// Package persistence provides SQLite-based storage for the voyage log and
// island snapshots. The navigation engine itself stays in-memory; the driver
// owns the database and decides when to write.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/archipelago/internal/islands"
	"github.com/talgya/archipelago/internal/navigation"
)

// DB wraps a SQLite connection for voyage and island storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS voyages (
		id TEXT PRIMARY KEY,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		intent TEXT NOT NULL,
		success INTEGER NOT NULL,
		route TEXT NOT NULL,
		monsoon_favorable INTEGER NOT NULL,
		trade_volume INTEGER NOT NULL,
		cultural_json TEXT NOT NULL,
		knowledge_json TEXT NOT NULL,
		effects_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS islands (
		name TEXT PRIMARY KEY,
		specialization INTEGER NOT NULL,
		autonomy REAL NOT NULL,
		connectivity REAL NOT NULL,
		resonance_json TEXT NOT NULL,
		resource_capacity INTEGER NOT NULL,
		innovation_index REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sim_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_voyages_created ON voyages(created_at);
	CREATE INDEX IF NOT EXISTS idx_voyages_origin ON voyages(origin);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveVoyage appends one voyage result to the log under a fresh UUID.
func (db *DB) SaveVoyage(r navigation.Result) error {
	culturalJSON, _ := json.Marshal(r.CulturalExchange)
	knowledgeJSON, _ := json.Marshal(r.Knowledge)
	effectsJSON, _ := json.Marshal(r.NetworkEffects)

	success := 0
	if r.Success {
		success = 1
	}
	favorable := 0
	if r.MonsoonFavorable {
		favorable = 1
	}

	_, err := db.conn.Exec(`INSERT INTO voyages
		(id, origin, destination, intent, success, route, monsoon_favorable,
		 trade_volume, cultural_json, knowledge_json, effects_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), r.Origin, r.Destination, r.Intent, success, r.Route,
		favorable, r.TradeVolume, string(culturalJSON), string(knowledgeJSON),
		string(effectsJSON), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert voyage %s->%s: %w", r.Origin, r.Destination, err)
	}
	return nil
}

// SaveIslands writes all islands to the database (full replace).
func (db *DB) SaveIslands(all []islands.Island) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM islands"); err != nil {
		return err
	}

	for _, i := range all {
		resonanceJSON, _ := json.Marshal(i.CulturalResonance)
		_, err := tx.Exec(`INSERT INTO islands
			(name, specialization, autonomy, connectivity, resonance_json,
			 resource_capacity, innovation_index)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i.Name, i.Specialization, i.Autonomy, i.Connectivity,
			string(resonanceJSON), i.ResourceCapacity, i.InnovationIndex,
		)
		if err != nil {
			return fmt.Errorf("insert island %s: %w", i.Name, err)
		}
	}

	return tx.Commit()
}

// LoadConnectivity returns the saved name-to-connectivity mapping, used to
// rehydrate a controller on restart. An empty map means no saved state.
func (db *DB) LoadConnectivity() (map[string]float64, error) {
	rows, err := db.conn.Queryx("SELECT name, connectivity FROM islands")
	if err != nil {
		return nil, fmt.Errorf("load islands: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var name string
		var conn float64
		if err := rows.Scan(&name, &conn); err != nil {
			return nil, err
		}
		out[name] = conn
	}
	return out, rows.Err()
}

// VoyageRow is one persisted voyage, as served by the API.
type VoyageRow struct {
	ID               string `db:"id" json:"id"`
	Origin           string `db:"origin" json:"origin"`
	Destination      string `db:"destination" json:"destination"`
	Intent           string `db:"intent" json:"intent"`
	Success          bool   `db:"success" json:"success"`
	Route            string `db:"route" json:"route"`
	MonsoonFavorable bool   `db:"monsoon_favorable" json:"monsoon_favorable"`
	TradeVolume      int    `db:"trade_volume" json:"trade_volume"`
	CreatedAt        int64  `db:"created_at" json:"created_at"`
}

// RecentVoyages returns the most recent N voyages, newest first.
func (db *DB) RecentVoyages(limit int) ([]VoyageRow, error) {
	var rows []VoyageRow
	err := db.conn.Select(&rows, `SELECT id, origin, destination, intent,
		success, route, monsoon_favorable, trade_volume, created_at
		FROM voyages ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	return rows, err
}

// VoyageCount returns the number of persisted voyages.
func (db *DB) VoyageCount() (int, error) {
	var count int
	err := db.conn.Get(&count, "SELECT COUNT(*) FROM voyages")
	return count, err
}

// SaveMeta stores a key-value pair in simulation metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM sim_meta WHERE key = ?", key)
	return value, err
}

// SaveWorld persists islands and metadata in one pass. Called by the driver
// after each season and on shutdown.
func (db *DB) SaveWorld(all []islands.Island, season int) error {
	if err := db.SaveIslands(all); err != nil {
		return fmt.Errorf("save islands: %w", err)
	}
	if err := db.SaveMeta("last_season", fmt.Sprintf("%d", season)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	slog.Info("world state saved", "islands", len(all), "season", season)
	return nil
}
