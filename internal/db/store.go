// internal/db/store.go

// Package db persists decoded rack analyses into a SQLite catalog so
// a preset library can be searched and summarized without re-decoding
// the source files.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"rackdec/pkg/api"
)

// Store wraps the catalog database. One rack per use case; loading
// the same use case again replaces the previous rows.
type Store struct {
	db *sql.DB
}

// Open initializes the SQLite database at path, creating the schema
// if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS racks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rack_name TEXT NOT NULL,
		use_case TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		total_devices INTEGER NOT NULL,
		total_chains INTEGER NOT NULL,
		active_macros INTEGER NOT NULL,
		complexity_score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS devices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rack_id INTEGER NOT NULL REFERENCES racks(id) ON DELETE CASCADE,
		chain_name TEXT NOT NULL,
		device_type TEXT NOT NULL,
		device_name TEXT NOT NULL,
		is_on INTEGER NOT NULL,
		position INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS macro_controls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rack_id INTEGER NOT NULL REFERENCES racks(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		value REAL NOT NULL,
		index_position INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_racks_category ON racks(category);
	CREATE INDEX IF NOT EXISTS idx_devices_type ON devices(device_type);
	CREATE INDEX IF NOT EXISTS idx_macros_name ON macro_controls(name);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// Clear removes every rack and its dependent rows.
func (s *Store) Clear() error {
	for _, table := range []string{"macro_controls", "devices", "racks"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Category derives a browse category from a use case string: the
// prefix before " - " when present, otherwise the first word.
func Category(useCase string) string {
	if i := strings.Index(useCase, " - "); i >= 0 {
		return strings.TrimSpace(useCase[:i])
	}
	fields := strings.Fields(useCase)
	if len(fields) == 0 {
		return "Unknown"
	}
	return fields[0]
}

// Complexity scores a rack for search ordering. Macros count double
// because a mapped control implies deliberate sound design.
func Complexity(totalDevices, activeMacros int) int {
	return totalDevices + 2*activeMacros
}

// InsertAnalysis stores one decoded rack, replacing any previous rack
// with the same use case. All rows go in a single transaction.
func (s *Store) InsertAnalysis(v api.RackAnalysisV1) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM racks WHERE use_case = ?`, v.UseCase); err != nil {
		return fmt.Errorf("replace rack %q: %w", v.UseCase, err)
	}

	totalDevices := 0
	for _, c := range v.Chains {
		totalDevices += len(c.Devices)
	}
	res, err := tx.Exec(`
		INSERT INTO racks (rack_name, use_case, category, total_devices, total_chains, active_macros, complexity_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.RackName, v.UseCase, Category(v.UseCase),
		totalDevices, len(v.Chains), len(v.MacroControls),
		Complexity(totalDevices, len(v.MacroControls)))
	if err != nil {
		return fmt.Errorf("insert rack %q: %w", v.UseCase, err)
	}
	rackID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, c := range v.Chains {
		for pos, d := range c.Devices {
			isOn := 0
			if d.IsOn {
				isOn = 1
			}
			if _, err := tx.Exec(`
				INSERT INTO devices (rack_id, chain_name, device_type, device_name, is_on, position)
				VALUES (?, ?, ?, ?, ?, ?)`,
				rackID, c.Name, d.Type, d.Name, isOn, pos); err != nil {
				return fmt.Errorf("insert device %q: %w", d.Type, err)
			}
		}
	}
	for _, m := range v.MacroControls {
		if _, err := tx.Exec(`
			INSERT INTO macro_controls (rack_id, name, value, index_position)
			VALUES (?, ?, ?, ?)`,
			rackID, m.Name, m.Value, m.Index); err != nil {
			return fmt.Errorf("insert macro %q: %w", m.Name, err)
		}
	}
	return tx.Commit()
}

// Replace clears the catalog and loads a fresh batch.
func (s *Store) Replace(list []api.RackAnalysisV1) error {
	if err := s.Clear(); err != nil {
		return err
	}
	for _, v := range list {
		if err := s.InsertAnalysis(v); err != nil {
			return err
		}
	}
	return nil
}

// Filter narrows a catalog search. Zero values mean "no constraint";
// MaxDevices of 0 is unbounded.
type Filter struct {
	Category   string
	DeviceType string
	MacroName  string
	MinDevices int
	MaxDevices int
}

// RackRow is one catalog entry as returned by Search.
type RackRow struct {
	ID           int64
	RackName     string
	UseCase      string
	Category     string
	TotalDevices int
	TotalChains  int
	ActiveMacros int
	Complexity   int
}

// Search returns racks matching every set filter, ordered by
// complexity score descending then use case.
func (s *Store) Search(f Filter) ([]RackRow, error) {
	query := `
		SELECT DISTINCT r.id, r.rack_name, r.use_case, r.category,
			r.total_devices, r.total_chains, r.active_macros, r.complexity_score
		FROM racks r`
	var (
		conds []string
		args  []any
	)
	if f.DeviceType != "" {
		query += ` JOIN devices d ON d.rack_id = r.id`
		conds = append(conds, "d.device_type = ?")
		args = append(args, f.DeviceType)
	}
	if f.MacroName != "" {
		query += ` JOIN macro_controls m ON m.rack_id = r.id`
		conds = append(conds, "m.name LIKE ?")
		args = append(args, "%"+f.MacroName+"%")
	}
	if f.Category != "" {
		conds = append(conds, "r.category = ?")
		args = append(args, f.Category)
	}
	if f.MinDevices > 0 {
		conds = append(conds, "r.total_devices >= ?")
		args = append(args, f.MinDevices)
	}
	if f.MaxDevices > 0 {
		conds = append(conds, "r.total_devices <= ?")
		args = append(args, f.MaxDevices)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY r.complexity_score DESC, r.use_case"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []RackRow
	for rows.Next() {
		var r RackRow
		if err := rows.Scan(&r.ID, &r.RackName, &r.UseCase, &r.Category,
			&r.TotalDevices, &r.TotalChains, &r.ActiveMacros, &r.Complexity); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeviceCount is one entry of the popular-devices ranking.
type DeviceCount struct {
	Type  string
	Count int
}

// Stats summarizes the whole catalog.
type Stats struct {
	TotalRacks     int
	TotalDevices   int
	TotalMacros    int
	PopularDevices []DeviceCount
	Categories     map[string]int
	MinComplexity  int
	AvgComplexity  float64
	MaxComplexity  int
}

// Stats computes catalog-wide aggregates: totals, the ten most used
// device types, racks per category, and the complexity spread.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(MIN(complexity_score), 0),
			COALESCE(AVG(complexity_score), 0),
			COALESCE(MAX(complexity_score), 0)
		FROM racks`).
		Scan(&st.TotalRacks, &st.MinComplexity, &st.AvgComplexity, &st.MaxComplexity)
	if err != nil {
		return st, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM devices`).Scan(&st.TotalDevices); err != nil {
		return st, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM macro_controls`).Scan(&st.TotalMacros); err != nil {
		return st, err
	}

	rows, err := s.db.Query(`
		SELECT device_type, COUNT(*) AS n
		FROM devices
		GROUP BY device_type
		ORDER BY n DESC, device_type
		LIMIT 10`)
	if err != nil {
		return st, err
	}
	for rows.Next() {
		var dc DeviceCount
		if err := rows.Scan(&dc.Type, &dc.Count); err != nil {
			_ = rows.Close()
			return st, err
		}
		st.PopularDevices = append(st.PopularDevices, dc)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return st, err
	}
	_ = rows.Close()

	st.Categories = map[string]int{}
	rows, err = s.db.Query(`SELECT category, COUNT(*) FROM racks GROUP BY category`)
	if err != nil {
		return st, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return st, err
		}
		st.Categories[cat] = n
	}
	return st, rows.Err()
}
