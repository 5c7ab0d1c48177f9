package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls and
	// serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS observations (
			id TEXT PRIMARY KEY,
			device_id TEXT NOT NULL,
			object_type TEXT NOT NULL,
			object_id TEXT NOT NULL,
			object_name TEXT NOT NULL,
			object_details TEXT,
			timestamp TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			place_name TEXT,
			equipment TEXT NOT NULL,
			notes TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_observations_location ON observations(lat, lon);
		CREATE INDEX IF NOT EXISTS idx_observations_object ON observations(object_id);
		CREATE INDEX IF NOT EXISTS idx_observations_timestamp ON observations(timestamp);
		CREATE INDEX IF NOT EXISTS idx_observations_device ON observations(device_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Ping() error {
	return s.db.Ping()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
