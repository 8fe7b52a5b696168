package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:classpoll.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/classpoll?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS decks (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  version INTEGER NOT NULL,
  slide_type TEXT NOT NULL DEFAULT 'image',
  slides_json TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS responses (
  user_id TEXT NOT NULL,
  slide_index INTEGER NOT NULL,
  answer TEXT NOT NULL CHECK (answer IN ('O','X')),
  recorded_at INTEGER NOT NULL,
  PRIMARY KEY (user_id, slide_index)
);

CREATE TABLE IF NOT EXISTS positions (
  user_id TEXT PRIMARY KEY,
  deck_version INTEGER NOT NULL,
  current_index INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS decks (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  version BIGINT NOT NULL,
  slide_type TEXT NOT NULL DEFAULT 'image',
  slides_json TEXT NOT NULL,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS responses (
  user_id TEXT NOT NULL,
  slide_index INTEGER NOT NULL,
  answer TEXT NOT NULL CHECK (answer IN ('O','X')),
  recorded_at BIGINT NOT NULL,
  PRIMARY KEY (user_id, slide_index)
);

CREATE TABLE IF NOT EXISTS positions (
  user_id TEXT PRIMARY KEY,
  deck_version BIGINT NOT NULL,
  current_index INTEGER NOT NULL
);
`
