package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Open opens and pings a database for one of the supported drivers.
// For sqlite dsn is a file path (or ":memory:"); for pgx it is a URL.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("openDB: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// A single connection keeps writers serialized and ":memory:" shared.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", driver, err)
	}

	return db, nil
}
