package db

import (
	"database/sql"
	"fmt"
)

// InitSQLite opens/creates a SQLite file standing in for the warehouse in
// local development and ensures the warehouse tables exist.
func InitSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const schemaCustomer = `
CREATE TABLE IF NOT EXISTS customer (
    customer_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    full_name TEXT NOT NULL,
    role TEXT NOT NULL,
    plant TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const schemaPlantMetrics = `
CREATE TABLE IF NOT EXISTS plant_metrics (
    plant_id TEXT NOT NULL,
    plant_name TEXT NOT NULL,
    metric_date DATE NOT NULL,
    energy_kwh REAL NOT NULL,
    throughput_tons REAL NOT NULL,
    uptime_pct REAL NOT NULL,
    PRIMARY KEY (plant_id, metric_date)
);
`

const indexCustomerEmail = `CREATE INDEX IF NOT EXISTS idx_customer_email ON customer (email);`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaCustomer,
		schemaPlantMetrics,
		indexCustomerEmail,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
