package db

import (
	"database/sql"
	"fmt"
	"time"

	"gage_backend/internal/config"
	"gage_backend/internal/secrets"

	dbsql "github.com/databricks/databricks-sql-go"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName   = "sqlite"
	postgresDriverName = "postgres"

	connMaxIdleTime = 5 * time.Minute
)

// Open returns a pooled handle to the configured warehouse. Remote engines
// are not contacted here; callers Ping when they need to know.
func Open(cfg config.WarehouseConfig, creds secrets.Credentials) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)
	switch cfg.Driver {
	case config.DriverDatabricks:
		conn, err = openDatabricks(cfg, creds)
	case config.DriverSQLite:
		return InitSQLite(cfg.DSN)
	case config.DriverPostgres:
		conn, err = sql.Open(postgresDriverName, cfg.DSN)
		if err != nil {
			err = fmt.Errorf("open postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported warehouse driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	conn.SetConnMaxIdleTime(connMaxIdleTime)
	return conn, nil
}

func openDatabricks(cfg config.WarehouseConfig, creds secrets.Credentials) (*sql.DB, error) {
	if creds.Host == "" || creds.HTTPPath == "" || creds.Token == "" {
		return nil, fmt.Errorf("databricks host, http path and token are all required")
	}
	port := cfg.Port
	if port == 0 {
		port = 443
	}
	connector, err := dbsql.NewConnector(
		dbsql.WithServerHostname(creds.Host),
		dbsql.WithPort(port),
		dbsql.WithHTTPPath(creds.HTTPPath),
		dbsql.WithAccessToken(creds.Token),
	)
	if err != nil {
		return nil, fmt.Errorf("databricks connector for %q: %w", creds.Host, err)
	}
	return sql.OpenDB(connector), nil
}
