package db

import (
	"path/filepath"
	"testing"

	"gage_backend/internal/config"
	"gage_backend/internal/secrets"
)

func TestOpen_SQLiteCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.db")

	conn, err := Open(config.WarehouseConfig{Driver: config.DriverSQLite, DSN: path}, secrets.Credentials{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	for _, table := range []string{"customer", "plant_metrics"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestOpen_DatabricksRequiresCredentials(t *testing.T) {
	_, err := Open(config.WarehouseConfig{Driver: config.DriverDatabricks}, secrets.Credentials{Host: "h"})
	if err == nil {
		t.Fatal("expected error for incomplete credentials")
	}
}

func TestOpen_DatabricksIsLazy(t *testing.T) {
	conn, err := Open(config.WarehouseConfig{Driver: config.DriverDatabricks, MaxOpenConns: 2}, secrets.Credentials{
		Host: "adb-1.azuredatabricks.net", HTTPPath: "/sql/1.0/warehouses/x", Token: "t",
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()
	if got := conn.Stats().MaxOpenConnections; got != 2 {
		t.Fatalf("MaxOpenConnections = %d, want 2", got)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(config.WarehouseConfig{Driver: "oracle"}, secrets.Credentials{}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
