package repository

import (
	"strings"
	"testing"
	"time"

	"gage_backend/internal/config"
	"gage_backend/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockQuerier(t *testing.T, d db.Dialect) (querier, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = conn.Close()
	})
	return newQuerier(conn, d, 3*time.Second), mock
}

var sqliteDialect = db.Dialect{Driver: config.DriverSQLite}

func contains(s, sub string) bool { return strings.Contains(s, sub) }
