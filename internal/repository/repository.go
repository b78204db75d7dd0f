package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gage_backend/internal/models"
	"gage_backend/internal/repository/db"
)

// Logical warehouse tables. Only these may be read through Preview.
const (
	TableCustomer     = "customer"
	TablePlantMetrics = "plant_metrics"
)

// ErrUnknownTable is returned when Preview is asked for a table outside the allow-list.
var ErrUnknownTable = errors.New("unknown table")

// CustomerFilter narrows List. Empty fields do not filter.
type CustomerFilter struct {
	Plant string
	Role  string
	Limit int
}

// MetricsFilter narrows metric queries. Zero times mean no bound.
type MetricsFilter struct {
	Plant string
	From  time.Time // inclusive
	To    time.Time // inclusive
	Limit int
}

type CustomerRepo interface {
	Create(ctx context.Context, c models.Customer) error
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	List(ctx context.Context, f CustomerFilter) ([]models.Customer, error)
	DeleteByRole(ctx context.Context, role string) (int64, error)
}

type MetricsRepo interface {
	List(ctx context.Context, f MetricsFilter) ([]models.PlantMetric, error)
	Summaries(ctx context.Context, plant string) ([]models.PlantSummary, error)
}

type WarehouseRepo interface {
	Ping(ctx context.Context) error
	Preview(ctx context.Context, table string, limit int) ([]models.Record, error)
}

// SessionRepo remembers revoked token IDs until the tokens would have expired anyway.
type SessionRepo interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Repository struct {
	Customers CustomerRepo
	Metrics   MetricsRepo
	Warehouse WarehouseRepo
	Sessions  SessionRepo
}

// NewRepository wires the SQL repositories onto conn. queryTimeout bounds
// every statement; zero leaves the caller's deadline alone.
func NewRepository(conn *sql.DB, d db.Dialect, queryTimeout time.Duration, sessions SessionRepo) *Repository {
	q := newQuerier(conn, d, queryTimeout)
	return &Repository{
		Customers: NewCustomerSQL(q),
		Metrics:   NewMetricsSQL(q),
		Warehouse: NewWarehouseSQL(q),
		Sessions:  sessions,
	}
}

// querier bundles the connection with the dialect and per-query deadline.
type querier struct {
	db      *sql.DB
	dialect db.Dialect
	timeout time.Duration
}

func newQuerier(conn *sql.DB, d db.Dialect, timeout time.Duration) querier {
	return querier{db: conn, dialect: d, timeout: timeout}
}

func (q querier) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, q.timeout)
}
