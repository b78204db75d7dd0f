package service

import (
	"context"
	"time"

	"gage_backend/internal/models"
	"gage_backend/internal/repository"
)

type Authorization interface {
	Login(ctx context.Context, email, password string) (Token, error)
	ParseToken(ctx context.Context, accessToken string) (models.Session, error)
	Logout(ctx context.Context, s models.Session) error
}

// Customers manages customer records on behalf of an authenticated actor.
type Customers interface {
	Create(ctx context.Context, actor models.Session, in CustomerInput) (models.Customer, error)
	Get(ctx context.Context, actor models.Session, email string) (models.Customer, error)
	List(ctx context.Context, actor models.Session, f CustomerFilter) ([]models.Customer, error)
	DeleteByRole(ctx context.Context, actor models.Session, role string) (int64, error)
}

// Metrics exposes read-only plant figures.
type Metrics interface {
	List(ctx context.Context, actor models.Session, f MetricsFilter) ([]models.PlantMetric, error)
	Summaries(ctx context.Context, actor models.Session, plant string) ([]models.PlantSummary, error)
}

// Warehouse exposes connectivity checks and raw table previews.
type Warehouse interface {
	Ping(ctx context.Context) error
	Preview(ctx context.Context, table string, limit int) ([]models.Record, error)
}

type Service struct {
	Authorization
	Customers
	Metrics
	Warehouse
}

// AuthSettings carries the signing key and token lifetime resolved at startup.
type AuthSettings struct {
	SigningKey []byte
	TokenTTL   time.Duration
}

func NewService(repos *repository.Repository, auth AuthSettings) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Customers, repos.Sessions, auth),
		Customers:     NewCustomerService(repos.Customers),
		Metrics:       NewMetricsService(repos.Metrics),
		Warehouse:     NewWarehouseService(repos.Warehouse),
	}
}
