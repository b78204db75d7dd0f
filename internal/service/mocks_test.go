package service

import (
	"context"

	"gage_backend/internal/models"
	"gage_backend/internal/repository"
)

// mockCustomerRepo is a lightweight in-test mock for repository.CustomerRepo.
type mockCustomerRepo struct {
	CreateFn       func(c models.Customer) error
	GetByEmailFn   func(email string) (*models.Customer, error)
	ListFn         func(f repository.CustomerFilter) ([]models.Customer, error)
	DeleteByRoleFn func(role string) (int64, error)

	created  []models.Customer
	getCalls []string
	lastList repository.CustomerFilter
}

func (m *mockCustomerRepo) Create(_ context.Context, c models.Customer) error {
	m.created = append(m.created, c)
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(c)
}

func (m *mockCustomerRepo) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	m.getCalls = append(m.getCalls, email)
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(email)
}

func (m *mockCustomerRepo) List(_ context.Context, f repository.CustomerFilter) ([]models.Customer, error) {
	m.lastList = f
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(f)
}

func (m *mockCustomerRepo) DeleteByRole(_ context.Context, role string) (int64, error) {
	if m.DeleteByRoleFn == nil {
		return 0, nil
	}
	return m.DeleteByRoleFn(role)
}

type mockMetricsRepo struct {
	rows        []models.PlantMetric
	summaries   []models.PlantSummary
	err         error
	lastFilter  repository.MetricsFilter
	lastSummary string
}

func (m *mockMetricsRepo) List(_ context.Context, f repository.MetricsFilter) ([]models.PlantMetric, error) {
	m.lastFilter = f
	return m.rows, m.err
}

func (m *mockMetricsRepo) Summaries(_ context.Context, plant string) ([]models.PlantSummary, error) {
	m.lastSummary = plant
	return m.summaries, m.err
}

type mockWarehouseRepo struct {
	pingErr   error
	records   []models.Record
	err       error
	lastTable string
	lastLimit int
}

func (m *mockWarehouseRepo) Ping(context.Context) error { return m.pingErr }

func (m *mockWarehouseRepo) Preview(_ context.Context, table string, limit int) ([]models.Record, error) {
	m.lastTable, m.lastLimit = table, limit
	return m.records, m.err
}

var (
	adminActor    = models.Session{Email: "root@gage.io", Role: models.RoleAdmin, Plant: "HQ"}
	operatorActor = models.Session{Email: "op@gage.io", Role: "operator", Plant: "P-01"}
	noPlantActor  = models.Session{Email: "lost@gage.io", Role: "viewer"}
)
