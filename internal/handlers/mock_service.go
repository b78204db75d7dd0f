package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gage_backend/internal/models"
	"gage_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

var (
	testAdmin    = models.Session{TokenID: "jti-admin", Email: "admin@gage.io", Role: models.RoleAdmin, Plant: "P1"}
	testOperator = models.Session{TokenID: "jti-op", Email: "op@gage.io", Role: "operator", Plant: "P1"}
)

type mockAuth struct {
	loginTok service.Token
	loginErr error
	// sessions maps bearer tokens to the session ParseToken returns.
	sessions  map[string]models.Session
	parseErr  error
	logoutErr error

	lastLoginEmail    string
	lastLoginPassword string
	lastParseToken    string
	logoutCalls       []models.Session
}

func newMockAuth() *mockAuth {
	return &mockAuth{sessions: map[string]models.Session{
		"admin": testAdmin,
		"valid": testOperator,
	}}
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (service.Token, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginTok, m.loginErr
}
func (m *mockAuth) ParseToken(ctx context.Context, token string) (models.Session, error) {
	m.lastParseToken = token
	if m.parseErr != nil {
		return models.Session{}, m.parseErr
	}
	s, ok := m.sessions[token]
	if !ok {
		return models.Session{}, service.ErrInvalidToken
	}
	return s, nil
}
func (m *mockAuth) Logout(ctx context.Context, s models.Session) error {
	m.logoutCalls = append(m.logoutCalls, s)
	return m.logoutErr
}

type mockCustomers struct {
	created   models.Customer
	createErr error
	got       models.Customer
	getErr    error
	list      []models.Customer
	listErr   error
	deleted   int64
	deleteErr error

	lastActor  models.Session
	lastInput  service.CustomerInput
	lastEmail  string
	lastFilter service.CustomerFilter
	lastRole   string
}

func (m *mockCustomers) Create(ctx context.Context, actor models.Session, in service.CustomerInput) (models.Customer, error) {
	m.lastActor, m.lastInput = actor, in
	return m.created, m.createErr
}
func (m *mockCustomers) Get(ctx context.Context, actor models.Session, email string) (models.Customer, error) {
	m.lastActor, m.lastEmail = actor, email
	return m.got, m.getErr
}
func (m *mockCustomers) List(ctx context.Context, actor models.Session, f service.CustomerFilter) ([]models.Customer, error) {
	m.lastActor, m.lastFilter = actor, f
	return m.list, m.listErr
}
func (m *mockCustomers) DeleteByRole(ctx context.Context, actor models.Session, role string) (int64, error) {
	m.lastActor, m.lastRole = actor, role
	return m.deleted, m.deleteErr
}

type mockMetrics struct {
	mu sync.Mutex

	rows    []models.PlantMetric
	listErr error
	// failAfter makes List fail once it has been called this many times (0 = never).
	failAfter int
	calls     int
	sums      []models.PlantSummary
	sumErr    error

	lastFilter service.MetricsFilter
	lastPlant  string
}

func (m *mockMetrics) List(ctx context.Context, actor models.Session, f service.MetricsFilter) ([]models.PlantMetric, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastFilter = f
	if m.failAfter > 0 && m.calls > m.failAfter {
		return nil, context.DeadlineExceeded
	}
	return m.rows, m.listErr
}
// filter returns the last filter List saw; the websocket loop calls List concurrently.
func (m *mockMetrics) filter() service.MetricsFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFilter
}

func (m *mockMetrics) Summaries(ctx context.Context, actor models.Session, plant string) ([]models.PlantSummary, error) {
	m.lastPlant = plant
	return m.sums, m.sumErr
}

type mockWarehouse struct {
	pingErr    error
	records    []models.Record
	previewErr error

	lastTable string
	lastLimit int
}

func (m *mockWarehouse) Ping(ctx context.Context) error { return m.pingErr }
func (m *mockWarehouse) Preview(ctx context.Context, table string, limit int) ([]models.Record, error) {
	m.lastTable, m.lastLimit = table, limit
	return m.records, m.previewErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWith(s, Options{})
}

func newTestRouterWith(s *service.Service, opts Options) *gin.Engine {
	h := NewHandler(s, nil, opts)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func newAuthedRequest(method, target, token string) *http.Request {
	req, _ := http.NewRequest(method, target, nil)
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}

var testNow = time.Date(2025, 8, 27, 12, 0, 0, 0, time.UTC)
