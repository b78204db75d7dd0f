package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gage_backend/internal/models"
	"gage_backend/internal/repository"

	"github.com/google/uuid"
)

type CustomerService struct {
	repo repository.CustomerRepo
	now  func() time.Time
}

func NewCustomerService(repo repository.CustomerRepo) *CustomerService {
	return &CustomerService{repo: repo, now: time.Now}
}

// Create stores a new customer. Only admins may create; emails must be new.
func (s *CustomerService) Create(ctx context.Context, actor models.Session, in CustomerInput) (models.Customer, error) {
	if !actor.IsAdmin() {
		return models.Customer{}, ErrForbidden
	}
	return s.create(ctx, in)
}

// Bootstrap creates a customer without an actor; used to seed the first admin.
func (s *CustomerService) Bootstrap(ctx context.Context, in CustomerInput) (models.Customer, error) {
	return s.create(ctx, in)
}

func (s *CustomerService) create(ctx context.Context, in CustomerInput) (models.Customer, error) {
	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return models.Customer{}, err
	}
	if existing != nil {
		return models.Customer{}, fmt.Errorf("%w: %s", ErrCustomerExists, in.Email)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	c := models.Customer{
		ID:           uuid.NewString(),
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         in.Role,
		Plant:        in.Plant,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC().Truncate(time.Second),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

// Get returns one customer; non-admins only see their own plant.
func (s *CustomerService) Get(ctx context.Context, actor models.Session, email string) (models.Customer, error) {
	plant, err := scopePlant(actor, "")
	if err != nil {
		return models.Customer{}, err
	}
	c, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return models.Customer{}, err
	}
	if c == nil {
		return models.Customer{}, ErrCustomerNotFound
	}
	if plant != "" && c.Plant != plant {
		// don't reveal that the email exists elsewhere
		return models.Customer{}, ErrCustomerNotFound
	}
	return *c, nil
}

func (s *CustomerService) List(ctx context.Context, actor models.Session, f CustomerFilter) ([]models.Customer, error) {
	plant, err := scopePlant(actor, f.Plant)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, repository.CustomerFilter{
		Plant: plant,
		Role:  strings.ToLower(strings.TrimSpace(f.Role)),
		Limit: clampLimit(f.Limit, DefaultListLimit),
	})
}

// DeleteByRole removes every customer with the given role. Role is not
// unique, so this may delete many rows; the count is returned.
func (s *CustomerService) DeleteByRole(ctx context.Context, actor models.Session, role string) (int64, error) {
	if !actor.IsAdmin() {
		return 0, ErrForbidden
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return 0, &MissingFieldsError{Fields: []string{"role"}}
	}
	return s.repo.DeleteByRole(ctx, role)
}

// scopePlant returns the plant a query may cover. Admins may ask for any
// plant (or all); everybody else is pinned to their own.
func scopePlant(actor models.Session, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if actor.IsAdmin() {
		return requested, nil
	}
	// an empty plant would mean no filter at all
	if actor.Plant == "" {
		return "", ErrForbidden
	}
	if requested == "" || requested == actor.Plant {
		return actor.Plant, nil
	}
	return "", ErrForbidden
}
