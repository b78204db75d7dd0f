package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gage_backend/internal/models"
	"gage_backend/internal/repository"
)

type WarehouseService struct {
	repo repository.WarehouseRepo
}

func NewWarehouseService(repo repository.WarehouseRepo) *WarehouseService {
	return &WarehouseService{repo: repo}
}

func (s *WarehouseService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Preview returns up to limit raw rows of an allow-listed table.
func (s *WarehouseService) Preview(ctx context.Context, table string, limit int) ([]models.Record, error) {
	table = strings.ToLower(strings.TrimSpace(table))
	if table == "" {
		table = repository.TableCustomer
	}
	recs, err := s.repo.Preview(ctx, table, clampLimit(limit, DefaultPreviewLimit))
	if errors.Is(err, repository.ErrUnknownTable) {
		return nil, ErrUnknownTable
	}
	return recs, err
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
