package service

import (
	"context"
	"math"

	"gage_backend/internal/models"
	"gage_backend/internal/repository"
)

type MetricsService struct {
	repo repository.MetricsRepo
}

func NewMetricsService(repo repository.MetricsRepo) *MetricsService {
	return &MetricsService{repo: repo}
}

func (s *MetricsService) List(ctx context.Context, actor models.Session, f MetricsFilter) ([]models.PlantMetric, error) {
	plant, err := scopePlant(actor, f.Plant)
	if err != nil {
		return nil, err
	}
	from, to := normalizeToUTC(f.From), normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, ErrInvalidTimeRange
	}
	return s.repo.List(ctx, repository.MetricsFilter{
		Plant: plant,
		From:  from,
		To:    to,
		Limit: clampLimit(f.Limit, DefaultListLimit),
	})
}

// Summaries returns per-plant aggregates with energy intensity filled in.
func (s *MetricsService) Summaries(ctx context.Context, actor models.Session, plant string) ([]models.PlantSummary, error) {
	plant, err := scopePlant(actor, plant)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Summaries(ctx, plant)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].KWhPerTon = kwhPerTon(out[i].TotalEnergyKWh, out[i].TotalThroughputTons)
	}
	return out, nil
}

// kwhPerTon is rounded to 3 decimals; zero throughput yields 0.
func kwhPerTon(energy, tons float64) float64 {
	if tons == 0 {
		return 0
	}
	return math.Round(energy/tons*1000) / 1000
}
