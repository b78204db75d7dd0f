package repository

import (
	"context"
	"fmt"
	"strings"

	"gage_backend/internal/models"
)

const metricColumns = `plant_id, plant_name, metric_date, energy_kwh, throughput_tons, uptime_pct`

type MetricsSQL struct {
	q     querier
	table string
}

func NewMetricsSQL(q querier) *MetricsSQL {
	return &MetricsSQL{q: q, table: q.dialect.Table(TablePlantMetrics)}
}

var _ MetricsRepo = (*MetricsSQL)(nil)

// List returns metric rows filtered by plant and [From, To], newest first.
func (r *MetricsSQL) List(ctx context.Context, f MetricsFilter) ([]models.PlantMetric, error) {
	var (
		conds []string
		args  []any
	)
	if f.Plant != "" {
		conds = append(conds, "plant_id = ?")
		args = append(args, f.Plant)
	}
	if !f.From.IsZero() {
		cond, arg := r.q.dialect.CompareTime("metric_date", ">=", f.From)
		conds = append(conds, cond)
		args = append(args, arg)
	}
	if !f.To.IsZero() {
		cond, arg := r.q.dialect.CompareTime("metric_date", "<=", f.To)
		conds = append(conds, cond)
		args = append(args, arg)
	}

	q := fmt.Sprintf(`SELECT %s FROM %s`, metricColumns, r.table)
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY metric_date DESC, plant_id ASC"
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	ctx, cancel := r.q.withTimeout(ctx)
	defer cancel()

	rows, err := r.q.db.QueryContext(ctx, r.q.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list plant metrics: %w", err)
	}
	defer rows.Close()

	out := make([]models.PlantMetric, 0, 64)
	for rows.Next() {
		var m models.PlantMetric
		if err := rows.Scan(&m.PlantID, &m.PlantName, &m.MetricDate, &m.EnergyKWh, &m.ThroughputTons, &m.UptimePct); err != nil {
			return nil, fmt.Errorf("scan plant metric: %w", err)
		}
		m.MetricDate = m.MetricDate.UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summaries aggregates metrics per plant. An empty plant covers all plants.
// KWhPerTon is left for the caller to derive.
func (r *MetricsSQL) Summaries(ctx context.Context, plant string) ([]models.PlantSummary, error) {
	q := fmt.Sprintf(`SELECT plant_id, MAX(plant_name), COUNT(*),
		COALESCE(SUM(energy_kwh), 0), COALESCE(SUM(throughput_tons), 0), COALESCE(AVG(uptime_pct), 0)
		FROM %s`, r.table)
	var args []any
	if plant != "" {
		q += " WHERE plant_id = ?"
		args = append(args, plant)
	}
	q += " GROUP BY plant_id ORDER BY plant_id ASC"

	ctx, cancel := r.q.withTimeout(ctx)
	defer cancel()

	rows, err := r.q.db.QueryContext(ctx, r.q.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("summarize plant metrics: %w", err)
	}
	defer rows.Close()

	out := make([]models.PlantSummary, 0, 8)
	for rows.Next() {
		var s models.PlantSummary
		if err := rows.Scan(&s.PlantID, &s.PlantName, &s.Days, &s.TotalEnergyKWh, &s.TotalThroughputTons, &s.AvgUptimePct); err != nil {
			return nil, fmt.Errorf("scan plant summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
