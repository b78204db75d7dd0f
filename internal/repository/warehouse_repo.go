package repository

import (
	"context"
	"fmt"

	"gage_backend/internal/models"
)

// WarehouseSQL serves connectivity checks and raw table previews.
type WarehouseSQL struct {
	q      querier
	tables map[string]string
}

func NewWarehouseSQL(q querier) *WarehouseSQL {
	return &WarehouseSQL{
		q: q,
		tables: map[string]string{
			TableCustomer:     q.dialect.Table(TableCustomer),
			TablePlantMetrics: q.dialect.Table(TablePlantMetrics),
		},
	}
}

var _ WarehouseRepo = (*WarehouseSQL)(nil)

// Ping opens (or reuses) a session with the warehouse.
func (r *WarehouseSQL) Ping(ctx context.Context) error {
	ctx, cancel := r.q.withTimeout(ctx)
	defer cancel()
	if err := r.q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping warehouse: %w", err)
	}
	return nil
}

// Preview runs SELECT * on an allow-listed table and returns generic records.
func (r *WarehouseSQL) Preview(ctx context.Context, table string, limit int) ([]models.Record, error) {
	qualified, ok := r.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	q := fmt.Sprintf(`SELECT * FROM %s`, qualified)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	ctx, cancel := r.q.withTimeout(ctx)
	defer cancel()

	rows, err := r.q.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", qualified, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}
