package repository

import (
	"database/sql"
	"fmt"
	"time"

	"gage_backend/internal/models"
)

// redactedColumns never leave the repository, whatever the query selected.
var redactedColumns = map[string]struct{}{
	"password_hash": {},
}

// scanRecords zips column names with each row's values.
func scanRecords(rows *sql.Rows) ([]models.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	out := make([]models.Record, 0, 16)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(out)+1, err)
		}

		rec := make(models.Record, len(cols))
		for i, col := range cols {
			if _, skip := redactedColumns[col]; skip {
				continue
			}
			rec[col] = normalizeValue(vals[i])
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeValue makes driver values JSON friendly.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC()
	default:
		return v
	}
}
