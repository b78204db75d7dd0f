package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gage_backend/internal/models"
)

const customerColumns = `customer_id, email, full_name, role, plant, password_hash, created_at`

type CustomerSQL struct {
	q     querier
	table string
}

func NewCustomerSQL(q querier) *CustomerSQL {
	return &CustomerSQL{q: q, table: q.dialect.Table(TableCustomer)}
}

// Ensure implementation of CustomerRepo interface at compile time.
var _ CustomerRepo = (*CustomerSQL)(nil)

func (r *CustomerSQL) insertSQL() string {
	return r.q.dialect.Rebind(fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?)`, r.table, customerColumns))
}

func (r *CustomerSQL) selectByEmailSQL() string {
	return r.q.dialect.Rebind(fmt.Sprintf(
		`SELECT %s FROM %s WHERE email = ? LIMIT 1`, customerColumns, r.table))
}

func (r *CustomerSQL) deleteByRoleSQL() string {
	return r.q.dialect.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE role = ?`, r.table))
}

// Create inserts a fully populated customer row.
func (r *CustomerSQL) Create(ctx context.Context, c models.Customer) error {
	ctx, cancel := r.q.withTimeout(ctx)
	defer cancel()

	_, err := r.q.db.ExecContext(ctx, r.insertSQL(),
		c.ID, c.Email, c.FullName, c.Role, c.Plant, c.PasswordHash, c.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert customer %q: %w", c.Email, err)
	}
	return nil
}

// GetByEmail fetches a customer by email. Returns (nil, nil) if not found.
func (r *CustomerSQL) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	ctx, cancel := r.q.withTimeout(ctx)
	defer cancel()

	var c models.Customer
	err := r.q.db.QueryRowContext(ctx, r.selectByEmailSQL(), email).Scan(
		&c.ID, &c.Email, &c.FullName, &c.Role, &c.Plant, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select customer %q: %w", email, err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

// List returns customers ordered by email.
func (r *CustomerSQL) List(ctx context.Context, f CustomerFilter) ([]models.Customer, error) {
	var (
		conds []string
		args  []any
	)
	if f.Plant != "" {
		conds = append(conds, "plant = ?")
		args = append(args, f.Plant)
	}
	if f.Role != "" {
		conds = append(conds, "role = ?")
		args = append(args, f.Role)
	}

	q := fmt.Sprintf(`SELECT %s FROM %s`, customerColumns, r.table)
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY email ASC"
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	ctx, cancel := r.q.withTimeout(ctx)
	defer cancel()

	rows, err := r.q.db.QueryContext(ctx, r.q.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	out := make([]models.Customer, 0, 32)
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Email, &c.FullName, &c.Role, &c.Plant, &c.PasswordHash, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByRole removes every customer holding role and reports how many went.
func (r *CustomerSQL) DeleteByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := r.q.withTimeout(ctx)
	defer cancel()

	res, err := r.q.db.ExecContext(ctx, r.deleteByRoleSQL(), role)
	if err != nil {
		return 0, fmt.Errorf("delete customers with role %q: %w", role, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for role %q: %w", role, err)
	}
	return n, nil
}
