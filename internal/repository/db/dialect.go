package db

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gage_backend/internal/config"
)

// Dialect covers the two ways the supported engines differ in SQL text:
// bind placeholders and table qualification.
type Dialect struct {
	Driver  string
	Catalog string
	Schema  string
}

// NewDialect builds a Dialect from the warehouse configuration.
func NewDialect(cfg config.WarehouseConfig) Dialect {
	return Dialect{Driver: cfg.Driver, Catalog: cfg.Catalog, Schema: cfg.Schema}
}

// Rebind rewrites '?' placeholders to $1..$n for postgres. Other engines
// accept '?' as is. Queries here never contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d.Driver != config.DriverPostgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Table qualifies a bare table name: catalog.schema.table on Databricks,
// schema.table on postgres, unqualified on sqlite. Empty parts are skipped.
func (d Dialect) Table(name string) string {
	var parts []string
	switch d.Driver {
	case config.DriverDatabricks:
		parts = []string{d.Catalog, d.Schema, name}
	case config.DriverPostgres:
		parts = []string{d.Schema, name}
	default:
		return name
	}
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}

const sqliteTimeLayout = "2006-01-02 15:04:05"

// CompareTime builds "column op ?" for a timestamp bound and returns the
// argument to bind. SQLite stores dates as text, so both sides go through
// datetime() to compare as instants instead of strings.
func (d Dialect) CompareTime(column, op string, t time.Time) (string, any) {
	if d.Driver == config.DriverSQLite {
		return fmt.Sprintf("datetime(%s) %s datetime(?)", column, op), t.UTC().Format(sqliteTimeLayout)
	}
	return fmt.Sprintf("%s %s ?", column, op), t.UTC()
}
