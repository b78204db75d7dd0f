package service

import "time"

// Row limits applied when callers omit or overstate ?limit.
const (
	DefaultPreviewLimit = 10
	DefaultListLimit    = 100
	MaxLimit            = 1000
)

// CustomerFilter narrows customer listings. Empty fields do not filter.
type CustomerFilter struct {
	Plant string
	Role  string
	Limit int
}

// MetricsFilter supports history filtering by plant and inclusive date range.
type MetricsFilter struct {
	Plant string
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Limit int
}

// CustomerInput is a validated create request; Password is plain text.
type CustomerInput struct {
	Email    string
	FullName string
	Role     string
	Plant    string
	Password string
}

// clampLimit maps non-positive values to def and caps at MaxLimit.
func clampLimit(n, def int) int {
	if n <= 0 {
		return def
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
