package models

// Record is a single result row keyed by column name.
type Record map[string]any
