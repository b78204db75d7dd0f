package models

import "time"

// PlantMetric is one day of energy/throughput figures for a plant.
type PlantMetric struct {
	PlantID        string    `json:"plant_id"`
	PlantName      string    `json:"plant_name"`
	MetricDate     time.Time `json:"metric_date"`
	EnergyKWh      float64   `json:"energy_kwh"`
	ThroughputTons float64   `json:"throughput_tons"`
	UptimePct      float64   `json:"uptime_pct"`
}

// PlantSummary aggregates every metric row of a single plant.
type PlantSummary struct {
	PlantID             string  `json:"plant_id"`
	PlantName           string  `json:"plant_name"`
	Days                int     `json:"days"`
	TotalEnergyKWh      float64 `json:"total_energy_kwh"`
	TotalThroughputTons float64 `json:"total_throughput_tons"`
	AvgUptimePct        float64 `json:"avg_uptime_pct"`
	KWhPerTon           float64 `json:"kwh_per_ton"`
}
