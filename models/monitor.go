package models

import (
	"time"

	"github.com/google/uuid"
)

// Monitor is a URL probed on a fixed interval by the background
// scheduler.
type Monitor struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	URL             string    `json:"url" db:"url"`
	IntervalSeconds int       `json:"interval_seconds" db:"interval_seconds"`
	Enabled         bool      `json:"enabled" db:"enabled"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Interval returns the probe interval as a duration, never below one
// second.
func (m *Monitor) Interval() time.Duration {
	if m.IntervalSeconds < 1 {
		return time.Second
	}
	return time.Duration(m.IntervalSeconds) * time.Second
}

// MonitorCheck is a single probe result.
type MonitorCheck struct {
	ID         uuid.UUID `json:"id" db:"id"`
	MonitorID  uuid.UUID `json:"monitor_id" db:"monitor_id"`
	StatusCode int       `json:"status_code" db:"status_code"`
	LatencyMS  float64   `json:"latency_ms" db:"latency_ms"`
	Up         bool      `json:"up" db:"up"`
	CheckedAt  time.Time `json:"checked_at" db:"checked_at"`
}

// MonitorSummary aggregates the retained check window for a monitor.
type MonitorSummary struct {
	MonitorID   uuid.UUID `json:"monitor_id"`
	Checks      int       `json:"checks"`
	UptimeRatio float64   `json:"uptime_ratio"`
	LatencyMean float64   `json:"latency_mean_ms"`
	LatencyP50  float64   `json:"latency_p50_ms"`
	LatencyP95  float64   `json:"latency_p95_ms"`
	LatencyP99  float64   `json:"latency_p99_ms"`
}
