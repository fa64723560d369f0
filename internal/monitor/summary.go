package monitor

import (
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"tourhub/models"
)

// Summarize aggregates a monitor's retained check window into uptime
// and latency percentiles.
func Summarize(monitorID uuid.UUID, checks []*models.MonitorCheck) models.MonitorSummary {
	summary := models.MonitorSummary{MonitorID: monitorID, Checks: len(checks)}
	if len(checks) == 0 {
		return summary
	}

	latencies := make([]float64, 0, len(checks))
	up := 0
	for _, check := range checks {
		latencies = append(latencies, check.LatencyMS)
		if check.Up {
			up++
		}
	}
	summary.UptimeRatio = float64(up) / float64(len(checks))

	// Percentile errors only occur on empty input, which is handled
	// above.
	summary.LatencyMean, _ = stats.Mean(latencies)
	summary.LatencyP50, _ = stats.Median(latencies)
	summary.LatencyP95, _ = stats.Percentile(latencies, 95)
	summary.LatencyP99, _ = stats.Percentile(latencies, 99)

	return summary
}
