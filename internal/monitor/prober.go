package monitor

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tourhub/models"
)

// Prober issues a single HTTP check against a monitor URL.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// NewProber creates a prober. A nil client falls back to a default
// with the probe timeout applied.
func NewProber(client *http.Client, timeout time.Duration) *Prober {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Prober{client: client, timeout: timeout}
}

// Probe requests the monitor URL and records the outcome. Transport
// failures count as down with a zero status code.
func (p *Prober) Probe(ctx context.Context, monitor *models.Monitor) *models.MonitorCheck {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	check := &models.MonitorCheck{
		ID:        uuid.New(),
		MonitorID: monitor.ID,
		CheckedAt: time.Now().UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, monitor.URL, nil)
	if err != nil {
		return check
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	check.LatencyMS = float64(time.Since(start)) / float64(time.Millisecond)
	if err != nil {
		return check
	}
	defer resp.Body.Close()

	check.StatusCode = resp.StatusCode
	check.Up = resp.StatusCode >= 200 && resp.StatusCode < 400
	return check
}
