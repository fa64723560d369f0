package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"tourhub/models"
)

func TestProber_Probe(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantUp     bool
		wantStatus int
	}{
		{name: "200 is up", status: http.StatusOK, wantUp: true, wantStatus: 200},
		{name: "301 is up", status: http.StatusMovedPermanently, wantUp: true, wantStatus: 301},
		{name: "404 is down", status: http.StatusNotFound, wantUp: false, wantStatus: 404},
		{name: "500 is down", status: http.StatusInternalServerError, wantUp: false, wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			// Redirect-following would mask the 301 case.
			client := &http.Client{
				CheckRedirect: func(req *http.Request, via []*http.Request) error {
					return http.ErrUseLastResponse
				},
			}
			p := NewProber(client, time.Second)
			m := &models.Monitor{ID: uuid.New(), Name: "test", URL: srv.URL}

			check := p.Probe(context.Background(), m)
			if check.Up != tt.wantUp {
				t.Errorf("Up = %v, want %v", check.Up, tt.wantUp)
			}
			if check.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", check.StatusCode, tt.wantStatus)
			}
			if check.MonitorID != m.ID {
				t.Errorf("MonitorID = %s, want %s", check.MonitorID, m.ID)
			}
		})
	}
}

func TestProber_TransportFailure(t *testing.T) {
	p := NewProber(nil, 100*time.Millisecond)
	m := &models.Monitor{ID: uuid.New(), URL: "http://127.0.0.1:1"}

	check := p.Probe(context.Background(), m)
	if check.Up {
		t.Error("unreachable target reported up")
	}
	if check.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 on transport failure", check.StatusCode)
	}
}

// fakeMonitorRepo records checks in memory for scheduler tests.
type fakeMonitorRepo struct {
	mu       sync.Mutex
	monitors []*models.Monitor
	checks   []*models.MonitorCheck
}

func (f *fakeMonitorRepo) Create(ctx context.Context, m *models.Monitor) error  { return nil }
func (f *fakeMonitorRepo) Update(ctx context.Context, m *models.Monitor) error  { return nil }
func (f *fakeMonitorRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeMonitorRepo) List(ctx context.Context) ([]*models.Monitor, error)  { return f.monitors, nil }
func (f *fakeMonitorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Monitor, error) {
	return nil, nil
}

func (f *fakeMonitorRepo) ListEnabled(ctx context.Context) ([]*models.Monitor, error) {
	return f.monitors, nil
}

func (f *fakeMonitorRepo) RecordCheck(ctx context.Context, check *models.MonitorCheck, retain int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks = append(f.checks, check)
	return nil
}

func (f *fakeMonitorRepo) RecentChecks(ctx context.Context, monitorID uuid.UUID, limit int) ([]*models.MonitorCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checks, nil
}

func (f *fakeMonitorRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.checks)
}

func TestScheduler_ProbesAndStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := &fakeMonitorRepo{
		monitors: []*models.Monitor{
			{ID: uuid.New(), Name: "a", URL: srv.URL, IntervalSeconds: 1, Enabled: true},
			{ID: uuid.New(), Name: "b", URL: srv.URL, IntervalSeconds: 1, Enabled: true},
		},
	}
	s := NewScheduler(repo, NewProber(srv.Client(), time.Second), zap.NewNop(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// The first probe fires immediately for every monitor.
	deadline := time.After(2 * time.Second)
	for repo.count() < 2 {
		select {
		case <-deadline:
			t.Fatalf("only %d checks recorded before deadline", repo.count())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v on cancel, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestSummarize(t *testing.T) {
	id := uuid.New()
	checks := []*models.MonitorCheck{
		{MonitorID: id, Up: true, LatencyMS: 10},
		{MonitorID: id, Up: true, LatencyMS: 20},
		{MonitorID: id, Up: false, LatencyMS: 30},
		{MonitorID: id, Up: true, LatencyMS: 40},
	}

	s := Summarize(id, checks)
	if s.Checks != 4 {
		t.Errorf("Checks = %d, want 4", s.Checks)
	}
	if s.UptimeRatio != 0.75 {
		t.Errorf("UptimeRatio = %v, want 0.75", s.UptimeRatio)
	}
	if s.LatencyMean != 25 {
		t.Errorf("LatencyMean = %v, want 25", s.LatencyMean)
	}
	if s.LatencyP50 != 25 {
		t.Errorf("LatencyP50 = %v, want 25", s.LatencyP50)
	}
	if s.LatencyP95 < s.LatencyP50 {
		t.Errorf("p95 %v below p50 %v", s.LatencyP95, s.LatencyP50)
	}
}

func TestSummarize_Empty(t *testing.T) {
	id := uuid.New()
	s := Summarize(id, nil)
	if s.Checks != 0 || s.UptimeRatio != 0 || s.LatencyMean != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}
