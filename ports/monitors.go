package ports

import (
	"context"

	"github.com/google/uuid"

	"tourhub/models"
)

// MonitorRepository persists monitors and their probe results.
type MonitorRepository interface {
	Create(ctx context.Context, monitor *models.Monitor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Monitor, error)
	Update(ctx context.Context, monitor *models.Monitor) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListEnabled(ctx context.Context) ([]*models.Monitor, error)
	List(ctx context.Context) ([]*models.Monitor, error)

	// RecordCheck appends a probe result and prunes the monitor's
	// history beyond retain rows.
	RecordCheck(ctx context.Context, check *models.MonitorCheck, retain int) error
	RecentChecks(ctx context.Context, monitorID uuid.UUID, limit int) ([]*models.MonitorCheck, error)
}
