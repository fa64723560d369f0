package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

// MonitorRepositoryImpl implements MonitorRepository for PostgreSQL
type MonitorRepositoryImpl struct {
	db *sqlx.DB
}

// NewMonitorRepository creates a new PostgreSQL monitor repository
func NewMonitorRepository(db *sqlx.DB) ports.MonitorRepository {
	return &MonitorRepositoryImpl{db: db}
}

func (r *MonitorRepositoryImpl) Create(ctx context.Context, monitor *models.Monitor) error {
	if monitor.ID == uuid.Nil {
		monitor.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO monitors (id, name, url, interval_seconds, enabled, created_at, updated_at)
		VALUES (:id, :name, :url, :interval_seconds, :enabled, NOW(), NOW())
	`, monitor)
	return err
}

func (r *MonitorRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Monitor, error) {
	var monitor models.Monitor
	err := r.db.GetContext(ctx, &monitor, `
		SELECT id, name, url, interval_seconds, enabled, created_at, updated_at
		FROM monitors WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("monitor")
		}
		return nil, err
	}
	return &monitor, nil
}

func (r *MonitorRepositoryImpl) Update(ctx context.Context, monitor *models.Monitor) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE monitors
		SET name = :name, url = :url, interval_seconds = :interval_seconds,
			enabled = :enabled, updated_at = NOW()
		WHERE id = :id
	`, monitor)
	if err != nil {
		return err
	}
	return requireRow(res, "monitor")
}

func (r *MonitorRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM monitors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "monitor")
}

func (r *MonitorRepositoryImpl) ListEnabled(ctx context.Context) ([]*models.Monitor, error) {
	var monitors []*models.Monitor
	err := r.db.SelectContext(ctx, &monitors, `
		SELECT id, name, url, interval_seconds, enabled, created_at, updated_at
		FROM monitors WHERE enabled = TRUE ORDER BY created_at ASC
	`)
	return monitors, err
}

func (r *MonitorRepositoryImpl) List(ctx context.Context) ([]*models.Monitor, error) {
	var monitors []*models.Monitor
	err := r.db.SelectContext(ctx, &monitors, `
		SELECT id, name, url, interval_seconds, enabled, created_at, updated_at
		FROM monitors ORDER BY created_at ASC
	`)
	return monitors, err
}

// RecordCheck appends the probe result and prunes history past the
// retain window in one transaction.
func (r *MonitorRepositoryImpl) RecordCheck(ctx context.Context, check *models.MonitorCheck, retain int) error {
	if check.ID == uuid.Nil {
		check.ID = uuid.New()
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO monitor_checks (id, monitor_id, status_code, latency_ms, up, checked_at)
		VALUES (:id, :monitor_id, :status_code, :latency_ms, :up, :checked_at)
	`, check)
	if err != nil {
		return err
	}

	if retain > 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM monitor_checks
			WHERE monitor_id = $1 AND id NOT IN (
				SELECT id FROM monitor_checks
				WHERE monitor_id = $1
				ORDER BY checked_at DESC LIMIT $2
			)
		`, check.MonitorID, retain)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *MonitorRepositoryImpl) RecentChecks(ctx context.Context, monitorID uuid.UUID, limit int) ([]*models.MonitorCheck, error) {
	var checks []*models.MonitorCheck
	err := r.db.SelectContext(ctx, &checks, `
		SELECT id, monitor_id, status_code, latency_ms, up, checked_at
		FROM monitor_checks WHERE monitor_id = $1
		ORDER BY checked_at DESC LIMIT $2
	`, monitorID, limit)
	return checks, err
}
