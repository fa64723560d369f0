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

// SellerApplicationRepositoryImpl implements SellerApplicationRepository for PostgreSQL
type SellerApplicationRepositoryImpl struct {
	db *sqlx.DB
}

// NewSellerApplicationRepository creates a new PostgreSQL seller application repository
func NewSellerApplicationRepository(db *sqlx.DB) ports.SellerApplicationRepository {
	return &SellerApplicationRepositoryImpl{db: db}
}

func (r *SellerApplicationRepositoryImpl) Create(ctx context.Context, app *models.SellerApplication) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	app.Status = models.ApplicationPending
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO seller_applications (id, user_id, company_name, description, status, created_at, updated_at)
		VALUES (:id, :user_id, :company_name, :description, :status, NOW(), NOW())
	`, app)
	return err
}

func (r *SellerApplicationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.SellerApplication, error) {
	var app models.SellerApplication
	err := r.db.GetContext(ctx, &app, `
		SELECT id, user_id, company_name, description, status, reviewed_by, created_at, updated_at
		FROM seller_applications WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("seller application")
		}
		return nil, err
	}
	return &app, nil
}

// GetPendingByUser returns the user's open application, if any.
func (r *SellerApplicationRepositoryImpl) GetPendingByUser(ctx context.Context, userID uuid.UUID) (*models.SellerApplication, error) {
	var app models.SellerApplication
	err := r.db.GetContext(ctx, &app, `
		SELECT id, user_id, company_name, description, status, reviewed_by, created_at, updated_at
		FROM seller_applications WHERE user_id = $1 AND status = $2
	`, userID, models.ApplicationPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("seller application")
		}
		return nil, err
	}
	return &app, nil
}

// Review records the decision. Only pending applications can be
// reviewed; reviewing a settled one is a conflict.
func (r *SellerApplicationRepositoryImpl) Review(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, reviewer uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE seller_applications
		SET status = $2, reviewed_by = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`, id, status, reviewer, models.ApplicationPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.Conflict("seller application already reviewed")
	}
	return nil
}

// Reopen reverts a settled application to pending.
func (r *SellerApplicationRepositoryImpl) Reopen(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE seller_applications
		SET status = $2, reviewed_by = NULL, updated_at = NOW()
		WHERE id = $1
	`, id, models.ApplicationPending)
	if err != nil {
		return err
	}
	return requireRow(res, "seller application")
}

func (r *SellerApplicationRepositoryImpl) ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]*models.SellerApplication, error) {
	var apps []*models.SellerApplication
	err := r.db.SelectContext(ctx, &apps, `
		SELECT id, user_id, company_name, description, status, reviewed_by, created_at, updated_at
		FROM seller_applications WHERE status = $1 ORDER BY created_at ASC
	`, status)
	return apps, err
}
