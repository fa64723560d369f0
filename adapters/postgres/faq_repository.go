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

// FAQRepositoryImpl implements FAQRepository for PostgreSQL
type FAQRepositoryImpl struct {
	db *sqlx.DB
}

// NewFAQRepository creates a new PostgreSQL FAQ repository
func NewFAQRepository(db *sqlx.DB) ports.FAQRepository {
	return &FAQRepositoryImpl{db: db}
}

func (r *FAQRepositoryImpl) Create(ctx context.Context, faq *models.FAQ) error {
	if faq.ID == uuid.Nil {
		faq.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO faqs (id, question, answer, position, created_at, updated_at)
		VALUES (:id, :question, :answer, :position, NOW(), NOW())
	`, faq)
	return err
}

func (r *FAQRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	var faq models.FAQ
	err := r.db.GetContext(ctx, &faq, `
		SELECT id, question, answer, position, created_at, updated_at
		FROM faqs WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("faq")
		}
		return nil, err
	}
	return &faq, nil
}

func (r *FAQRepositoryImpl) Update(ctx context.Context, faq *models.FAQ) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE faqs
		SET question = :question, answer = :answer, position = :position, updated_at = NOW()
		WHERE id = :id
	`, faq)
	if err != nil {
		return err
	}
	return requireRow(res, "faq")
}

func (r *FAQRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "faq")
}

func (r *FAQRepositoryImpl) List(ctx context.Context) ([]*models.FAQ, error) {
	var faqs []*models.FAQ
	err := r.db.SelectContext(ctx, &faqs, `
		SELECT id, question, answer, position, created_at, updated_at
		FROM faqs ORDER BY position ASC, created_at ASC
	`)
	return faqs, err
}
