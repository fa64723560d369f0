package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

// DestinationRepositoryImpl implements DestinationRepository for PostgreSQL
type DestinationRepositoryImpl struct {
	db *sqlx.DB
}

// NewDestinationRepository creates a new PostgreSQL destination repository
func NewDestinationRepository(db *sqlx.DB) ports.DestinationRepository {
	return &DestinationRepositoryImpl{db: db}
}

func (r *DestinationRepositoryImpl) Create(ctx context.Context, dest *models.Destination) error {
	if dest.ID == uuid.Nil {
		dest.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO destinations (id, name, slug, country, description, image_url, created_at, updated_at)
		VALUES (:id, :name, :slug, :country, :description, :image_url, NOW(), NOW())
	`, dest)
	return translateUnique(err, "destination slug already in use")
}

func (r *DestinationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	var dest models.Destination
	err := r.db.GetContext(ctx, &dest, `
		SELECT id, name, slug, country, description, image_url, created_at, updated_at
		FROM destinations WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("destination")
		}
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Destination, error) {
	var dest models.Destination
	err := r.db.GetContext(ctx, &dest, `
		SELECT id, name, slug, country, description, image_url, created_at, updated_at
		FROM destinations WHERE slug = $1
	`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("destination")
		}
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepositoryImpl) Update(ctx context.Context, dest *models.Destination) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE destinations
		SET name = :name, slug = :slug, country = :country,
			description = :description, image_url = :image_url, updated_at = NOW()
		WHERE id = :id
	`, dest)
	if err != nil {
		return translateUnique(err, "destination slug already in use")
	}
	return requireRow(res, "destination")
}

// Delete refuses to remove a destination still referenced by posts.
func (r *DestinationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return apperrors.Conflict("destination is referenced by posts")
		}
		return err
	}
	return requireRow(res, "destination")
}

func (r *DestinationRepositoryImpl) List(ctx context.Context) ([]*models.Destination, error) {
	var dests []*models.Destination
	err := r.db.SelectContext(ctx, &dests, `
		SELECT id, name, slug, country, description, image_url, created_at, updated_at
		FROM destinations ORDER BY name ASC
	`)
	return dests, err
}

// CategoryRepositoryImpl implements CategoryRepository for PostgreSQL
type CategoryRepositoryImpl struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(db *sqlx.DB) ports.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, cat *models.Category) error {
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, created_at, updated_at)
		VALUES (:id, :name, :slug, :description, NOW(), NOW())
	`, cat)
	return translateUnique(err, "category slug already in use")
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var cat models.Category
	err := r.db.GetContext(ctx, &cat, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("category")
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var cat models.Category
	err := r.db.GetContext(ctx, &cat, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories WHERE slug = $1
	`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("category")
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, cat *models.Category) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE categories
		SET name = :name, slug = :slug, description = :description, updated_at = NOW()
		WHERE id = :id
	`, cat)
	if err != nil {
		return translateUnique(err, "category slug already in use")
	}
	return requireRow(res, "category")
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return apperrors.Conflict("category is referenced by posts")
		}
		return err
	}
	return requireRow(res, "category")
}

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*models.Category, error) {
	var cats []*models.Category
	err := r.db.SelectContext(ctx, &cats, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories ORDER BY name ASC
	`)
	return cats, err
}

// translateUnique maps a unique-violation to a conflict error.
func translateUnique(err error, message string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return apperrors.Conflict(message)
	}
	return err
}
