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

// GalleryRepositoryImpl implements GalleryRepository for PostgreSQL
type GalleryRepositoryImpl struct {
	db *sqlx.DB
}

// NewGalleryRepository creates a new PostgreSQL gallery repository
func NewGalleryRepository(db *sqlx.DB) ports.GalleryRepository {
	return &GalleryRepositoryImpl{db: db}
}

func (r *GalleryRepositoryImpl) Create(ctx context.Context, img *models.GalleryImage) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO gallery_images (id, title, url, public_id, uploader_id, tags, created_at)
		VALUES (:id, :title, :url, :public_id, :uploader_id, :tags, NOW())
	`, img)
	return err
}

func (r *GalleryRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error) {
	var img models.GalleryImage
	err := r.db.GetContext(ctx, &img, `
		SELECT id, title, url, public_id, uploader_id, tags, created_at
		FROM gallery_images WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("gallery image")
		}
		return nil, err
	}
	return &img, nil
}

func (r *GalleryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "gallery image")
}

func (r *GalleryRepositoryImpl) ListByUploader(ctx context.Context, uploaderID uuid.UUID) ([]*models.GalleryImage, error) {
	var imgs []*models.GalleryImage
	err := r.db.SelectContext(ctx, &imgs, `
		SELECT id, title, url, public_id, uploader_id, tags, created_at
		FROM gallery_images WHERE uploader_id = $1
		ORDER BY created_at DESC
	`, uploaderID)
	return imgs, err
}

func (r *GalleryRepositoryImpl) List(ctx context.Context) ([]*models.GalleryImage, error) {
	var imgs []*models.GalleryImage
	err := r.db.SelectContext(ctx, &imgs, `
		SELECT id, title, url, public_id, uploader_id, tags, created_at
		FROM gallery_images ORDER BY created_at DESC
	`)
	return imgs, err
}
