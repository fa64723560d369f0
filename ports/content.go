package ports

import (
	"context"

	"github.com/google/uuid"

	"tourhub/models"
)

// PostRepository persists tour posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	// GetBySlug also increments the post's view counter.
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter models.PostFilter) (int64, error)
	Page(ctx context.Context, filter models.PostFilter, limit, offset int) ([]*models.Post, error)
	// Each walks the filtered set in creation order without loading it
	// whole; used by the streaming half of hybrid pagination.
	Each(ctx context.Context, filter models.PostFilter, fn func(*models.Post) error) error
}

// CommentRepository persists post comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListApprovedByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	ListPending(ctx context.Context) ([]*models.Comment, error)
}

// FAQRepository persists FAQ entries.
type FAQRepository interface {
	Create(ctx context.Context, faq *models.FAQ) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error)
	Update(ctx context.Context, faq *models.FAQ) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.FAQ, error)
}

// DestinationRepository persists destinations.
type DestinationRepository interface {
	Create(ctx context.Context, dest *models.Destination) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Destination, error)
	GetBySlug(ctx context.Context, slug string) (*models.Destination, error)
	Update(ctx context.Context, dest *models.Destination) error
	// Delete fails with a conflict error when posts still reference
	// the destination.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Destination, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, cat *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Category, error)
}

// SubscriberRepository persists newsletter subscribers.
type SubscriberRepository interface {
	// Upsert inserts or reactivates the subscriber for the email and
	// returns the stored row.
	Upsert(ctx context.Context, email string) (*models.Subscriber, error)
	Unsubscribe(ctx context.Context, token string) error
	Count(ctx context.Context) (int64, error)
	Page(ctx context.Context, limit, offset int) ([]*models.Subscriber, error)
	Each(ctx context.Context, fn func(*models.Subscriber) error) error
}

// GalleryRepository persists gallery image records.
type GalleryRepository interface {
	Create(ctx context.Context, img *models.GalleryImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUploader(ctx context.Context, uploaderID uuid.UUID) ([]*models.GalleryImage, error)
	List(ctx context.Context) ([]*models.GalleryImage, error)
}
