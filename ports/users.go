package ports

import (
	"context"

	"github.com/google/uuid"

	"tourhub/models"
)

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetRole(ctx context.Context, id uuid.UUID, role models.Role) error
	List(ctx context.Context) ([]*models.User, error)
}

// SellerApplicationRepository persists seller applications.
type SellerApplicationRepository interface {
	Create(ctx context.Context, app *models.SellerApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SellerApplication, error)
	GetPendingByUser(ctx context.Context, userID uuid.UUID) (*models.SellerApplication, error)
	Review(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, reviewer uuid.UUID) error
	// Reopen puts a reviewed application back to pending, undoing a
	// review whose follow-up work failed.
	Reopen(ctx context.Context, id uuid.UUID) error
	ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]*models.SellerApplication, error)
}
