package ports

import (
	"context"

	"github.com/google/uuid"

	"tourhub/models"
)

// BookingFilter narrows booking listings. A nil SellerID means all
// sellers; a nil Status means all statuses.
type BookingFilter struct {
	SellerID *uuid.UUID
	PostID   *uuid.UUID
	Status   *models.BookingStatus
}

// BookingRepository persists bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// UpdateStatus moves the booking from the expected current status
	// to the new one. A booking whose status no longer matches from is
	// a conflict, so concurrent transitions cannot clobber each other.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus) error
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	Page(ctx context.Context, filter BookingFilter, limit, offset int) ([]*models.Booking, error)
	Each(ctx context.Context, filter BookingFilter, fn func(*models.Booking) error) error
	// Totals returns the per-booking totals in cents for the filtered
	// set, used for revenue statistics.
	Totals(ctx context.Context, filter BookingFilter) ([]float64, error)
	CountByStatus(ctx context.Context, filter BookingFilter) (map[string]int, error)
}
