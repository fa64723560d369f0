package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

// BookingInput is the public booking request.
type BookingInput struct {
	PostID        uuid.UUID `json:"post_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	StartDate     time.Time `json:"start_date"`
	Guests        int       `json:"guests"`
}

// BookingService owns booking creation, status transitions and the
// admin revenue summary.
type BookingService struct {
	bookings ports.BookingRepository
	posts    ports.PostRepository
	now      func() time.Time
}

// NewBookingService creates a booking service. A nil now falls back
// to time.Now.
func NewBookingService(bookings ports.BookingRepository, posts ports.PostRepository, now func() time.Time) *BookingService {
	if now == nil {
		now = time.Now
	}
	return &BookingService{bookings: bookings, posts: posts, now: now}
}

// Create books a published tour, snapshotting the current price.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (*models.Booking, error) {
	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostPublished {
		return nil, errors.Conflict("tour is not open for booking")
	}

	booking := &models.Booking{
		PostID:         post.ID,
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		CustomerPhone:  in.CustomerPhone,
		StartDate:      in.StartDate,
		Guests:         in.Guests,
		UnitPriceCents: post.PriceCents,
		TotalCents:     post.PriceCents * int64(in.Guests),
		Currency:       post.Currency,
		Status:         models.BookingPending,
	}
	if err := booking.Validate(s.now()); err != nil {
		return nil, err
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Transition moves a booking to a new status under the state guard.
// Sellers may only act on bookings for their own tours.
func (s *BookingService) Transition(ctx context.Context, bookingID, actorID uuid.UUID, actorRole models.Role, to models.BookingStatus) (*models.Booking, error) {
	if to != models.BookingConfirmed && to != models.BookingCancelled {
		return nil, errors.InvalidInput("unknown booking status")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actorRole != models.RoleAdmin {
		post, err := s.posts.GetByID(ctx, booking.PostID)
		if err != nil {
			return nil, err
		}
		if post.AuthorID != actorID {
			return nil, errors.Forbidden("not the tour owner")
		}
	}

	if !booking.CanTransition(to) {
		return nil, errors.Conflict("booking cannot move to " + string(to))
	}
	// Conditional on the status just read; a concurrent transition
	// that landed in between comes back as a conflict instead of
	// being overwritten.
	if err := s.bookings.UpdateStatus(ctx, bookingID, booking.Status, to); err != nil {
		return nil, err
	}
	booking.Status = to
	return booking, nil
}

// Stats computes the revenue summary over the filtered bookings.
func (s *BookingService) Stats(ctx context.Context, filter ports.BookingFilter) (*models.BookingStats, error) {
	totals, err := s.bookings.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.bookings.CountByStatus(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &models.BookingStats{
		Count:    len(totals),
		ByStatus: byStatus,
	}
	for _, t := range totals {
		result.RevenueCents += int64(t)
	}
	if len(totals) > 0 {
		result.MeanCents = stat.Mean(totals, nil)
	}
	// StdDev uses the n-1 denominator and needs two samples.
	if len(totals) > 1 {
		result.StdDevCents = stat.StdDev(totals, nil)
	}
	return result, nil
}
