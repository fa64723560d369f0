package models

import (
	"time"

	"github.com/google/uuid"

	"tourhub/internal/errors"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a reservation for a tour. UnitPriceCents snapshots the
// post price at creation so later price edits don't change the total.
type Booking struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	PostID         uuid.UUID     `json:"post_id" db:"post_id"`
	CustomerName   string        `json:"customer_name" db:"customer_name"`
	CustomerEmail  string        `json:"customer_email" db:"customer_email"`
	CustomerPhone  string        `json:"customer_phone" db:"customer_phone"`
	StartDate      time.Time     `json:"start_date" db:"start_date"`
	Guests         int           `json:"guests" db:"guests"`
	UnitPriceCents int64         `json:"unit_price_cents" db:"unit_price_cents"`
	TotalCents     int64         `json:"total_cents" db:"total_cents"`
	Currency       string        `json:"currency" db:"currency"`
	Status         BookingStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// CanTransition reports whether a status change is allowed. Cancelled
// is terminal; pending may confirm or cancel; confirmed may cancel.
func (b *Booking) CanTransition(to BookingStatus) bool {
	switch b.Status {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCancelled
	default:
		return false
	}
}

// Validate checks a booking request before persistence.
func (b *Booking) Validate(now time.Time) error {
	if b.CustomerName == "" {
		return errors.ValidationError("customer name is required")
	}
	if b.CustomerEmail == "" {
		return errors.ValidationError("customer email is required")
	}
	if b.Guests < 1 {
		return errors.ValidationError("guest count must be at least 1")
	}
	if !b.StartDate.After(now) {
		return errors.ValidationError("start date must be in the future")
	}
	return nil
}

// BookingStats is the admin revenue summary for a set of bookings.
type BookingStats struct {
	Count        int            `json:"count"`
	RevenueCents int64          `json:"revenue_cents"`
	MeanCents    float64        `json:"mean_cents"`
	StdDevCents  float64        `json:"std_dev_cents"`
	ByStatus     map[string]int `json:"by_status"`
}
