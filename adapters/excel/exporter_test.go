package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tourhub/models"
	"tourhub/ports"
)

// stubBookingRepo serves a fixed slice; only Each is exercised here.
type stubBookingRepo struct {
	ports.BookingRepository
	bookings []*models.Booking
}

func (s *stubBookingRepo) Each(ctx context.Context, filter ports.BookingFilter, fn func(*models.Booking) error) error {
	for _, b := range s.bookings {
		if err := fn(b); err != nil {
			return err
		}
	}
	return nil
}

type stubSubscriberRepo struct {
	ports.SubscriberRepository
	subs []*models.Subscriber
}

func (s *stubSubscriberRepo) Each(ctx context.Context, fn func(*models.Subscriber) error) error {
	for _, sub := range s.subs {
		if err := fn(sub); err != nil {
			return err
		}
	}
	return nil
}

func TestExporter_Bookings(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubBookingRepo{bookings: []*models.Booking{
		{
			ID:            uuid.New(),
			PostID:        uuid.New(),
			CustomerName:  "Ada Lovelace",
			CustomerEmail: "ada@example.com",
			StartDate:     start,
			Guests:        2,
			TotalCents:    129900,
			Currency:      "USD",
			Status:        models.BookingConfirmed,
			CreatedAt:     start.Add(-72 * time.Hour),
		},
		{
			ID:           uuid.New(),
			PostID:       uuid.New(),
			CustomerName: "Grace Hopper",
			Guests:       1,
			TotalCents:   50000,
			Currency:     "USD",
			Status:       models.BookingPending,
		},
	}}

	var buf bytes.Buffer
	e := NewExporter(repo, &stubSubscriberRepo{})
	require.NoError(t, e.Bookings(context.Background(), ports.BookingFilter{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err, "exported file must be a readable workbook")
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header + 2 data rows")

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Customer", rows[0][2])
	assert.Equal(t, "Ada Lovelace", rows[1][2])
	assert.Equal(t, "1299.00", rows[1][7])
	assert.Equal(t, "pending", rows[2][9])
}

func TestExporter_Subscribers(t *testing.T) {
	at := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	repo := &stubSubscriberRepo{subs: []*models.Subscriber{
		{Email: "one@example.com", SubscribedAt: at},
		{Email: "two@example.com", SubscribedAt: at.Add(time.Hour)},
	}}

	var buf bytes.Buffer
	e := NewExporter(&stubBookingRepo{}, repo)
	require.NoError(t, e.Subscribers(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Subscribers")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "one@example.com", rows[1][0])
	assert.Equal(t, at.Add(time.Hour).Format(time.RFC3339), rows[2][1])
}

func TestExporter_EmptySets(t *testing.T) {
	var buf bytes.Buffer
	e := NewExporter(&stubBookingRepo{}, &stubSubscriberRepo{})
	require.NoError(t, e.Bookings(context.Background(), ports.BookingFilter{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
