package app

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newBookingService(bookings *fakeBookingRepo, posts *fakePostRepo) *BookingService {
	return NewBookingService(bookings, posts, func() time.Time { return testNow })
}

func validBookingInput(postID uuid.UUID) BookingInput {
	return BookingInput{
		PostID:        postID,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		StartDate:     testNow.Add(7 * 24 * time.Hour),
		Guests:        3,
	}
}

func TestBookingService_Create(t *testing.T) {
	posts := newFakePostRepo()
	bookings := newFakeBookingRepo()
	s := newBookingService(bookings, posts)

	post := posts.seed(&models.Post{
		Title:      "Bali Trek",
		Status:     models.PostPublished,
		PriceCents: 49900,
		Currency:   "USD",
	})

	b, err := s.Create(context.Background(), validBookingInput(post.ID))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.Status != models.BookingPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.UnitPriceCents != 49900 {
		t.Errorf("unit price = %d, want snapshot of post price", b.UnitPriceCents)
	}
	if b.TotalCents != 49900*3 {
		t.Errorf("total = %d, want price * guests", b.TotalCents)
	}
	if b.Currency != "USD" {
		t.Errorf("currency = %s", b.Currency)
	}
}

func TestBookingService_Create_PriceSnapshotIsStable(t *testing.T) {
	posts := newFakePostRepo()
	bookings := newFakeBookingRepo()
	s := newBookingService(bookings, posts)

	post := posts.seed(&models.Post{Status: models.PostPublished, PriceCents: 10000, Currency: "USD"})

	b, err := s.Create(context.Background(), validBookingInput(post.ID))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Raising the price afterwards must not touch the booking.
	post.PriceCents = 99999
	stored, _ := bookings.GetByID(context.Background(), b.ID)
	if stored.UnitPriceCents != 10000 {
		t.Errorf("snapshot changed to %d", stored.UnitPriceCents)
	}
}

func TestBookingService_Create_Rejections(t *testing.T) {
	posts := newFakePostRepo()
	bookings := newFakeBookingRepo()
	s := newBookingService(bookings, posts)
	ctx := context.Background()

	draft := posts.seed(&models.Post{Status: models.PostDraft, PriceCents: 100})
	published := posts.seed(&models.Post{Status: models.PostPublished, PriceCents: 100, Slug: "p"})

	t.Run("draft tour", func(t *testing.T) {
		_, err := s.Create(ctx, validBookingInput(draft.ID))
		if errors.GetCode(err) != errors.CodeConflict {
			t.Errorf("err = %v, want CONFLICT", err)
		}
	})

	t.Run("unknown tour", func(t *testing.T) {
		_, err := s.Create(ctx, validBookingInput(uuid.New()))
		if errors.GetCode(err) != errors.CodeNotFound {
			t.Errorf("err = %v, want NOT_FOUND", err)
		}
	})

	t.Run("past start date", func(t *testing.T) {
		in := validBookingInput(published.ID)
		in.StartDate = testNow.Add(-time.Hour)
		_, err := s.Create(ctx, in)
		if errors.GetCode(err) != errors.CodeValidationError {
			t.Errorf("err = %v, want VALIDATION_ERROR", err)
		}
	})
}

func TestBookingService_Transition(t *testing.T) {
	posts := newFakePostRepo()
	bookings := newFakeBookingRepo()
	s := newBookingService(bookings, posts)
	ctx := context.Background()

	seller := uuid.New()
	other := uuid.New()
	post := posts.seed(&models.Post{Status: models.PostPublished, AuthorID: seller})
	booking := bookings.seed(&models.Booking{PostID: post.ID, Status: models.BookingPending})

	t.Run("owner confirms", func(t *testing.T) {
		got, err := s.Transition(ctx, booking.ID, seller, models.RoleSeller, models.BookingConfirmed)
		if err != nil {
			t.Fatalf("Transition failed: %v", err)
		}
		if got.Status != models.BookingConfirmed {
			t.Errorf("status = %s", got.Status)
		}
	})

	t.Run("other seller forbidden", func(t *testing.T) {
		_, err := s.Transition(ctx, booking.ID, other, models.RoleSeller, models.BookingCancelled)
		if errors.GetCode(err) != errors.CodeForbidden {
			t.Errorf("err = %v, want FORBIDDEN", err)
		}
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		_, err := s.Transition(ctx, booking.ID, other, models.RoleAdmin, models.BookingCancelled)
		if err != nil {
			t.Errorf("admin transition failed: %v", err)
		}
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		_, err := s.Transition(ctx, booking.ID, seller, models.RoleSeller, models.BookingConfirmed)
		if errors.GetCode(err) != errors.CodeConflict {
			t.Errorf("err = %v, want CONFLICT", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := s.Transition(ctx, booking.ID, seller, models.RoleSeller, "refunded")
		if errors.GetCode(err) != errors.CodeInvalidInput {
			t.Errorf("err = %v, want INVALID_INPUT", err)
		}
	})
}

// staleReadBookingRepo hands out a fixed snapshot from GetByID while
// writes go against the live store, mimicking a second request that
// read the booking before a concurrent transition committed.
type staleReadBookingRepo struct {
	*fakeBookingRepo
	snapshot models.Booking
}

func (r *staleReadBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	copied := r.snapshot
	return &copied, nil
}

func TestBookingService_Transition_ConcurrentWritesDoNotRevive(t *testing.T) {
	posts := newFakePostRepo()
	bookings := newFakeBookingRepo()
	ctx := context.Background()

	seller := uuid.New()
	post := posts.seed(&models.Post{Status: models.PostPublished, AuthorID: seller})
	booking := bookings.seed(&models.Booking{PostID: post.ID, Status: models.BookingPending})

	// Both requests read the booking while it was still pending; the
	// cancel commits first.
	stale := &staleReadBookingRepo{fakeBookingRepo: bookings, snapshot: *booking}

	s := newBookingService(bookings, posts)
	if _, err := s.Transition(ctx, booking.ID, seller, models.RoleSeller, models.BookingCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	raced := NewBookingService(stale, posts, func() time.Time { return testNow })
	_, err := raced.Transition(ctx, booking.ID, seller, models.RoleSeller, models.BookingConfirmed)
	if errors.GetCode(err) != errors.CodeConflict {
		t.Errorf("err = %v, want CONFLICT for the losing transition", err)
	}

	stored, _ := bookings.GetByID(ctx, booking.ID)
	if stored.Status != models.BookingCancelled {
		t.Errorf("status = %s, cancelled booking must stay cancelled", stored.Status)
	}
}

func TestBookingService_Stats(t *testing.T) {
	bookings := newFakeBookingRepo()
	bookings.totals = []float64{10000, 20000, 30000}
	bookings.byStatus = map[string]int{"pending": 1, "confirmed": 2}
	s := newBookingService(bookings, newFakePostRepo())

	stats, err := s.Stats(context.Background(), ports.BookingFilter{})
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Count != 3 {
		t.Errorf("count = %d", stats.Count)
	}
	if stats.RevenueCents != 60000 {
		t.Errorf("revenue = %d", stats.RevenueCents)
	}
	if stats.MeanCents != 20000 {
		t.Errorf("mean = %v", stats.MeanCents)
	}
	if math.Abs(stats.StdDevCents-10000) > 1e-9 {
		t.Errorf("stddev = %v, want 10000", stats.StdDevCents)
	}
	if stats.ByStatus["confirmed"] != 2 {
		t.Errorf("byStatus = %v", stats.ByStatus)
	}
}

func TestBookingService_Stats_SmallSamples(t *testing.T) {
	bookings := newFakeBookingRepo()
	s := newBookingService(bookings, newFakePostRepo())
	ctx := context.Background()

	// Empty set: all zeros, no NaN.
	stats, err := s.Stats(ctx, ports.BookingFilter{})
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Count != 0 || stats.MeanCents != 0 || stats.StdDevCents != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	// Single sample: stddev is undefined and must stay zero.
	bookings.totals = []float64{5000}
	stats, err = s.Stats(ctx, ports.BookingFilter{})
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.MeanCents != 5000 {
		t.Errorf("mean = %v", stats.MeanCents)
	}
	if stats.StdDevCents != 0 || math.IsNaN(stats.StdDevCents) {
		t.Errorf("stddev = %v, want 0 for single sample", stats.StdDevCents)
	}
}
