package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

const bookingColumns = `b.id, b.post_id, b.customer_name, b.customer_email, b.customer_phone,
	b.start_date, b.guests, b.unit_price_cents, b.total_cents, b.currency,
	b.status, b.created_at, b.updated_at`

// BookingRepositoryImpl implements BookingRepository for PostgreSQL
type BookingRepositoryImpl struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new PostgreSQL booking repository
func NewBookingRepository(db *sqlx.DB) ports.BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO bookings (id, post_id, customer_name, customer_email, customer_phone,
			start_date, guests, unit_price_cents, total_cents, currency, status, created_at, updated_at)
		VALUES (:id, :post_id, :customer_name, :customer_email, :customer_phone,
			:start_date, :guests, :unit_price_cents, :total_cents, :currency, :status, NOW(), NOW())
	`, booking)
	return err
}

func (r *BookingRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, `
		SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus applies the transition only while the booking is still
// in the expected status; a concurrent transition that got there first
// surfaces as a conflict.
func (r *BookingRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`, id, to, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.Conflict("booking status changed concurrently")
	}
	return nil
}

func (r *BookingRepositoryImpl) Count(ctx context.Context, filter ports.BookingFilter) (int64, error) {
	from, where, args := bookingQuery(filter)
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) `+from+where, args...)
	return count, err
}

func (r *BookingRepositoryImpl) Page(ctx context.Context, filter ports.BookingFilter, limit, offset int) ([]*models.Booking, error) {
	from, where, args := bookingQuery(filter)
	query := fmt.Sprintf(`SELECT %s %s%s ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, from, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var bookings []*models.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	return bookings, err
}

func (r *BookingRepositoryImpl) Each(ctx context.Context, filter ports.BookingFilter, fn func(*models.Booking) error) error {
	from, where, args := bookingQuery(filter)
	rows, err := r.db.QueryxContext(ctx, `SELECT `+bookingColumns+` `+from+where+` ORDER BY b.created_at DESC`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var booking models.Booking
		if err := rows.StructScan(&booking); err != nil {
			return err
		}
		if err := fn(&booking); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *BookingRepositoryImpl) Totals(ctx context.Context, filter ports.BookingFilter) ([]float64, error) {
	from, where, args := bookingQuery(filter)
	var totals []float64
	err := r.db.SelectContext(ctx, &totals, `SELECT b.total_cents::float8 `+from+where, args...)
	return totals, err
}

func (r *BookingRepositoryImpl) CountByStatus(ctx context.Context, filter ports.BookingFilter) (map[string]int, error) {
	from, where, args := bookingQuery(filter)
	rows, err := r.db.QueryxContext(ctx, `SELECT b.status, COUNT(*) `+from+where+` GROUP BY b.status`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// bookingQuery builds the FROM and WHERE parts for a booking filter.
// Seller scoping joins through posts on the author.
func bookingQuery(filter ports.BookingFilter) (string, string, []interface{}) {
	from := `FROM bookings b`
	if filter.SellerID != nil {
		from = `FROM bookings b JOIN posts p ON p.id = b.post_id`
	}

	var clauses []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.SellerID != nil {
		add("p.author_id", *filter.SellerID)
	}
	if filter.PostID != nil {
		add("b.post_id", *filter.PostID)
	}
	if filter.Status != nil {
		add("b.status", *filter.Status)
	}

	if len(clauses) == 0 {
		return from, "", nil
	}
	return from, " WHERE " + strings.Join(clauses, " AND "), args
}
