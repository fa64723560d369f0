package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

// SubscriberRepositoryImpl implements SubscriberRepository for PostgreSQL
type SubscriberRepositoryImpl struct {
	db *sqlx.DB
}

// NewSubscriberRepository creates a new PostgreSQL subscriber repository
func NewSubscriberRepository(db *sqlx.DB) ports.SubscriberRepository {
	return &SubscriberRepositoryImpl{db: db}
}

// Upsert inserts the email or reactivates an existing row. The
// unsubscribe token survives reactivation so old links stay valid.
func (r *SubscriberRepositoryImpl) Upsert(ctx context.Context, email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := r.db.GetContext(ctx, &sub, `
		INSERT INTO subscribers (id, email, active, unsubscribe_token, subscribed_at)
		VALUES ($1, $2, TRUE, $3, NOW())
		ON CONFLICT (email) DO UPDATE SET active = TRUE
		RETURNING id, email, active, unsubscribe_token, subscribed_at
	`, uuid.New(), email, uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriberRepositoryImpl) Unsubscribe(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscribers SET active = FALSE WHERE unsubscribe_token = $1 AND active = TRUE
	`, token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("subscriber")
	}
	return nil
}

func (r *SubscriberRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM subscribers WHERE active = TRUE`)
	return count, err
}

func (r *SubscriberRepositoryImpl) Page(ctx context.Context, limit, offset int) ([]*models.Subscriber, error) {
	var subs []*models.Subscriber
	err := r.db.SelectContext(ctx, &subs, `
		SELECT id, email, active, unsubscribe_token, subscribed_at
		FROM subscribers WHERE active = TRUE
		ORDER BY subscribed_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	return subs, err
}

func (r *SubscriberRepositoryImpl) Each(ctx context.Context, fn func(*models.Subscriber) error) error {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, email, active, unsubscribe_token, subscribed_at
		FROM subscribers WHERE active = TRUE
		ORDER BY subscribed_at DESC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sub models.Subscriber
		if err := rows.StructScan(&sub); err != nil {
			return err
		}
		if err := fn(&sub); err != nil {
			return err
		}
	}
	return rows.Err()
}
