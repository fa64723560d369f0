package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

const userColumns = `id, name, email, password_hash, role, is_active,
	media_cloud_name, media_api_key, media_api_secret, created_at, updated_at`

// UserRepositoryImpl implements UserRepository for PostgreSQL
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create inserts a new account. Duplicate emails surface as a
// conflict error.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, is_active,
			media_cloud_name, media_api_key, media_api_secret, created_at, updated_at)
		VALUES (:id, :name, :email, :password_hash, :role, :is_active,
			:media_cloud_name, :media_api_key, :media_api_secret, NOW(), NOW())
	`, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return apperrors.Conflict("email already registered")
		}
		return err
	}
	return nil
}

// GetByID retrieves a user by their ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return &user, nil
}

// Update persists mutable profile fields
func (r *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE users
		SET name = :name,
			media_cloud_name = :media_cloud_name,
			media_api_key = :media_api_key,
			media_api_secret = :media_api_secret,
			updated_at = NOW()
		WHERE id = :id
	`, user)
	if err != nil {
		return err
	}
	return requireRow(res, "user")
}

// SetActive toggles the account's active flag
func (r *UserRepositoryImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1
	`, id, active)
	if err != nil {
		return err
	}
	return requireRow(res, "user")
}

// SetRole changes the account's role
func (r *UserRepositoryImpl) SetRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1
	`, id, role)
	if err != nil {
		return err
	}
	return requireRow(res, "user")
}

// List returns all accounts, newest first
func (r *UserRepositoryImpl) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+` FROM users ORDER BY created_at DESC
	`)
	return users, err
}

// requireRow converts a zero-row update into a not-found error.
func requireRow(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound(resource)
	}
	return nil
}
