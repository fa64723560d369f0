package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

const postColumns = `id, title, slug, body, body_html, excerpt, cover_image_url,
	price_cents, currency, duration_days, category_id, destination_id,
	author_id, status, view_count, created_at, updated_at`

// PostRepositoryImpl implements PostRepository for PostgreSQL
type PostRepositoryImpl struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sqlx.DB) ports.PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO posts (id, title, slug, body, body_html, excerpt, cover_image_url,
			price_cents, currency, duration_days, category_id, destination_id,
			author_id, status, view_count, created_at, updated_at)
		VALUES (:id, :title, :slug, :body, :body_html, :excerpt, :cover_image_url,
			:price_cents, :currency, :duration_days, :category_id, :destination_id,
			:author_id, :status, 0, NOW(), NOW())
	`, post)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return apperrors.Conflict("slug already in use")
		}
		return err
	}
	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("post")
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug returns the post and bumps its view counter in the same
// statement, so concurrent reads never lose counts.
func (r *PostRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, `
		UPDATE posts SET view_count = view_count + 1
		WHERE slug = $1
		RETURNING `+postColumns+`
	`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("post")
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE posts
		SET title = :title, slug = :slug, body = :body, body_html = :body_html,
			excerpt = :excerpt, cover_image_url = :cover_image_url,
			price_cents = :price_cents, currency = :currency,
			duration_days = :duration_days, category_id = :category_id,
			destination_id = :destination_id, status = :status, updated_at = NOW()
		WHERE id = :id
	`, post)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.Conflict("slug already in use")
		}
		return err
	}
	return requireRow(res, "post")
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "post")
}

func (r *PostRepositoryImpl) Count(ctx context.Context, filter models.PostFilter) (int64, error) {
	where, args := postWhere(filter)
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`+where, args...)
	return count, err
}

func (r *PostRepositoryImpl) Page(ctx context.Context, filter models.PostFilter, limit, offset int) ([]*models.Post, error) {
	where, args := postWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM posts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var posts []*models.Post
	err := r.db.SelectContext(ctx, &posts, query, args...)
	return posts, err
}

// Each streams the filtered set row by row through fn.
func (r *PostRepositoryImpl) Each(ctx context.Context, filter models.PostFilter, fn func(*models.Post) error) error {
	where, args := postWhere(filter)
	rows, err := r.db.QueryxContext(ctx, `SELECT `+postColumns+` FROM posts`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var post models.Post
		if err := rows.StructScan(&post); err != nil {
			return err
		}
		if err := fn(&post); err != nil {
			return err
		}
	}
	return rows.Err()
}

// postWhere builds the WHERE clause for a post filter with positional
// placeholders.
func postWhere(filter models.PostFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Status != "" {
		add("status", filter.Status)
	}
	if filter.CategoryID != nil {
		add("category_id", *filter.CategoryID)
	}
	if filter.DestinationID != nil {
		add("destination_id", *filter.DestinationID)
	}
	if filter.AuthorID != nil {
		add("author_id", *filter.AuthorID)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
