package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

// CommentRepositoryImpl implements CommentRepository for PostgreSQL
type CommentRepositoryImpl struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sqlx.DB) ports.CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.Approved = false
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO comments (id, post_id, author_name, author_email, body, approved, created_at)
		VALUES (:id, :post_id, :author_name, :author_email, :body, :approved, NOW())
	`, comment)
	return err
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, `
		SELECT id, post_id, author_name, author_email, body, approved, created_at
		FROM comments WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("comment")
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) Approve(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "comment")
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "comment")
}

func (r *CommentRepositoryImpl) ListApprovedByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.SelectContext(ctx, &comments, `
		SELECT id, post_id, author_name, author_email, body, approved, created_at
		FROM comments WHERE post_id = $1 AND approved = TRUE
		ORDER BY created_at ASC
	`, postID)
	return comments, err
}

func (r *CommentRepositoryImpl) ListPending(ctx context.Context) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.SelectContext(ctx, &comments, `
		SELECT id, post_id, author_name, author_email, body, approved, created_at
		FROM comments WHERE approved = FALSE
		ORDER BY created_at ASC
	`)
	return comments, err
}
