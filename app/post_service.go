package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"tourhub/internal/errors"
	"tourhub/internal/render"
	"tourhub/models"
	"tourhub/ports"
)

const excerptLength = 200

// PostInput is the write payload for a tour post.
type PostInput struct {
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	Excerpt       string     `json:"excerpt"`
	CoverImageURL string     `json:"cover_image_url"`
	PriceCents    int64      `json:"price_cents"`
	Currency      string     `json:"currency"`
	DurationDays  int        `json:"duration_days"`
	CategoryID    *uuid.UUID `json:"category_id"`
	DestinationID *uuid.UUID `json:"destination_id"`
	Status        string     `json:"status"`
}

// PostService owns post writes: slug generation, markdown rendering
// and author scoping.
type PostService struct {
	posts ports.PostRepository
}

// NewPostService creates a post service.
func NewPostService(posts ports.PostRepository) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) validate(in PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.ValidationError("title is required")
	}
	if in.PriceCents < 0 {
		return errors.ValidationError("price cannot be negative")
	}
	if in.DurationDays < 1 {
		return errors.ValidationError("duration must be at least 1 day")
	}
	switch models.PostStatus(in.Status) {
	case models.PostDraft, models.PostPublished, "":
	default:
		return errors.ValidationError("status must be draft or published")
	}
	return nil
}

func apply(post *models.Post, in PostInput) {
	post.Title = strings.TrimSpace(in.Title)
	post.Slug = models.Slugify(in.Title)
	post.Body = in.Body
	post.BodyHTML = render.Markdown(in.Body)
	post.Excerpt = in.Excerpt
	if post.Excerpt == "" {
		post.Excerpt = render.Excerpt(in.Body, excerptLength)
	}
	post.CoverImageURL = in.CoverImageURL
	post.PriceCents = in.PriceCents
	post.Currency = strings.ToUpper(in.Currency)
	if post.Currency == "" {
		post.Currency = "USD"
	}
	post.DurationDays = in.DurationDays
	post.CategoryID = in.CategoryID
	post.DestinationID = in.DestinationID
	if in.Status != "" {
		post.Status = models.PostStatus(in.Status)
	}
}

// Create persists a new post for the author.
func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, in PostInput) (*models.Post, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	post := &models.Post{AuthorID: authorID, Status: models.PostDraft}
	apply(post, in)
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update rewrites a post. Sellers may only edit their own posts;
// admins may edit any.
func (s *PostService) Update(ctx context.Context, postID, actorID uuid.UUID, actorRole models.Role, in PostInput) (*models.Post, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && post.AuthorID != actorID {
		return nil, errors.Forbidden("not the post author")
	}
	apply(post, in)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post under the same ownership rule as Update.
func (s *PostService) Delete(ctx context.Context, postID, actorID uuid.UUID, actorRole models.Role) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && post.AuthorID != actorID {
		return errors.Forbidden("not the post author")
	}
	return s.posts.Delete(ctx, postID)
}
