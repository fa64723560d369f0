package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PostStatus is the publication state of a tour post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

// Post is a tour listing. Body is markdown; BodyHTML is the rendered
// form persisted alongside it so list endpoints never re-render.
type Post struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Slug          string     `json:"slug" db:"slug"`
	Body          string     `json:"body" db:"body"`
	BodyHTML      string     `json:"body_html" db:"body_html"`
	Excerpt       string     `json:"excerpt" db:"excerpt"`
	CoverImageURL string     `json:"cover_image_url" db:"cover_image_url"`
	PriceCents    int64      `json:"price_cents" db:"price_cents"`
	Currency      string     `json:"currency" db:"currency"`
	DurationDays  int        `json:"duration_days" db:"duration_days"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	DestinationID *uuid.UUID `json:"destination_id,omitempty" db:"destination_id"`
	AuthorID      uuid.UUID  `json:"author_id" db:"author_id"`
	Status        PostStatus `json:"status" db:"status"`
	ViewCount     int64      `json:"view_count" db:"view_count"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title into a URL slug. Collapses runs of
// non-alphanumerics into single hyphens and trims the edges.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// PostFilter narrows post listings. Zero values mean "no constraint".
type PostFilter struct {
	Status        PostStatus
	CategoryID    *uuid.UUID
	DestinationID *uuid.UUID
	AuthorID      *uuid.UUID
}
