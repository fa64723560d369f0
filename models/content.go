package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is visitor feedback on a post. Comments start unapproved and
// only appear publicly after an admin approves them.
type Comment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PostID      uuid.UUID `json:"post_id" db:"post_id"`
	AuthorName  string    `json:"author_name" db:"author_name"`
	AuthorEmail string    `json:"author_email" db:"author_email"`
	Body        string    `json:"body" db:"body"`
	Approved    bool      `json:"approved" db:"approved"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// FAQ is a frequently asked question shown on the public site,
// ordered by Position.
type FAQ struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Destination is a place tours are offered for.
type Destination struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Country     string    `json:"country" db:"country"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Category groups tours by theme (trekking, safari, city break...).
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Subscriber is a newsletter signup. UnsubscribeToken is the opaque
// handle mailed out for one-click unsubscribe.
type Subscriber struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	Active           bool      `json:"active" db:"active"`
	UnsubscribeToken string    `json:"-" db:"unsubscribe_token"`
	SubscribedAt     time.Time `json:"subscribed_at" db:"subscribed_at"`
}

// GalleryImage is an uploaded media asset. PublicID is the handle in
// the backing media store, needed to delete the asset.
type GalleryImage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	URL        string    `json:"url" db:"url"`
	PublicID   string    `json:"public_id" db:"public_id"`
	UploaderID uuid.UUID `json:"uploader_id" db:"uploader_id"`
	Tags       string    `json:"tags" db:"tags"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
