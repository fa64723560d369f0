package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the access level of an account.
type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Role groups are the flat membership sets checked by the API middleware.
var (
	GroupAdmin       = []Role{RoleAdmin}
	GroupSellerAdmin = []Role{RoleSeller, RoleAdmin}
)

// InGroup reports whether the role belongs to the given group.
func (r Role) InGroup(group []Role) bool {
	for _, g := range group {
		if r == g {
			return true
		}
	}
	return false
}

// User represents an account on the marketplace.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`

	// Per-seller media upload credentials. Empty for accounts that
	// upload through the service-wide credentials.
	MediaCloudName *string `json:"media_cloud_name,omitempty" db:"media_cloud_name"`
	MediaAPIKey    *string `json:"-" db:"media_api_key"`
	MediaAPISecret *string `json:"-" db:"media_api_secret"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasMediaCredentials reports whether the account carries its own
// upload credentials.
func (u *User) HasMediaCredentials() bool {
	return u.MediaCloudName != nil && *u.MediaCloudName != "" &&
		u.MediaAPIKey != nil && *u.MediaAPIKey != "" &&
		u.MediaAPISecret != nil && *u.MediaAPISecret != ""
}

// ApplicationStatus tracks a seller application through review.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// SellerApplication is a user's request to be promoted to seller.
type SellerApplication struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	UserID      uuid.UUID         `json:"user_id" db:"user_id"`
	CompanyName string            `json:"company_name" db:"company_name"`
	Description string            `json:"description" db:"description"`
	Status      ApplicationStatus `json:"status" db:"status"`
	ReviewedBy  *uuid.UUID        `json:"reviewed_by,omitempty" db:"reviewed_by"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}
