package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"tourhub/internal/auth"
	"tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

// AuthService handles registration, login and profile updates.
type AuthService struct {
	users  ports.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService creates an auth service.
func NewAuthService(users ports.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new active account with the user role.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, errors.ValidationError("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.ValidationError("a valid email is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token. Failures are
// indistinguishable between unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.Unauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, "", errors.Unauthorized("account is deactivated")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", errors.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser loads the account behind a verified token, rejecting
// deactivated accounts.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.Unauthorized("account is deactivated")
	}
	return user, nil
}

// UpdateMediaCredentials stores a seller's own upload credentials.
func (s *AuthService) UpdateMediaCredentials(ctx context.Context, userID uuid.UUID, cloudName, apiKey, apiSecret string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Role.InGroup(models.GroupSellerAdmin) {
		return nil, errors.Forbidden("only sellers can store media credentials")
	}

	user.MediaCloudName = &cloudName
	user.MediaAPIKey = &apiKey
	user.MediaAPISecret = &apiSecret
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
