package app

import (
	"context"
	"testing"
	"time"

	"tourhub/internal/auth"
	"tourhub/internal/errors"
	"tourhub/models"
)

func newAuthService(users *fakeUserRepo) *AuthService {
	tokens := auth.NewTokenManager("test-secret", "tourhub", time.Hour, nil)
	return NewAuthService(users, tokens)
}

func TestAuthService_Register(t *testing.T) {
	users := newFakeUserRepo()
	s := newAuthService(users)
	ctx := context.Background()

	user, err := s.Register(ctx, "  Ada Lovelace  ", "ADA@Example.com", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Name != "Ada Lovelace" {
		t.Errorf("name = %q, not trimmed", user.Name)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email = %q, not lowercased", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %s, want user", user.Role)
	}
	if !user.IsActive {
		t.Error("new account not active")
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Error("password not hashed")
	}
}

func TestAuthService_Register_Invalid(t *testing.T) {
	s := newAuthService(newFakeUserRepo())
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "empty name", userName: "", email: "a@b.com", password: "password123"},
		{name: "bad email", userName: "Ada", email: "not-an-email", password: "password123"},
		{name: "short password", userName: "Ada", email: "a@b.com", password: "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Register(ctx, tt.userName, tt.email, tt.password); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	users := newFakeUserRepo()
	s := newAuthService(users)
	ctx := context.Background()

	if _, err := s.Register(ctx, "Ada", "ada@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, token, err := s.Login(ctx, "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("no token issued")
	}
	if user.Email != "ada@example.com" {
		t.Errorf("user = %v", user)
	}

	// Unknown email and wrong password produce the same error code.
	_, _, errUnknown := s.Login(ctx, "nobody@example.com", "password123")
	_, _, errWrong := s.Login(ctx, "ada@example.com", "wrong-password")
	if errors.GetCode(errUnknown) != errors.CodeUnauthorized ||
		errors.GetCode(errWrong) != errors.CodeUnauthorized {
		t.Errorf("codes = %s / %s, want both UNAUTHORIZED",
			errors.GetCode(errUnknown), errors.GetCode(errWrong))
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Error("login failures are distinguishable")
	}
}

func TestAuthService_Login_Deactivated(t *testing.T) {
	users := newFakeUserRepo()
	s := newAuthService(users)
	ctx := context.Background()

	user, err := s.Register(ctx, "Ada", "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := users.SetActive(ctx, user.ID, false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	if _, _, err := s.Login(ctx, "ada@example.com", "password123"); err == nil {
		t.Error("deactivated account logged in")
	}
}

func TestAuthService_CurrentUser_Deactivated(t *testing.T) {
	users := newFakeUserRepo()
	s := newAuthService(users)
	user := users.seed(&models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleUser, IsActive: false})

	if _, err := s.CurrentUser(context.Background(), user.ID); errors.GetCode(err) != errors.CodeUnauthorized {
		t.Errorf("err = %v, want UNAUTHORIZED", err)
	}
}

func TestAuthService_UpdateMediaCredentials(t *testing.T) {
	users := newFakeUserRepo()
	s := newAuthService(users)
	ctx := context.Background()

	seller := users.seed(&models.User{Role: models.RoleSeller, IsActive: true})
	plain := users.seed(&models.User{Role: models.RoleUser, IsActive: true})

	updated, err := s.UpdateMediaCredentials(ctx, seller.ID, "acme", "key", "secret")
	if err != nil {
		t.Fatalf("UpdateMediaCredentials failed: %v", err)
	}
	if !updated.HasMediaCredentials() {
		t.Error("credentials not stored")
	}

	if _, err := s.UpdateMediaCredentials(ctx, plain.ID, "acme", "key", "secret"); errors.GetCode(err) != errors.CodeForbidden {
		t.Errorf("err = %v, want FORBIDDEN for non-sellers", err)
	}
}
