package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

// SellerService runs the seller application lifecycle.
type SellerService struct {
	users        ports.UserRepository
	applications ports.SellerApplicationRepository
}

// NewSellerService creates a seller service.
func NewSellerService(users ports.UserRepository, applications ports.SellerApplicationRepository) *SellerService {
	return &SellerService{users: users, applications: applications}
}

// Apply opens a seller application for the user. One open application
// per user; sellers and admins cannot apply.
func (s *SellerService) Apply(ctx context.Context, userID uuid.UUID, companyName, description string) (*models.SellerApplication, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, errors.ValidationError("company name is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleUser {
		return nil, errors.Conflict("account is already a seller")
	}

	if _, err := s.applications.GetPendingByUser(ctx, userID); err == nil {
		return nil, errors.Conflict("an application is already pending")
	}

	app := &models.SellerApplication{
		UserID:      userID,
		CompanyName: companyName,
		Description: description,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Approve marks the application approved and promotes the applicant.
// Review is the commit point; if the promotion then fails, the review
// is reopened so the approval can be retried.
func (s *SellerService) Approve(ctx context.Context, applicationID, reviewerID uuid.UUID) error {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if err := s.applications.Review(ctx, applicationID, models.ApplicationApproved, reviewerID); err != nil {
		return err
	}
	if err := s.users.SetRole(ctx, app.UserID, models.RoleSeller); err != nil {
		if reopenErr := s.applications.Reopen(ctx, applicationID); reopenErr != nil {
			return fmt.Errorf("promotion failed (%w) and the review could not be reopened: %v", err, reopenErr)
		}
		return err
	}
	return nil
}

// Reject marks the application rejected.
func (s *SellerService) Reject(ctx context.Context, applicationID, reviewerID uuid.UUID) error {
	return s.applications.Review(ctx, applicationID, models.ApplicationRejected, reviewerID)
}

// Pending lists open applications oldest first.
func (s *SellerService) Pending(ctx context.Context) ([]*models.SellerApplication, error) {
	return s.applications.ListByStatus(ctx, models.ApplicationPending)
}
