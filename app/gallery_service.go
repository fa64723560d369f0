package app

import (
	"context"
	"io"

	"github.com/google/uuid"

	"tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

// GalleryService runs uploads and deletes against the media store,
// resolving per-user credentials for sellers that configured their
// own account.
type GalleryService struct {
	gallery ports.GalleryRepository
	users   ports.UserRepository
	store   ports.MediaStore
}

// NewGalleryService creates a gallery service.
func NewGalleryService(gallery ports.GalleryRepository, users ports.UserRepository, store ports.MediaStore) *GalleryService {
	return &GalleryService{gallery: gallery, users: users, store: store}
}

// credentialsFor returns the uploader's own credentials when set,
// zero otherwise (meaning the service-wide account).
func (s *GalleryService) credentialsFor(ctx context.Context, userID uuid.UUID) (ports.MediaCredentials, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ports.MediaCredentials{}, err
	}
	if user.HasMediaCredentials() {
		return ports.MediaCredentials{
			CloudName: *user.MediaCloudName,
			APIKey:    *user.MediaAPIKey,
			APISecret: *user.MediaAPISecret,
		}, nil
	}
	return ports.MediaCredentials{}, nil
}

// Upload stores the file and persists the gallery record. Nothing is
// persisted when the store rejects the upload.
func (s *GalleryService) Upload(ctx context.Context, uploaderID uuid.UUID, title, tags, filename string, r io.Reader) (*models.GalleryImage, error) {
	creds, err := s.credentialsFor(ctx, uploaderID)
	if err != nil {
		return nil, err
	}

	asset, err := s.store.Upload(ctx, creds, filename, r)
	if err != nil {
		return nil, err
	}

	img := &models.GalleryImage{
		Title:      title,
		URL:        asset.URL,
		PublicID:   asset.PublicID,
		UploaderID: uploaderID,
		Tags:       tags,
	}
	if err := s.gallery.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// Delete removes the stored asset first, then the record. A storage
// failure leaves the record so the delete can be retried.
func (s *GalleryService) Delete(ctx context.Context, imageID, actorID uuid.UUID, actorRole models.Role) error {
	img, err := s.gallery.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && img.UploaderID != actorID {
		return errors.Forbidden("not the image uploader")
	}

	creds, err := s.credentialsFor(ctx, img.UploaderID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, creds, img.PublicID); err != nil {
		return err
	}
	return s.gallery.Delete(ctx, imageID)
}
