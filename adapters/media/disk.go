package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "tourhub/internal/errors"
	"tourhub/ports"
)

// DiskStore keeps assets on the local filesystem. Credentials are
// ignored; every account shares the directory.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates a disk store rooted at dir. Files are served
// under baseURL by the API's static route.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(err, "create media directory")
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Upload writes the file under a generated public ID, preserving the
// original extension.
func (s *DiskStore) Upload(ctx context.Context, _ ports.MediaCredentials, filename string, r io.Reader) (*ports.UploadedAsset, error) {
	publicID := uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	f, err := os.Create(filepath.Join(s.dir, publicID))
	if err != nil {
		return nil, apperrors.Wrap(err, "create media file")
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return nil, apperrors.Wrap(err, "write media file")
	}

	return &ports.UploadedAsset{
		PublicID: publicID,
		URL:      s.baseURL + "/" + publicID,
		Bytes:    n,
	}, nil
}

// Delete removes the stored file. A missing file is treated as
// already deleted.
func (s *DiskStore) Delete(ctx context.Context, _ ports.MediaCredentials, publicID string) error {
	// Reject path traversal in stored IDs.
	if filepath.Base(publicID) != publicID {
		return apperrors.InvalidInput("invalid public id")
	}
	err := os.Remove(filepath.Join(s.dir, publicID))
	if err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(err, "delete media file")
	}
	return nil
}

// Dir returns the storage directory, used to mount the static route.
func (s *DiskStore) Dir() string {
	return s.dir
}
