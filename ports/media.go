package ports

import (
	"context"
	"io"
)

// MediaCredentials identify an upload account on the media store.
// Zero value means "use the service-wide account".
type MediaCredentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

// IsZero reports whether no credentials are set.
func (c MediaCredentials) IsZero() bool {
	return c.CloudName == "" && c.APIKey == "" && c.APISecret == ""
}

// UploadedAsset describes a stored media asset.
type UploadedAsset struct {
	PublicID string
	URL      string
	Bytes    int64
}

// MediaStore stores and deletes media assets. Implementations: an
// HTTP signed-upload client against a cloud media API, and a local
// disk store for development.
type MediaStore interface {
	Upload(ctx context.Context, creds MediaCredentials, filename string, r io.Reader) (*UploadedAsset, error)
	Delete(ctx context.Context, creds MediaCredentials, publicID string) error
}
