// Package media implements the MediaStore port: a signed-upload HTTP
// client against a cloud media API, and a local disk store for
// development.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "tourhub/internal/errors"
	"tourhub/ports"
)

const defaultCloudAPIBase = "https://api.cloudinary.com/v1_1"

// CloudStore uploads through a Cloudinary-compatible signed REST API.
// The zero-value credentials passed per call select the service-wide
// account configured here.
type CloudStore struct {
	client   *http.Client
	apiBase  string
	fallback ports.MediaCredentials
	now      func() time.Time
}

// NewCloudStore creates a cloud media store. fallback is the
// service-wide upload account.
func NewCloudStore(client *http.Client, fallback ports.MediaCredentials) *CloudStore {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CloudStore{
		client:   client,
		apiBase:  defaultCloudAPIBase,
		fallback: fallback,
		now:      time.Now,
	}
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Bytes     int64  `json:"bytes"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file through the signed upload endpoint.
func (s *CloudStore) Upload(ctx context.Context, creds ports.MediaCredentials, filename string, r io.Reader) (*ports.UploadedAsset, error) {
	creds = s.resolve(creds)
	timestamp := strconv.FormatInt(s.now().Unix(), 10)
	params := map[string]string{"timestamp": timestamp}

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writer.WriteField("api_key", creds.APIKey); err != nil {
		return nil, err
	}
	if err := writer.WriteField("signature", sign(params, creds.APISecret)); err != nil {
		return nil, err
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", s.apiBase, creds.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.ExternalServiceError("media", err)
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.ExternalServiceError("media", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ExternalServiceError("media",
			fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, parsed.Error.Message))
	}

	return &ports.UploadedAsset{
		PublicID: parsed.PublicID,
		URL:      parsed.SecureURL,
		Bytes:    parsed.Bytes,
	}, nil
}

// Delete destroys the asset by public ID.
func (s *CloudStore) Delete(ctx context.Context, creds ports.MediaCredentials, publicID string) error {
	creds = s.resolve(creds)
	timestamp := strconv.FormatInt(s.now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}
	form.Set("api_key", creds.APIKey)
	form.Set("signature", sign(params, creds.APISecret))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", s.apiBase, creds.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return apperrors.ExternalServiceError("media", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.ExternalServiceError("media",
			fmt.Errorf("destroy failed with status %d", resp.StatusCode))
	}
	return nil
}

func (s *CloudStore) resolve(creds ports.MediaCredentials) ports.MediaCredentials {
	if creds.IsZero() {
		return s.fallback
	}
	return creds
}

// sign builds the request signature: SHA-1 over the sorted params
// concatenated with the API secret.
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
