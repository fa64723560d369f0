package app

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tourhub/internal/errors"
	"tourhub/models"
	"tourhub/ports"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return errors.Conflict("email already registered")
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("user")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.NotFound("user")
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return errors.NotFound("user")
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errors.NotFound("user")
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserRepo) SetRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errors.NotFound("user")
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

// seed stores a user directly, bypassing Create's uniqueness check.
func (f *fakeUserRepo) seed(u *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return u
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*models.SellerApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[uuid.UUID]*models.SellerApplication)}
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *models.SellerApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app.ID = uuid.New()
	app.Status = models.ApplicationPending
	f.apps[app.ID] = app
	return nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SellerApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, errors.NotFound("application")
	}
	return app, nil
}

func (f *fakeApplicationRepo) GetPendingByUser(ctx context.Context, userID uuid.UUID) (*models.SellerApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, app := range f.apps {
		if app.UserID == userID && app.Status == models.ApplicationPending {
			return app, nil
		}
	}
	return nil, errors.NotFound("application")
}

func (f *fakeApplicationRepo) Review(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, reviewer uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return errors.NotFound("application")
	}
	if app.Status != models.ApplicationPending {
		return errors.Conflict("application already reviewed")
	}
	app.Status = status
	app.ReviewedBy = &reviewer
	return nil
}

func (f *fakeApplicationRepo) Reopen(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return errors.NotFound("application")
	}
	app.Status = models.ApplicationPending
	app.ReviewedBy = nil
	return nil
}

func (f *fakeApplicationRepo) ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]*models.SellerApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.SellerApplication
	for _, app := range f.apps {
		if app.Status == status {
			out = append(out, app)
		}
	}
	return out, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*models.Post)}
}

func (f *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == post.Slug {
			return errors.Conflict("slug already in use")
		}
	}
	post.ID = uuid.New()
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, errors.NotFound("post")
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug {
			p.ViewCount++
			copied := *p
			return &copied, nil
		}
	}
	return nil, errors.NotFound("post")
}

func (f *fakePostRepo) Update(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return errors.NotFound("post")
	}
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return errors.NotFound("post")
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) Count(ctx context.Context, filter models.PostFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.posts)), nil
}

func (f *fakePostRepo) Page(ctx context.Context, filter models.PostFilter, limit, offset int) ([]*models.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) Each(ctx context.Context, filter models.PostFilter, fn func(*models.Post) error) error {
	return nil
}

func (f *fakePostRepo) seed(p *models.Post) *models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.posts[p.ID] = p
	return p
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
	totals   []float64
	byStatus map[string]int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*models.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking.ID = uuid.New()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, errors.NotFound("booking")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return errors.NotFound("booking")
	}
	if b.Status != from {
		return errors.Conflict("booking status changed concurrently")
	}
	b.Status = to
	return nil
}

func (f *fakeBookingRepo) Count(ctx context.Context, filter ports.BookingFilter) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) Page(ctx context.Context, filter ports.BookingFilter, limit, offset int) ([]*models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) Each(ctx context.Context, filter ports.BookingFilter, fn func(*models.Booking) error) error {
	return nil
}

func (f *fakeBookingRepo) Totals(ctx context.Context, filter ports.BookingFilter) ([]float64, error) {
	return f.totals, nil
}

func (f *fakeBookingRepo) CountByStatus(ctx context.Context, filter ports.BookingFilter) (map[string]int, error) {
	return f.byStatus, nil
}

func (f *fakeBookingRepo) seed(b *models.Booking) *models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.bookings[b.ID] = b
	return b
}

type fakeGalleryRepo struct {
	mu     sync.Mutex
	images map[uuid.UUID]*models.GalleryImage
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{images: make(map[uuid.UUID]*models.GalleryImage)}
}

func (f *fakeGalleryRepo) Create(ctx context.Context, img *models.GalleryImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	img.ID = uuid.New()
	f.images[img.ID] = img
	return nil
}

func (f *fakeGalleryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	img, ok := f.images[id]
	if !ok {
		return nil, errors.NotFound("image")
	}
	copied := *img
	return &copied, nil
}

func (f *fakeGalleryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.images[id]; !ok {
		return errors.NotFound("image")
	}
	delete(f.images, id)
	return nil
}

func (f *fakeGalleryRepo) ListByUploader(ctx context.Context, uploaderID uuid.UUID) ([]*models.GalleryImage, error) {
	return nil, nil
}

func (f *fakeGalleryRepo) List(ctx context.Context) ([]*models.GalleryImage, error) {
	return nil, nil
}

func (f *fakeGalleryRepo) has(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.images[id]
	return ok
}

// fakeMediaStore records the credentials used per call.
type fakeMediaStore struct {
	mu          sync.Mutex
	uploadCreds []ports.MediaCredentials
	deleteCreds []ports.MediaCredentials
	uploadErr   error
	deleteErr   error
}

func (f *fakeMediaStore) Upload(ctx context.Context, creds ports.MediaCredentials, filename string, r io.Reader) (*ports.UploadedAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploadCreds = append(f.uploadCreds, creds)
	return &ports.UploadedAsset{PublicID: "asset-" + filename, URL: "https://media.example/" + filename}, nil
}

func (f *fakeMediaStore) Delete(ctx context.Context, creds ports.MediaCredentials, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleteCreds = append(f.deleteCreds, creds)
	return nil
}
