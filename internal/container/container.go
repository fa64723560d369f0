package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"tourhub/adapters/excel"
	"tourhub/adapters/media"
	"tourhub/adapters/postgres"
	"tourhub/app"
	"tourhub/internal/auth"
	"tourhub/internal/config"
	"tourhub/internal/monitor"
	"tourhub/internal/normalize"
	"tourhub/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	UserRepo        ports.UserRepository
	ApplicationRepo ports.SellerApplicationRepository
	PostRepo        ports.PostRepository
	CommentRepo     ports.CommentRepository
	FAQRepo         ports.FAQRepository
	DestinationRepo ports.DestinationRepository
	CategoryRepo    ports.CategoryRepository
	BookingRepo     ports.BookingRepository
	SubscriberRepo  ports.SubscriberRepository
	GalleryRepo     ports.GalleryRepository
	MonitorRepo     ports.MonitorRepository

	// Domain services
	AuthService    *app.AuthService
	SellerService  *app.SellerService
	PostService    *app.PostService
	BookingService *app.BookingService
	GalleryService *app.GalleryService

	// Supporting components
	Tokens     *auth.TokenManager
	Normalizer *normalize.Normalizer
	Exporter   *excel.Exporter
	MediaStore ports.MediaStore
	Scheduler  *monitor.Scheduler
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = db

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)

	c.initRepositories()
	if err := c.initMedia(); err != nil {
		return fmt.Errorf("failed to initialize media store: %w", err)
	}
	c.initServices()

	c.Logger.Info("container initialized")
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = postgres.NewUserRepository(c.DB)
	c.ApplicationRepo = postgres.NewSellerApplicationRepository(c.DB)
	c.PostRepo = postgres.NewPostRepository(c.DB)
	c.CommentRepo = postgres.NewCommentRepository(c.DB)
	c.FAQRepo = postgres.NewFAQRepository(c.DB)
	c.DestinationRepo = postgres.NewDestinationRepository(c.DB)
	c.CategoryRepo = postgres.NewCategoryRepository(c.DB)
	c.BookingRepo = postgres.NewBookingRepository(c.DB)
	c.SubscriberRepo = postgres.NewSubscriberRepository(c.DB)
	c.GalleryRepo = postgres.NewGalleryRepository(c.DB)
	c.MonitorRepo = postgres.NewMonitorRepository(c.DB)
}

func (c *Container) initMedia() error {
	if c.Config.Media.Driver == "cloud" {
		c.MediaStore = media.NewCloudStore(nil, ports.MediaCredentials{
			CloudName: c.Config.Media.CloudName,
			APIKey:    c.Config.Media.APIKey,
			APISecret: c.Config.Media.APISecret,
		})
		return nil
	}
	store, err := media.NewDiskStore(c.Config.Media.UploadDir, c.Config.Media.BaseURL)
	if err != nil {
		return err
	}
	c.MediaStore = store
	return nil
}

func (c *Container) initServices() {
	c.Tokens = auth.NewTokenManager(
		c.Config.Auth.JWTSecret,
		c.Config.Auth.Issuer,
		c.Config.Auth.TokenTTL,
		nil,
	)
	c.Normalizer = normalize.New(normalize.WithCache(1024))
	c.Exporter = excel.NewExporter(c.BookingRepo, c.SubscriberRepo)

	c.AuthService = app.NewAuthService(c.UserRepo, c.Tokens)
	c.SellerService = app.NewSellerService(c.UserRepo, c.ApplicationRepo)
	c.PostService = app.NewPostService(c.PostRepo)
	c.BookingService = app.NewBookingService(c.BookingRepo, c.PostRepo, nil)
	c.GalleryService = app.NewGalleryService(c.GalleryRepo, c.UserRepo, c.MediaStore)

	if c.Config.Monitor.Enabled {
		prober := monitor.NewProber(nil, c.Config.Monitor.ProbeTimeout)
		c.Scheduler = monitor.NewScheduler(c.MonitorRepo, prober, c.Logger, c.Config.Monitor.RetainChecks)
	}
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
