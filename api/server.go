// Package api exposes the marketplace REST interface.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tourhub/adapters/media"
	"tourhub/internal/container"
	"tourhub/internal/pagination"
)

// Server wires the gin router over the container's services.
type Server struct {
	router  *gin.Engine
	c       *container.Container
	logger  *zap.Logger
	pageOpt pagination.Options
}

// NewServer builds the router and registers all routes.
func NewServer(c *container.Container) *Server {
	gin.SetMode(c.Config.Server.GinMode)

	s := &Server{
		router: gin.New(),
		c:      c,
		logger: c.Logger,
		pageOpt: pagination.Options{
			DefaultPerPage:  c.Config.Pagination.DefaultPerPage,
			MaxPerPage:      c.Config.Pagination.MaxPerPage,
			StreamThreshold: c.Config.Pagination.StreamThreshold,
		},
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")

	// Public surface.
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/logout", s.handleLogout)

	api.GET("/tours", s.handleListTours)
	api.GET("/tours/:slug", s.handleGetTour)
	api.GET("/comments", s.handleListComments)
	api.POST("/comments", s.handleCreateComment)
	api.GET("/faqs", s.handleListFAQs)
	api.GET("/destinations", s.handleListDestinations)
	api.GET("/destinations/:slug", s.handleGetDestination)
	api.GET("/categories", s.handleListCategories)
	api.GET("/categories/:slug", s.handleGetCategory)
	api.POST("/bookings", s.handleCreateBooking)
	api.POST("/subscribers", s.handleSubscribe)
	api.DELETE("/subscribers/:token", s.handleUnsubscribe)
	api.GET("/gallery", s.handleListGallery)

	// Any authenticated account.
	authed := api.Group("", s.requireAuth())
	authed.GET("/me", s.handleMe)
	authed.PUT("/me/media-credentials", s.handleUpdateMediaCredentials)
	authed.POST("/seller/apply", s.handleSellerApply)

	// Sellers and admins.
	selling := api.Group("", s.requireAuth(), s.requireGroup(groupSellerAdmin))
	selling.GET("/posts", s.handleListPosts)
	selling.POST("/posts", s.handleCreatePost)
	selling.PUT("/posts/:id", s.handleUpdatePost)
	selling.DELETE("/posts/:id", s.handleDeletePost)
	selling.GET("/bookings", s.handleListBookings)
	selling.PATCH("/bookings/:id/status", s.handleBookingStatus)
	selling.POST("/gallery", s.handleUploadImage)
	selling.DELETE("/gallery/:id", s.handleDeleteImage)
	selling.GET("/gallery/mine", s.handleMyGallery)

	// Admin only.
	admin := api.Group("", s.requireAuth(), s.requireGroup(groupAdmin))
	admin.POST("/faqs", s.handleCreateFAQ)
	admin.PUT("/faqs/:id", s.handleUpdateFAQ)
	admin.DELETE("/faqs/:id", s.handleDeleteFAQ)
	admin.POST("/destinations", s.handleCreateDestination)
	admin.PUT("/destinations/:id", s.handleUpdateDestination)
	admin.DELETE("/destinations/:id", s.handleDeleteDestination)
	admin.POST("/categories", s.handleCreateCategory)
	admin.PUT("/categories/:id", s.handleUpdateCategory)
	admin.DELETE("/categories/:id", s.handleDeleteCategory)

	adminGroup := api.Group("/admin", s.requireAuth(), s.requireGroup(groupAdmin))
	adminGroup.GET("/users", s.handleListUsers)
	adminGroup.PATCH("/users/:id/active", s.handleSetUserActive)
	adminGroup.GET("/applications", s.handleListApplications)
	adminGroup.POST("/applications/:id/approve", s.handleApproveApplication)
	adminGroup.POST("/applications/:id/reject", s.handleRejectApplication)
	adminGroup.GET("/comments", s.handleListPendingComments)
	adminGroup.POST("/comments/:id/approve", s.handleApproveComment)
	adminGroup.DELETE("/comments/:id", s.handleDeleteComment)
	adminGroup.GET("/subscribers", s.handleListSubscribers)
	adminGroup.GET("/subscribers/export", s.handleExportSubscribers)
	adminGroup.GET("/bookings/stats", s.handleBookingStats)
	adminGroup.GET("/bookings/export", s.handleExportBookings)
	adminGroup.GET("/monitors", s.handleListMonitors)
	adminGroup.POST("/monitors", s.handleCreateMonitor)
	adminGroup.PUT("/monitors/:id", s.handleUpdateMonitor)
	adminGroup.DELETE("/monitors/:id", s.handleDeleteMonitor)
	adminGroup.GET("/monitors/:id/summary", s.handleMonitorSummary)

	// Disk-backed media is served straight from the upload directory.
	if disk, ok := s.c.MediaStore.(*media.DiskStore); ok {
		s.router.Static(s.c.Config.Media.BaseURL, disk.Dir())
	}
}

// Handler exposes the router for tests and the HTTP server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.c.Config.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", zap.String("port", s.c.Config.Server.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.c.Config.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
