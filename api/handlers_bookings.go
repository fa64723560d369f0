package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tourhub/app"
	"tourhub/internal/errors"
	"tourhub/internal/pagination"
	"tourhub/models"
	"tourhub/ports"
)

func (s *Server) handleCreateBooking(c *gin.Context) {
	var in app.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	booking, err := s.c.BookingService.Create(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondRecord(c, http.StatusCreated, "booking", booking.ID.String(), booking.UpdatedAt, booking)
}

// bookingScope builds the filter for the caller: sellers are pinned
// to their own tours.
func (s *Server) bookingScope(c *gin.Context) (ports.BookingFilter, error) {
	var filter ports.BookingFilter
	if currentRole(c) != models.RoleAdmin {
		id := currentUserID(c)
		filter.SellerID = &id
	}
	if v := c.Query("post_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errors.InvalidInput("post_id must be a UUID")
		}
		filter.PostID = &id
	}
	if v := c.Query("status"); v != "" {
		status := models.BookingStatus(v)
		filter.Status = &status
	}
	return filter, nil
}

func (s *Server) handleListBookings(c *gin.Context) {
	filter, err := s.bookingScope(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	params := pagination.ParseParams(c.Query("page"), c.Query("per_page"), s.pageOpt)
	src := pagination.SourceFuncs[*models.Booking]{
		CountFn: func(ctx context.Context) (int64, error) {
			return s.c.BookingRepo.Count(ctx, filter)
		},
		PageFn: func(ctx context.Context, limit, offset int) ([]*models.Booking, error) {
			return s.c.BookingRepo.Page(ctx, filter, limit, offset)
		},
		EachFn: func(ctx context.Context, fn func(*models.Booking) error) error {
			return s.c.BookingRepo.Each(ctx, filter, fn)
		},
	}
	if err := pagination.Respond(c.Request.Context(), c.Writer, src, params, s.pageOpt); err != nil {
		if c.Writer.Written() {
			s.logger.Warn("booking stream aborted", zap.Error(err))
			return
		}
		s.respondError(c, err)
	}
}

type bookingStatusRequest struct {
	Status models.BookingStatus `json:"status"`
}

func (s *Server) handleBookingStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("booking id must be a UUID"))
		return
	}
	var req bookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	booking, err := s.c.BookingService.Transition(c.Request.Context(), id, currentUserID(c), currentRole(c), req.Status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.c.Normalizer.Invalidate("booking", booking.ID.String())
	s.respondRecord(c, http.StatusOK, "booking", booking.ID.String(), booking.UpdatedAt, booking)
}

func (s *Server) handleBookingStats(c *gin.Context) {
	stats, err := s.c.BookingService.Stats(c.Request.Context(), ports.BookingFilter{})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleExportBookings(c *gin.Context) {
	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := s.c.Exporter.Bookings(c.Request.Context(), ports.BookingFilter{}, c.Writer); err != nil {
		s.logger.Error("booking export failed", zap.Error(err))
	}
}
