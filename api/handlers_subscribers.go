package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tourhub/internal/errors"
	"tourhub/internal/pagination"
	"tourhub/models"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

// handleSubscribe is idempotent per email: re-subscribing an inactive
// address reactivates it.
func (s *Server) handleSubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		s.respondError(c, errors.ValidationError("a valid email is required"))
		return
	}

	sub, err := s.c.SubscriberRepo.Upsert(c.Request.Context(), email)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondRecord(c, http.StatusCreated, "subscriber", sub.ID.String(), sub.SubscribedAt, sub)
}

func (s *Server) handleUnsubscribe(c *gin.Context) {
	if err := s.c.SubscriberRepo.Unsubscribe(c.Request.Context(), c.Param("token")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleListSubscribers(c *gin.Context) {
	params := pagination.ParseParams(c.Query("page"), c.Query("per_page"), s.pageOpt)
	src := pagination.SourceFuncs[*models.Subscriber]{
		CountFn: s.c.SubscriberRepo.Count,
		PageFn:  s.c.SubscriberRepo.Page,
		EachFn: func(ctx context.Context, fn func(*models.Subscriber) error) error {
			return s.c.SubscriberRepo.Each(ctx, fn)
		},
	}
	if err := pagination.Respond(c.Request.Context(), c.Writer, src, params, s.pageOpt); err != nil {
		if c.Writer.Written() {
			s.logger.Warn("subscriber stream aborted", zap.Error(err))
			return
		}
		s.respondError(c, err)
	}
}

func (s *Server) handleExportSubscribers(c *gin.Context) {
	filename := fmt.Sprintf("subscribers_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := s.c.Exporter.Subscribers(c.Request.Context(), c.Writer); err != nil {
		s.logger.Error("subscriber export failed", zap.Error(err))
	}
}
