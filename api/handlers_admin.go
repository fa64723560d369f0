package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tourhub/internal/errors"
)

// --- accounts ---

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.c.UserRepo.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	docs := make([]map[string]interface{}, 0, len(users))
	for _, user := range users {
		doc, err := s.c.Normalizer.Record("user", user.ID.String(), user.UpdatedAt, user)
		if err != nil {
			s.respondError(c, err)
			return
		}
		docs = append(docs, doc)
	}
	c.JSON(http.StatusOK, gin.H{"data": docs})
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (s *Server) handleSetUserActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("user id must be a UUID"))
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	// Admins cannot lock themselves out.
	if id == currentUserID(c) && !req.Active {
		s.respondError(c, errors.Conflict("cannot deactivate your own account"))
		return
	}

	if err := s.c.UserRepo.SetActive(c.Request.Context(), id, req.Active); err != nil {
		s.respondError(c, err)
		return
	}
	s.c.Normalizer.Invalidate("user", id.String())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- seller applications ---

func (s *Server) handleListApplications(c *gin.Context) {
	apps, err := s.c.SellerService.Pending(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": apps})
}

func (s *Server) handleApproveApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("application id must be a UUID"))
		return
	}
	if err := s.c.SellerService.Approve(c.Request.Context(), id, currentUserID(c)); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleRejectApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("application id must be a UUID"))
		return
	}
	if err := s.c.SellerService.Reject(c.Request.Context(), id, currentUserID(c)); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
