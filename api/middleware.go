package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tourhub/internal/errors"
	"tourhub/models"
)

const (
	ctxUserIDKey = "auth.user_id"
	ctxRoleKey   = "auth.role"
)

type roleGroup int

const (
	groupSellerAdmin roleGroup = iota
	groupAdmin
)

func (g roleGroup) roles() []models.Role {
	switch g {
	case groupAdmin:
		return models.GroupAdmin
	default:
		return models.GroupSellerAdmin
	}
}

// requestLogger logs each request with zap.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		c.Next()

		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// requireAuth verifies the access token cookie and loads the account.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(s.c.Config.Auth.CookieName)
		if err != nil || token == "" {
			s.abortError(c, errors.Unauthorized("authentication required"))
			return
		}

		userID, _, err := s.c.Tokens.Verify(token)
		if err != nil {
			s.abortError(c, err)
			return
		}

		// The role comes from the database, not the token, so role
		// changes and deactivations apply immediately.
		user, err := s.c.AuthService.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			s.abortError(c, errors.Unauthorized("authentication required"))
			return
		}

		c.Set(ctxUserIDKey, user.ID)
		c.Set(ctxRoleKey, user.Role)
		c.Next()
	}
}

// requireGroup enforces flat role-group membership.
func (s *Server) requireGroup(group roleGroup) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := currentRole(c)
		if !role.InGroup(group.roles()) {
			s.abortError(c, errors.Forbidden("insufficient role"))
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ctxUserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func currentRole(c *gin.Context) models.Role {
	if v, ok := c.Get(ctxRoleKey); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}
