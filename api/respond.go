package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tourhub/internal/errors"
)

// statusFor maps application error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeValidationError, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeUnauthorized:
		return http.StatusUnauthorized
	case errors.CodeForbidden:
		return http.StatusForbidden
	case errors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as JSON, hiding internals behind a
// generic message for 5xx.
func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		message = "internal error"
	}
	c.JSON(status, gin.H{"error": message, "code": errors.GetCode(err)})
}

func (s *Server) abortError(c *gin.Context, err error) {
	s.respondError(c, err)
	c.Abort()
}

// respondRecord normalizes a single model before writing it.
func (s *Server) respondRecord(c *gin.Context, status int, kind, id string, updatedAt time.Time, model interface{}) {
	doc, err := s.c.Normalizer.Record(kind, id, updatedAt, model)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(status, doc)
}
