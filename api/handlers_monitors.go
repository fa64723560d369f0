package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tourhub/internal/errors"
	"tourhub/internal/monitor"
	"tourhub/models"
)

func (s *Server) handleListMonitors(c *gin.Context) {
	monitors, err := s.c.MonitorRepo.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": monitors})
}

type monitorRequest struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	IntervalSeconds int    `json:"interval_seconds"`
	Enabled         *bool  `json:"enabled"`
}

func (r monitorRequest) validate() error {
	if r.Name == "" {
		return errors.ValidationError("name is required")
	}
	parsed, err := url.Parse(r.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errors.ValidationError("url must be a valid http(s) URL")
	}
	if r.IntervalSeconds < 1 {
		return errors.ValidationError("interval must be at least 1 second")
	}
	return nil
}

func (s *Server) handleCreateMonitor(c *gin.Context) {
	var req monitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(c, err)
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	m := &models.Monitor{
		Name:            req.Name,
		URL:             req.URL,
		IntervalSeconds: req.IntervalSeconds,
		Enabled:         enabled,
	}
	if err := s.c.MonitorRepo.Create(c.Request.Context(), m); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (s *Server) handleUpdateMonitor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("monitor id must be a UUID"))
		return
	}
	var req monitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(c, err)
		return
	}

	m, err := s.c.MonitorRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	m.Name = req.Name
	m.URL = req.URL
	m.IntervalSeconds = req.IntervalSeconds
	if req.Enabled != nil {
		m.Enabled = *req.Enabled
	}
	if err := s.c.MonitorRepo.Update(c.Request.Context(), m); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) handleDeleteMonitor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("monitor id must be a UUID"))
		return
	}
	if err := s.c.MonitorRepo.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleMonitorSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("monitor id must be a UUID"))
		return
	}
	if _, err := s.c.MonitorRepo.GetByID(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	checks, err := s.c.MonitorRepo.RecentChecks(c.Request.Context(), id, s.c.Config.Monitor.RetainChecks)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, monitor.Summarize(id, checks))
}
