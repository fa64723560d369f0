package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tourhub/internal/errors"
	"tourhub/models"
)

// --- destinations ---

func (s *Server) handleListDestinations(c *gin.Context) {
	dests, err := s.c.DestinationRepo.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dests})
}

func (s *Server) handleGetDestination(c *gin.Context) {
	dest, err := s.c.DestinationRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondRecord(c, http.StatusOK, "destination", dest.ID.String(), dest.UpdatedAt, dest)
}

type destinationRequest struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (s *Server) handleCreateDestination(c *gin.Context) {
	var req destinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	if req.Name == "" {
		s.respondError(c, errors.ValidationError("name is required"))
		return
	}

	dest := &models.Destination{
		Name:        req.Name,
		Slug:        models.Slugify(req.Name),
		Country:     req.Country,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.c.DestinationRepo.Create(c.Request.Context(), dest); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dest)
}

func (s *Server) handleUpdateDestination(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("destination id must be a UUID"))
		return
	}
	var req destinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	dest, err := s.c.DestinationRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	dest.Name = req.Name
	dest.Slug = models.Slugify(req.Name)
	dest.Country = req.Country
	dest.Description = req.Description
	dest.ImageURL = req.ImageURL
	if err := s.c.DestinationRepo.Update(c.Request.Context(), dest); err != nil {
		s.respondError(c, err)
		return
	}
	s.c.Normalizer.Invalidate("destination", dest.ID.String())
	c.JSON(http.StatusOK, dest)
}

func (s *Server) handleDeleteDestination(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("destination id must be a UUID"))
		return
	}
	if err := s.c.DestinationRepo.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	s.c.Normalizer.Invalidate("destination", id.String())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- categories ---

func (s *Server) handleListCategories(c *gin.Context) {
	cats, err := s.c.CategoryRepo.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cats})
}

func (s *Server) handleGetCategory(c *gin.Context) {
	cat, err := s.c.CategoryRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondRecord(c, http.StatusOK, "category", cat.ID.String(), cat.UpdatedAt, cat)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	if req.Name == "" {
		s.respondError(c, errors.ValidationError("name is required"))
		return
	}

	cat := &models.Category{
		Name:        req.Name,
		Slug:        models.Slugify(req.Name),
		Description: req.Description,
	}
	if err := s.c.CategoryRepo.Create(c.Request.Context(), cat); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("category id must be a UUID"))
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	cat, err := s.c.CategoryRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	cat.Name = req.Name
	cat.Slug = models.Slugify(req.Name)
	cat.Description = req.Description
	if err := s.c.CategoryRepo.Update(c.Request.Context(), cat); err != nil {
		s.respondError(c, err)
		return
	}
	s.c.Normalizer.Invalidate("category", cat.ID.String())
	c.JSON(http.StatusOK, cat)
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("category id must be a UUID"))
		return
	}
	if err := s.c.CategoryRepo.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	s.c.Normalizer.Invalidate("category", id.String())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
