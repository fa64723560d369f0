package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tourhub/app"
	"tourhub/internal/errors"
	"tourhub/internal/pagination"
	"tourhub/models"
)

// parsePostFilter reads the optional list filters from the query.
func parsePostFilter(c *gin.Context) (models.PostFilter, error) {
	var filter models.PostFilter
	if v := c.Query("status"); v != "" {
		filter.Status = models.PostStatus(v)
	}
	for query, target := range map[string]**uuid.UUID{
		"category_id":    &filter.CategoryID,
		"destination_id": &filter.DestinationID,
		"author_id":      &filter.AuthorID,
	} {
		if v := c.Query(query); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				return filter, errors.InvalidInput(query + " must be a UUID")
			}
			*target = &id
		}
	}
	return filter, nil
}

// respondPostPage runs hybrid pagination over the filtered posts.
func (s *Server) respondPostPage(c *gin.Context, filter models.PostFilter) {
	params := pagination.ParseParams(c.Query("page"), c.Query("per_page"), s.pageOpt)
	src := pagination.SourceFuncs[*models.Post]{
		CountFn: func(ctx context.Context) (int64, error) {
			return s.c.PostRepo.Count(ctx, filter)
		},
		PageFn: func(ctx context.Context, limit, offset int) ([]*models.Post, error) {
			return s.c.PostRepo.Page(ctx, filter, limit, offset)
		},
		EachFn: func(ctx context.Context, fn func(*models.Post) error) error {
			return s.c.PostRepo.Each(ctx, filter, fn)
		},
	}
	if err := pagination.Respond(c.Request.Context(), c.Writer, src, params, s.pageOpt); err != nil {
		if c.Writer.Written() {
			s.logger.Warn("post stream aborted", zap.Error(err))
			return
		}
		s.respondError(c, err)
	}
}

// handleListTours is the public catalogue: published posts only.
func (s *Server) handleListTours(c *gin.Context) {
	filter, err := parsePostFilter(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	filter.Status = models.PostPublished
	s.respondPostPage(c, filter)
}

func (s *Server) handleGetTour(c *gin.Context) {
	post, err := s.c.PostRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if post.Status != models.PostPublished {
		s.respondError(c, errors.NotFound("post"))
		return
	}
	// The view counter moves on every fetch without touching
	// updated_at, so this response skips the normalize cache.
	doc, err := s.c.Normalizer.Model(post)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// handleListPosts is the management listing. Sellers see their own
// posts; admins see everything.
func (s *Server) handleListPosts(c *gin.Context) {
	filter, err := parsePostFilter(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if currentRole(c) != models.RoleAdmin {
		id := currentUserID(c)
		filter.AuthorID = &id
	}
	s.respondPostPage(c, filter)
}

func (s *Server) handleCreatePost(c *gin.Context) {
	var in app.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	post, err := s.c.PostService.Create(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondRecord(c, http.StatusCreated, "post", post.ID.String(), post.UpdatedAt, post)
}

func (s *Server) handleUpdatePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("post id must be a UUID"))
		return
	}
	var in app.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	post, err := s.c.PostService.Update(c.Request.Context(), id, currentUserID(c), currentRole(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.c.Normalizer.Invalidate("post", post.ID.String())
	s.respondRecord(c, http.StatusOK, "post", post.ID.String(), post.UpdatedAt, post)
}

func (s *Server) handleDeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("post id must be a UUID"))
		return
	}
	if err := s.c.PostService.Delete(c.Request.Context(), id, currentUserID(c), currentRole(c)); err != nil {
		s.respondError(c, err)
		return
	}
	s.c.Normalizer.Invalidate("post", id.String())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
