package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tourhub/internal/errors"
)

func (s *Server) handleListGallery(c *gin.Context) {
	imgs, err := s.c.GalleryRepo.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": imgs})
}

func (s *Server) handleMyGallery(c *gin.Context) {
	imgs, err := s.c.GalleryRepo.ListByUploader(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": imgs})
}

func (s *Server) handleUploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, errors.InvalidInput("file field is required"))
		return
	}
	if file.Size > s.c.Config.Media.MaxUploadMB<<20 {
		s.respondError(c, errors.ValidationError("file exceeds the upload size limit"))
		return
	}

	src, err := file.Open()
	if err != nil {
		s.respondError(c, errors.Wrap(err, "open upload"))
		return
	}
	defer src.Close()

	img, err := s.c.GalleryService.Upload(c.Request.Context(), currentUserID(c),
		c.PostForm("title"), c.PostForm("tags"), file.Filename, src)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

func (s *Server) handleDeleteImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("image id must be a UUID"))
		return
	}
	if err := s.c.GalleryService.Delete(c.Request.Context(), id, currentUserID(c), currentRole(c)); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
