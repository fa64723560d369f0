package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tourhub/internal/errors"
	"tourhub/models"
)

// --- comments ---

func (s *Server) handleListComments(c *gin.Context) {
	postID, err := uuid.Parse(c.Query("post_id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("post_id must be a UUID"))
		return
	}
	comments, err := s.c.CommentRepo.ListApprovedByPost(c.Request.Context(), postID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": comments})
}

type commentRequest struct {
	PostID      uuid.UUID `json:"post_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Body        string    `json:"body"`
}

func (s *Server) handleCreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	if req.AuthorName == "" || req.Body == "" {
		s.respondError(c, errors.ValidationError("author name and body are required"))
		return
	}

	// The post must exist before accepting feedback for it.
	if _, err := s.c.PostRepo.GetByID(c.Request.Context(), req.PostID); err != nil {
		s.respondError(c, err)
		return
	}

	comment := &models.Comment{
		PostID:      req.PostID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Body:        req.Body,
	}
	if err := s.c.CommentRepo.Create(c.Request.Context(), comment); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) handleListPendingComments(c *gin.Context) {
	comments, err := s.c.CommentRepo.ListPending(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": comments})
}

func (s *Server) handleApproveComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("comment id must be a UUID"))
		return
	}
	if err := s.c.CommentRepo.Approve(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("comment id must be a UUID"))
		return
	}
	if err := s.c.CommentRepo.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- FAQs ---

func (s *Server) handleListFAQs(c *gin.Context) {
	faqs, err := s.c.FAQRepo.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": faqs})
}

type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

func (s *Server) handleCreateFAQ(c *gin.Context) {
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	if req.Question == "" || req.Answer == "" {
		s.respondError(c, errors.ValidationError("question and answer are required"))
		return
	}

	faq := &models.FAQ{Question: req.Question, Answer: req.Answer, Position: req.Position}
	if err := s.c.FAQRepo.Create(c.Request.Context(), faq); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, faq)
}

func (s *Server) handleUpdateFAQ(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("faq id must be a UUID"))
		return
	}
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	faq, err := s.c.FAQRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.Position = req.Position
	if err := s.c.FAQRepo.Update(c.Request.Context(), faq); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, faq)
}

func (s *Server) handleDeleteFAQ(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("faq id must be a UUID"))
		return
	}
	if err := s.c.FAQRepo.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
