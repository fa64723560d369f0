package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourhub/internal/errors"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	user, err := s.c.AuthService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondRecord(c, http.StatusCreated, "user", user.ID.String(), user.UpdatedAt, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	user, token, err := s.c.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	auth := s.c.Config.Auth
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(auth.TokenTTL.Seconds()), "/", "", auth.CookieSecure, true)
	s.respondRecord(c, http.StatusOK, "user", user.ID.String(), user.UpdatedAt, user)
}

func (s *Server) handleLogout(c *gin.Context) {
	auth := s.c.Config.Auth
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", auth.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.c.AuthService.CurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondRecord(c, http.StatusOK, "user", user.ID.String(), user.UpdatedAt, user)
}

type mediaCredentialsRequest struct {
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

func (s *Server) handleUpdateMediaCredentials(c *gin.Context) {
	var req mediaCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	user, err := s.c.AuthService.UpdateMediaCredentials(c.Request.Context(), currentUserID(c),
		req.CloudName, req.APIKey, req.APISecret)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.c.Normalizer.Invalidate("user", user.ID.String())
	s.respondRecord(c, http.StatusOK, "user", user.ID.String(), user.UpdatedAt, user)
}

type sellerApplyRequest struct {
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
}

func (s *Server) handleSellerApply(c *gin.Context) {
	var req sellerApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("invalid request body"))
		return
	}

	app, err := s.c.SellerService.Apply(c.Request.Context(), currentUserID(c), req.CompanyName, req.Description)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}
