package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloghq/blogapi/internal/auth"
	"github.com/bloghq/blogapi/internal/models"
)

// Authentication endpoints

// login handles POST /api/v1/auth/login
func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := s.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			s.errorResponse(c, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		s.errorResponse(c, http.StatusInternalServerError, "Failed to authenticate: "+err.Error())
		return
	}

	if !user.IsActive {
		s.errorResponse(c, http.StatusBadRequest, "Inactive user")
		return
	}

	token, err := s.auth.CreateAccessToken(user.Username)
	if err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to create token: "+err.Error())
		return
	}

	// The token response is not wrapped in the standard envelope so OAuth2
	// style clients can consume it directly.
	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// me handles GET /api/v1/auth/me
func (s *Server) me(c *gin.Context) {
	s.successResponse(c, s.currentUser(c))
}

// logout handles POST /api/v1/auth/logout
//
// Tokens are stateless; logout is handled client-side by discarding the
// token.
func (s *Server) logout(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Successfully logged out",
	})
}
