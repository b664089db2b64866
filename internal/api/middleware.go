package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bloghq/blogapi/internal/auth"
	"github.com/bloghq/blogapi/internal/models"
)

const currentUserKey = "currentUser"

// corsMiddleware allows cross-origin requests from the configured origin.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	origin := s.settings.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authRequired validates the Bearer token and stores the user in the
// context.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIResponse{
				Success: false,
				Error:   "Could not validate credentials",
			})
			return
		}

		user, err := s.auth.UserFromToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInactiveUser) {
				c.AbortWithStatusJSON(http.StatusBadRequest, models.APIResponse{
					Success: false,
					Error:   "Inactive user",
				})
				return
			}
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIResponse{
				Success: false,
				Error:   "Could not validate credentials",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// authOptional stores the user in the context when a valid Bearer token is
// present and lets the request through either way. Lets public routes show
// extra data, such as drafts, to their owner.
func (s *Server) authOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, found := strings.CutPrefix(header, "Bearer "); found && token != "" {
			if user, err := s.auth.UserFromToken(c.Request.Context(), token); err == nil {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}

// superuserRequired restricts a route to superusers. Must run after
// authRequired.
func (s *Server) superuserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := s.currentUser(c)
		if user == nil || !user.IsSuperuser {
			c.AbortWithStatusJSON(http.StatusForbidden, models.APIResponse{
				Success: false,
				Error:   "Not enough permissions",
			})
			return
		}
		c.Next()
	}
}

// loginRateLimit throttles credential checks.
func (s *Server) loginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.loginLimiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.APIResponse{
				Success: false,
				Error:   "Too many login attempts, slow down",
			})
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated user set by authRequired, or nil.
func (s *Server) currentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
