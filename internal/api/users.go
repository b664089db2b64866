package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/models"
	"github.com/bloghq/blogapi/internal/shared"
)

// User endpoints

// registerUser handles POST /api/v1/users/register
func (s *Server) registerUser(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := s.users.CreateUser(c.Request.Context(), &req)
	if err != nil {
		s.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Data:    user,
		Message: "User registered successfully",
	})
}

// listUsers handles GET /api/v1/users. Deactivated accounts are hidden by
// default; active=false lists everyone.
func (s *Server) listUsers(c *gin.Context) {
	activeOnly := shared.ParseBoolFilter(c, "active")
	switch {
	case activeOnly == nil:
		active := true
		activeOnly = &active
	case !*activeOnly:
		activeOnly = nil
	}
	page, limit := s.parsePagination(c)

	users, err := s.users.ListUsers(c.Request.Context(), activeOnly, limit, (page-1)*limit)
	if err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to list users: "+err.Error())
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	s.successResponse(c, users)
}

// getUser handles GET /api/v1/users/:id
//
// The path value is looked up as an ID first and as a username second, so
// profile URLs work with either.
func (s *Server) getUser(c *gin.Context) {
	id := c.Param("id")

	user, err := s.users.GetUser(c.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		user, err = s.users.GetUserByUsername(c.Request.Context(), id)
	}
	if err != nil {
		s.serviceError(c, err)
		return
	}

	// Inactive profiles are hidden from the public.
	if !user.IsActive {
		s.errorResponse(c, http.StatusNotFound, "User not found")
		return
	}

	s.successResponse(c, user)
}

// getUserPosts handles GET /api/v1/users/:id/posts
func (s *Server) getUserPosts(c *gin.Context) {
	id := c.Param("id")
	page, limit := s.parsePagination(c)

	user, err := s.users.GetUser(c.Request.Context(), id)
	if err != nil {
		s.serviceError(c, err)
		return
	}

	// Drafts stay private unless the author themselves is asking.
	publishedOnly := true
	if current := s.currentUser(c); current != nil && (current.ID == user.ID || current.IsSuperuser) {
		publishedOnly = false
	}

	posts, err := s.posts.PostsByAuthor(c.Request.Context(), user.ID, publishedOnly, limit, (page-1)*limit)
	if err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to list posts: "+err.Error())
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	total, err := s.users.PostCount(c.Request.Context(), user.ID)
	if err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to count posts: "+err.Error())
		return
	}

	s.successResponse(c, gin.H{
		"user":        user,
		"posts":       posts,
		"page":        page,
		"limit":       limit,
		"total_posts": total,
	})
}

// updateUser handles PUT /api/v1/users/:id
func (s *Server) updateUser(c *gin.Context) {
	id := c.Param("id")

	current := s.currentUser(c)
	if current == nil || (current.ID != id && !current.IsSuperuser) {
		s.errorResponse(c, http.StatusForbidden, "Not enough permissions")
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	// Only superusers may toggle account status.
	if req.IsActive != nil && !current.IsSuperuser {
		s.errorResponse(c, http.StatusForbidden, "Not enough permissions")
		return
	}

	user, err := s.users.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		s.serviceError(c, err)
		return
	}

	s.successResponse(c, user)
}

// deleteUser handles DELETE /api/v1/users/:id
//
// Deleting a user also deletes all posts they authored.
func (s *Server) deleteUser(c *gin.Context) {
	id := c.Param("id")

	if err := s.users.DeleteUser(c.Request.Context(), id); err != nil {
		s.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}
