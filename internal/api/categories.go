package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bloghq/blogapi/internal/models"
)

// Category endpoints

// listCategories handles GET /api/v1/categories.
//
// popular=true orders categories by published post count, with_post_count=true
// attaches counts to the alphabetical listing.
func (s *Server) listCategories(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 100 {
		limit = 100
	}

	var (
		categories []*models.Category
		err        error
	)
	if c.Query("popular") == "true" {
		categories, err = s.categories.PopularCategories(c.Request.Context(), limit)
	} else {
		withPostCount := c.Query("with_post_count") == "true"
		categories, err = s.categories.ListCategories(c.Request.Context(), withPostCount, limit)
	}
	if err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to list categories: "+err.Error())
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}

	s.successResponse(c, categories)
}

// getCategoryBySlug handles GET /api/v1/categories/:slug
func (s *Server) getCategoryBySlug(c *gin.Context) {
	category, err := s.categories.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.serviceError(c, err)
		return
	}

	s.successResponse(c, category)
}

// getCategoryPosts handles GET /api/v1/categories/:slug/posts
func (s *Server) getCategoryPosts(c *gin.Context) {
	slug := c.Param("slug")
	page, limit := s.parsePagination(c)
	ctx := c.Request.Context()

	category, err := s.categories.GetCategoryBySlug(ctx, slug)
	if err != nil {
		s.serviceError(c, err)
		return
	}

	posts, err := s.posts.PostsByCategory(ctx, slug, limit, (page-1)*limit)
	if err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to list posts: "+err.Error())
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	s.successResponse(c, gin.H{
		"category": category,
		"posts":    posts,
		"page":     page,
		"limit":    limit,
	})
}

// createCategory handles POST /api/v1/categories
func (s *Server) createCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	category, err := s.categories.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		s.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Data:    category,
		Message: "Category created successfully",
	})
}

// updateCategory handles PUT /api/v1/categories/:slug
func (s *Server) updateCategory(c *gin.Context) {
	category, err := s.categories.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.serviceError(c, err)
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	updated, err := s.categories.UpdateCategory(c.Request.Context(), category.ID, &req)
	if err != nil {
		s.serviceError(c, err)
		return
	}

	s.successResponse(c, updated)
}

// deleteCategory handles DELETE /api/v1/categories/:slug
func (s *Server) deleteCategory(c *gin.Context) {
	category, err := s.categories.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.serviceError(c, err)
		return
	}

	if err := s.categories.DeleteCategory(c.Request.Context(), category.ID); err != nil {
		s.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Category deleted successfully",
	})
}
