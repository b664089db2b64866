package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bloghq/blogapi/internal/models"
)

// Post endpoints

// listPosts handles GET /api/v1/posts.
//
// Optional query filters narrow the listing: search=<query> runs a text
// search, category=<slug> restricts to a category, featured=true returns
// only featured posts. The filters are mutually exclusive and checked in
// that order.
func (s *Server) listPosts(c *gin.Context) {
	page, limit := s.parsePagination(c)
	offset := (page - 1) * limit
	ctx := c.Request.Context()

	var (
		posts []*models.Post
		total int
		err   error
	)

	switch {
	case c.Query("search") != "":
		query := strings.TrimSpace(c.Query("search"))
		if len(query) < 2 {
			s.errorResponse(c, http.StatusBadRequest, "Search query must be at least 2 characters")
			return
		}
		posts, err = s.posts.SearchPosts(ctx, query, limit, offset)
		total = offset + len(posts)
	case c.Query("category") != "":
		slug := c.Query("category")
		if _, err := s.categories.GetCategoryBySlug(ctx, slug); err != nil {
			s.serviceError(c, err)
			return
		}
		posts, err = s.posts.PostsByCategory(ctx, slug, limit, offset)
		total = offset + len(posts)
	case c.Query("featured") == "true":
		posts, err = s.posts.FeaturedPosts(ctx, limit)
		total = len(posts)
	default:
		posts, err = s.posts.ListPublishedPosts(ctx, limit, offset)
		if err == nil {
			total, err = s.posts.CountPublishedPosts(ctx)
		}
	}
	if err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to list posts: "+err.Error())
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	c.JSON(http.StatusOK, models.PaginatedResponse{
		Data: posts,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      int64(total),
			TotalPages: (total + limit - 1) / limit,
		},
	})
}

// getPostBySlug handles GET /api/v1/posts/:slug. Drafts are visible only to
// their author and to superusers.
func (s *Server) getPostBySlug(c *gin.Context) {
	post, err := s.posts.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.serviceError(c, err)
		return
	}

	if !post.IsPublished {
		current := s.currentUser(c)
		if current == nil || (current.ID != post.AuthorID && !current.IsSuperuser) {
			s.errorResponse(c, http.StatusNotFound, "Post not found")
			return
		}
	}

	s.successResponse(c, post)
}

// createPost handles POST /api/v1/posts. The authenticated user becomes the
// author.
func (s *Server) createPost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	current := s.currentUser(c)
	post, err := s.posts.CreatePost(c.Request.Context(), &req, current.ID)
	if err != nil {
		s.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Data:    post,
		Message: "Post created successfully",
	})
}

// updatePost handles PUT /api/v1/posts/:slug.
func (s *Server) updatePost(c *gin.Context) {
	post, err := s.posts.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.serviceError(c, err)
		return
	}

	current := s.currentUser(c)
	if current.ID != post.AuthorID && !current.IsSuperuser {
		s.errorResponse(c, http.StatusForbidden, "Not enough permissions")
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	updated, err := s.posts.UpdatePost(c.Request.Context(), post.ID, &req)
	if err != nil {
		s.serviceError(c, err)
		return
	}

	s.successResponse(c, updated)
}

// deletePost handles DELETE /api/v1/posts/:slug.
func (s *Server) deletePost(c *gin.Context) {
	post, err := s.posts.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.serviceError(c, err)
		return
	}

	current := s.currentUser(c)
	if current.ID != post.AuthorID && !current.IsSuperuser {
		s.errorResponse(c, http.StatusForbidden, "Not enough permissions")
		return
	}

	if err := s.posts.DeletePost(c.Request.Context(), post.ID); err != nil {
		s.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Post deleted successfully",
	})
}
