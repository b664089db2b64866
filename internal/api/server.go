// Package api implements the blog REST API on gin.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/bloghq/blogapi/internal/auth"
	"github.com/bloghq/blogapi/internal/config"
	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/models"
	"github.com/bloghq/blogapi/internal/services"
)

const version = "1.0.0"

// Server wires the HTTP routes to the blog services.
type Server struct {
	settings   *config.Settings
	store      db.Store
	router     *gin.Engine
	auth       *auth.Service
	users      *services.UserService
	posts      *services.PostService
	categories *services.CategoryService

	// Shields the login endpoint from credential stuffing.
	loginLimiter *rate.Limiter
}

// NewServer creates a new API server backed by the given store.
func NewServer(settings *config.Settings, store db.Store) *Server {
	if !settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		settings:     settings,
		store:        store,
		auth:         auth.New(settings, store),
		users:        services.NewUserService(store),
		posts:        services.NewPostService(store),
		categories:   services.NewCategoryService(store),
		loginLimiter: rate.NewLimiter(rate.Limit(5), 10),
	}

	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	router := gin.New()
	router.Use(gin.Recovery(), s.corsMiddleware())

	router.GET("/", s.root)
	router.GET("/health", s.healthCheck)

	v1 := router.Group(s.settings.APIV1Prefix)
	{
		v1.GET("/health", s.healthCheck)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", s.loginRateLimit(), s.login)
			authGroup.GET("/me", s.authRequired(), s.me)
			authGroup.POST("/logout", s.logout)
		}

		users := v1.Group("/users")
		{
			users.POST("/register", s.registerUser)
			users.GET("", s.listUsers)
			users.GET("/:id", s.getUser)
			users.GET("/:id/posts", s.authOptional(), s.getUserPosts)
			users.PUT("/:id", s.authRequired(), s.updateUser)
			users.DELETE("/:id", s.authRequired(), s.superuserRequired(), s.deleteUser)
		}

		// Featured and search listings are query filters on the post list
		// so the slug segment keeps a single wildcard route.
		posts := v1.Group("/posts")
		{
			posts.GET("", s.listPosts)
			posts.GET("/:slug", s.authOptional(), s.getPostBySlug)
			posts.POST("", s.authRequired(), s.createPost)
			posts.PUT("/:slug", s.authRequired(), s.updatePost)
			posts.DELETE("/:slug", s.authRequired(), s.deletePost)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", s.listCategories)
			categories.GET("/:slug", s.getCategoryBySlug)
			categories.GET("/:slug/posts", s.getCategoryPosts)
			categories.POST("", s.authRequired(), s.superuserRequired(), s.createCategory)
			categories.PUT("/:slug", s.authRequired(), s.superuserRequired(), s.updateCategory)
			categories.DELETE("/:slug", s.authRequired(), s.superuserRequired(), s.deleteCategory)
		}
	}

	s.router = router
}

// root handles GET /
func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + s.settings.AppName,
		"api":     s.settings.APIV1Prefix,
		"version": version,
	})
}

// healthCheck handles GET /health and GET {prefix}/health
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, models.APIResponse{
			Success: false,
			Error:   "Database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":      "healthy",
			"app":         s.settings.AppName,
			"environment": s.settings.Environment,
			"timestamp":   time.Now(),
			"version":     version,
		},
	})
}

func (s *Server) successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    data,
	})
}

func (s *Server) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// serviceError maps service and store errors onto HTTP status codes.
func (s *Server) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		s.errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSlugTaken),
		errors.Is(err, services.ErrCategoryNameTaken),
		errors.Is(err, services.ErrCategoryMissing):
		s.errorResponse(c, http.StatusBadRequest, err.Error())
	default:
		s.errorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

// parsePagination reads page/limit query parameters with sane bounds.
func (s *Server) parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
