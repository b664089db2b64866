package db

import (
	"context"
	"time"

	"github.com/bloghq/blogapi/internal/db/sqlstore"
	"github.com/bloghq/blogapi/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sqlstore.ErrNotFound

// Store defines the storage operations used by the application. Both the
// SQLite and PostgreSQL backends implement it.
type Store interface {
	// Connection management
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error

	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, activeOnly *bool, limit, offset int) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	CountUserPosts(ctx context.Context, userID string) (int, error)

	// Category operations
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	GetCategoriesByIDs(ctx context.Context, ids []string) ([]*models.Category, error)
	ListCategories(ctx context.Context, limit int) ([]*models.Category, error)
	ListCategoriesWithPostCount(ctx context.Context) ([]*models.Category, error)
	ListPopularCategories(ctx context.Context, limit int) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Post operations
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id string) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPublishedPosts(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListFeaturedPosts(ctx context.Context, limit int) ([]*models.Post, error)
	ListPostsByCategory(ctx context.Context, categorySlug string, limit, offset int) ([]*models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*models.Post, error)
	SearchPosts(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
	CountPublishedPosts(ctx context.Context) (int, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	PublishDuePosts(ctx context.Context, now time.Time) (int, error)
}
