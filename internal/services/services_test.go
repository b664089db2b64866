package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/db/sqlite"
	"github.com/bloghq/blogapi/internal/models"
	"github.com/bloghq/blogapi/internal/services"
)

func newTestStore(t *testing.T) db.Store {
	t.Helper()

	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Connect(context.Background()))
	t.Cleanup(func() { store.Disconnect(context.Background()) })

	return store
}

func registerRequest(username string) *models.RegisterUserRequest {
	return &models.RegisterUserRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secretpassword123",
		FullName: "Test User",
	}
}

func TestUserServiceCreate(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewUserService(store)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, registerRequest("johndoe"))
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	// The raw password must never be stored.
	assert.NotEqual(t, "secretpassword123", user.HashedPassword)
	assert.NotEmpty(t, user.HashedPassword)
}

func TestUserServiceUniqueness(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewUserService(store)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, registerRequest("johndoe"))
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, registerRequest("johndoe"))
	assert.ErrorIs(t, err, services.ErrUsernameTaken)

	req := registerRequest("someoneelse")
	req.Email = "johndoe@example.com"
	_, err = svc.CreateUser(ctx, req)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestUserServiceUpdate(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewUserService(store)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, registerRequest("johndoe"))
	require.NoError(t, err)
	other, err := svc.CreateUser(ctx, registerRequest("other"))
	require.NoError(t, err)

	bio := "New bio"
	updated, err := svc.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "New bio", updated.Bio)
	assert.Equal(t, "johndoe@example.com", updated.Email)

	taken := other.Email
	_, err = svc.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	_, err = svc.UpdateUser(ctx, "missing", &models.UpdateUserRequest{Bio: &bio})
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestCategoryServiceConflicts(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCategoryService(store)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "Technology", Slug: "technology"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "Tech Stuff", Slug: "technology"})
	assert.ErrorIs(t, err, services.ErrSlugTaken)

	_, err = svc.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "Technology", Slug: "tech-2"})
	assert.ErrorIs(t, err, services.ErrCategoryNameTaken)

	// Updating a category to its own slug is not a conflict.
	category, err := svc.GetCategoryBySlug(ctx, "technology")
	require.NoError(t, err)
	desc := "All things tech"
	updated, err := svc.UpdateCategory(ctx, category.ID, &models.UpdateCategoryRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "All things tech", updated.Description)
}

func TestPostServiceCreate(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)
	categories := services.NewCategoryService(store)
	posts := services.NewPostService(store)
	ctx := context.Background()

	author, err := users.CreateUser(ctx, registerRequest("author"))
	require.NoError(t, err)
	tech, err := categories.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "Technology", Slug: "technology"})
	require.NoError(t, err)

	post, err := posts.CreatePost(ctx, &models.CreatePostRequest{
		Title:       "First Post",
		Slug:        "first-post",
		Content:     "Hello world",
		IsPublished: true,
		CategoryIDs: []string{tech.ID},
	}, author.ID)
	require.NoError(t, err)
	require.NotNil(t, post.Author)
	assert.Equal(t, "author", post.Author.Username)
	require.Len(t, post.Categories, 1)

	_, err = posts.CreatePost(ctx, &models.CreatePostRequest{
		Title:   "Duplicate",
		Slug:    "first-post",
		Content: "x",
	}, author.ID)
	assert.ErrorIs(t, err, services.ErrSlugTaken)

	_, err = posts.CreatePost(ctx, &models.CreatePostRequest{
		Title:       "Bad categories",
		Slug:        "bad-categories",
		Content:     "x",
		CategoryIDs: []string{tech.ID, "missing"},
	}, author.ID)
	assert.ErrorIs(t, err, services.ErrCategoryMissing)
}

func TestPostServiceDraftVisibility(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)
	posts := services.NewPostService(store)
	ctx := context.Background()

	author, err := users.CreateUser(ctx, registerRequest("author"))
	require.NoError(t, err)

	_, err = posts.CreatePost(ctx, &models.CreatePostRequest{
		Title:   "Draft",
		Slug:    "draft-post",
		Content: "wip",
	}, author.ID)
	require.NoError(t, err)

	_, err = posts.GetPublishedPostBySlug(ctx, "draft-post")
	assert.ErrorIs(t, err, db.ErrNotFound)

	post, err := posts.GetPostBySlug(ctx, "draft-post")
	require.NoError(t, err)
	assert.False(t, post.IsPublished)

	all, err := posts.PostsByAuthor(ctx, author.ID, false, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	published, err := posts.PostsByAuthor(ctx, author.ID, true, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, published)
}

func TestPostServiceUpdate(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)
	categories := services.NewCategoryService(store)
	posts := services.NewPostService(store)
	ctx := context.Background()

	author, err := users.CreateUser(ctx, registerRequest("author"))
	require.NoError(t, err)
	tech, err := categories.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "Technology", Slug: "technology"})
	require.NoError(t, err)
	career, err := categories.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "Career", Slug: "career"})
	require.NoError(t, err)

	post, err := posts.CreatePost(ctx, &models.CreatePostRequest{
		Title:       "Original",
		Slug:        "original",
		Content:     "x",
		CategoryIDs: []string{tech.ID},
	}, author.ID)
	require.NoError(t, err)

	title := "Renamed"
	newCategories := []string{career.ID}
	updated, err := posts.UpdatePost(ctx, post.ID, &models.UpdatePostRequest{
		Title:       &title,
		CategoryIDs: &newCategories,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "career", updated.Categories[0].Slug)

	other, err := posts.CreatePost(ctx, &models.CreatePostRequest{
		Title:   "Other",
		Slug:    "other",
		Content: "x",
	}, author.ID)
	require.NoError(t, err)

	conflict := "original"
	_, err = posts.UpdatePost(ctx, other.ID, &models.UpdatePostRequest{Slug: &conflict})
	assert.ErrorIs(t, err, services.ErrSlugTaken)
}

func TestPostServicePublishDuePosts(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)
	posts := services.NewPostService(store)
	ctx := context.Background()

	author, err := users.CreateUser(ctx, registerRequest("author"))
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	_, err = posts.CreatePost(ctx, &models.CreatePostRequest{
		Title:       "Scheduled",
		Slug:        "scheduled",
		Content:     "x",
		PublishedAt: &past,
	}, author.ID)
	require.NoError(t, err)

	count, err := posts.PublishDuePosts(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	post, err := posts.GetPublishedPostBySlug(ctx, "scheduled")
	require.NoError(t, err)
	assert.True(t, post.IsPublished)
}
