package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloghq/blogapi/internal/db/sqlite"
	"github.com/bloghq/blogapi/internal/db/sqlstore"
	"github.com/bloghq/blogapi/internal/models"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Connect(context.Background()))
	t.Cleanup(func() { store.Disconnect(context.Background()) })

	return store
}

func newUser(username string) *models.User {
	return &models.User{
		ID:             uuid.New().String(),
		Username:       username,
		Email:          username + "@example.com",
		FullName:       "Test User",
		HashedPassword: "hashed",
		IsActive:       true,
	}
}

func newCategory(name, slug string) *models.Category {
	return &models.Category{
		ID:   uuid.New().String(),
		Name: name,
		Slug: slug,
	}
}

func newPost(authorID, slug string, published bool) *models.Post {
	now := time.Now().UTC()
	post := &models.Post{
		ID:          uuid.New().String(),
		Title:       "Title " + slug,
		Slug:        slug,
		Content:     "Content for " + slug,
		IsPublished: published,
		AuthorID:    authorID,
	}
	if published {
		post.PublishedAt = &now
	}
	return post
}

func TestResolvePath(t *testing.T) {
	abs, err := sqlite.ResolvePath("sqlite:///tmp/blog.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/blog.db", abs)

	abs, err = sqlite.ResolvePath("sqlite3:///tmp/blog.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/blog.db", abs)

	abs, err = sqlite.ResolvePath("relative.db")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}

func TestUserCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := newUser("johndoe")
	require.NoError(t, store.CreateUser(ctx, user))
	assert.False(t, user.CreatedAt.IsZero())

	got, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", got.Username)
	assert.True(t, got.IsActive)

	got, err = store.GetUserByUsername(ctx, "johndoe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = store.GetUserByEmail(ctx, "johndoe@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got.Bio = "Updated bio"
	got.IsActive = false
	require.NoError(t, store.UpdateUser(ctx, got))

	got, err = store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated bio", got.Bio)
	assert.False(t, got.IsActive)

	require.NoError(t, store.DeleteUser(ctx, user.ID))

	_, err = store.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, sqlstore.ErrNotFound)
}

func TestUserNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, sqlstore.ErrNotFound)

	err = store.UpdateUser(ctx, newUser("ghost"))
	assert.ErrorIs(t, err, sqlstore.ErrNotFound)

	err = store.DeleteUser(ctx, "missing")
	assert.ErrorIs(t, err, sqlstore.ErrNotFound)
}

func TestListUsersActiveFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	active := newUser("active")
	inactive := newUser("inactive")
	inactive.IsActive = false
	require.NoError(t, store.CreateUser(ctx, active))
	require.NoError(t, store.CreateUser(ctx, inactive))

	all, err := store.ListUsers(ctx, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	activeOnly := true
	users, err := store.ListUsers(ctx, &activeOnly, 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "active", users[0].Username)
}

func TestCategoryCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	category := newCategory("Technology", "technology")
	category.Color = "#3B82F6"
	require.NoError(t, store.CreateCategory(ctx, category))

	got, err := store.GetCategoryBySlug(ctx, "technology")
	require.NoError(t, err)
	assert.Equal(t, "Technology", got.Name)
	assert.Equal(t, "#3B82F6", got.Color)

	got, err = store.GetCategoryByName(ctx, "Technology")
	require.NoError(t, err)
	assert.Equal(t, category.ID, got.ID)

	got.Description = "All things tech"
	require.NoError(t, store.UpdateCategory(ctx, got))

	got, err = store.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "All things tech", got.Description)

	require.NoError(t, store.DeleteCategory(ctx, category.ID))
	_, err = store.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, sqlstore.ErrNotFound)
}

func TestGetCategoriesByIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := newCategory("A", "a")
	b := newCategory("B", "b")
	require.NoError(t, store.CreateCategory(ctx, a))
	require.NoError(t, store.CreateCategory(ctx, b))

	categories, err := store.GetCategoriesByIDs(ctx, []string{a.ID, b.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	categories, err = store.GetCategoriesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestPostCRUDWithCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	author := newUser("author")
	require.NoError(t, store.CreateUser(ctx, author))

	tech := newCategory("Technology", "technology")
	career := newCategory("Career", "career")
	require.NoError(t, store.CreateCategory(ctx, tech))
	require.NoError(t, store.CreateCategory(ctx, career))

	post := newPost(author.ID, "first-post", true)
	post.Categories = []*models.Category{tech}
	require.NoError(t, store.CreatePost(ctx, post))

	got, err := store.GetPostBySlug(ctx, "first-post")
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "author", got.Author.Username)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "technology", got.Categories[0].Slug)

	got.Title = "Updated title"
	got.Categories = []*models.Category{tech, career}
	require.NoError(t, store.UpdatePost(ctx, got))

	got, err = store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated title", got.Title)
	assert.Len(t, got.Categories, 2)

	require.NoError(t, store.DeletePost(ctx, post.ID))
	_, err = store.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, sqlstore.ErrNotFound)
}

func TestPostListing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	author := newUser("author")
	require.NoError(t, store.CreateUser(ctx, author))

	tech := newCategory("Technology", "technology")
	require.NoError(t, store.CreateCategory(ctx, tech))

	published := newPost(author.ID, "published-post", true)
	published.Categories = []*models.Category{tech}
	featured := newPost(author.ID, "featured-post", true)
	featured.IsFeatured = true
	draft := newPost(author.ID, "draft-post", false)

	require.NoError(t, store.CreatePost(ctx, published))
	require.NoError(t, store.CreatePost(ctx, featured))
	require.NoError(t, store.CreatePost(ctx, draft))

	posts, err := store.ListPublishedPosts(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	count, err := store.CountPublishedPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	posts, err = store.ListFeaturedPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "featured-post", posts[0].Slug)

	posts, err = store.ListPostsByCategory(ctx, "technology", 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "published-post", posts[0].Slug)

	posts, err = store.ListPostsByAuthor(ctx, author.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	count, err = store.CountUserPosts(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSearchPosts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	author := newUser("author")
	require.NoError(t, store.CreateUser(ctx, author))

	post := newPost(author.ID, "about-golang", true)
	post.Title = "Concurrency in Go"
	require.NoError(t, store.CreatePost(ctx, post))

	draft := newPost(author.ID, "draft-golang", false)
	draft.Title = "More Go concurrency"
	require.NoError(t, store.CreatePost(ctx, draft))

	// Matches title case-insensitively and skips drafts.
	posts, err := store.SearchPosts(ctx, "CONCURRENCY", 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "about-golang", posts[0].Slug)

	posts, err = store.SearchPosts(ctx, "no-such-term", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCategoryPostCounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	author := newUser("author")
	require.NoError(t, store.CreateUser(ctx, author))

	tech := newCategory("Technology", "technology")
	empty := newCategory("Empty", "empty")
	require.NoError(t, store.CreateCategory(ctx, tech))
	require.NoError(t, store.CreateCategory(ctx, empty))

	post := newPost(author.ID, "tagged", true)
	post.Categories = []*models.Category{tech}
	require.NoError(t, store.CreatePost(ctx, post))

	draft := newPost(author.ID, "tagged-draft", false)
	draft.Categories = []*models.Category{tech}
	require.NoError(t, store.CreatePost(ctx, draft))

	categories, err := store.ListCategoriesWithPostCount(ctx)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, c := range categories {
		counts[c.Slug] = c.PostCount
	}
	// Only published posts count.
	assert.Equal(t, 1, counts["technology"])
	assert.Equal(t, 0, counts["empty"])

	popular, err := store.ListPopularCategories(ctx, 5)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, "technology", popular[0].Slug)
}

func TestDeleteUserCascadesPosts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	author := newUser("author")
	require.NoError(t, store.CreateUser(ctx, author))

	post := newPost(author.ID, "orphan", true)
	require.NoError(t, store.CreatePost(ctx, post))

	require.NoError(t, store.DeleteUser(ctx, author.ID))

	_, err := store.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, sqlstore.ErrNotFound)
}

func TestPublishDuePosts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	author := newUser("author")
	require.NoError(t, store.CreateUser(ctx, author))

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	due := newPost(author.ID, "due-post", false)
	due.PublishedAt = &past
	notYet := newPost(author.ID, "future-post", false)
	notYet.PublishedAt = &future
	unscheduled := newPost(author.ID, "unscheduled-post", false)

	require.NoError(t, store.CreatePost(ctx, due))
	require.NoError(t, store.CreatePost(ctx, notYet))
	require.NoError(t, store.CreatePost(ctx, unscheduled))

	published, err := store.PublishDuePosts(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	got, err := store.GetPost(ctx, due.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)

	got, err = store.GetPost(ctx, notYet.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	// Second run is a no-op.
	published, err = store.PublishDuePosts(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, published)
}
