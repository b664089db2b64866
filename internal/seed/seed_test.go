package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloghq/blogapi/internal/auth"
	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/db/sqlite"
	"github.com/bloghq/blogapi/internal/seed"
)

const fixtureYAML = `
users:
  - username: johndoe
    email: john.doe@example.com
    password: secretpassword123
    full_name: John Doe
  - username: admin
    email: admin@example.com
    password: adminpassword
    full_name: Admin
    is_superuser: true

categories:
  - name: Technology
    slug: technology
    description: All things tech
    color: "#3B82F6"

posts:
  - title: Hello World
    slug: hello-world
    content: First post content.
    author: johndoe
    categories: [technology]
    is_published: true
`

func newTestStore(t *testing.T) db.Store {
	t.Helper()

	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Connect(context.Background()))
	t.Cleanup(func() { store.Disconnect(context.Background()) })

	return store
}

func writeFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0644))
	return path
}

func TestLoadFixture(t *testing.T) {
	fixture, err := seed.Load(writeFixture(t))
	require.NoError(t, err)

	require.Len(t, fixture.Users, 2)
	assert.Equal(t, "johndoe", fixture.Users[0].Username)
	assert.True(t, fixture.Users[1].IsSuperuser)
	require.Len(t, fixture.Categories, 1)
	require.Len(t, fixture.Posts, 1)
	assert.Equal(t, []string{"technology"}, fixture.Posts[0].Categories)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := seed.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fixture, err := seed.Load(writeFixture(t))
	require.NoError(t, err)
	require.NoError(t, seed.Apply(ctx, store, fixture))

	user, err := store.GetUserByUsername(ctx, "johndoe")
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.True(t, auth.CheckPassword("secretpassword123", user.HashedPassword))

	post, err := store.GetPostBySlug(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, user.ID, post.AuthorID)
	require.Len(t, post.Categories, 1)
	assert.Equal(t, "technology", post.Categories[0].Slug)
}

func TestApplyIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fixture, err := seed.Load(writeFixture(t))
	require.NoError(t, err)

	require.NoError(t, seed.Apply(ctx, store, fixture))
	require.NoError(t, seed.Apply(ctx, store, fixture))

	users, err := store.ListUsers(ctx, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	count, err := store.CountPublishedPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestApplyFailsOnUnknownAuthor(t *testing.T) {
	store := newTestStore(t)

	fixture := &seed.Fixture{
		Posts: []seed.PostFixture{{
			Title:   "Orphan",
			Slug:    "orphan",
			Content: "x",
			Author:  "nobody",
		}},
	}

	err := seed.Apply(context.Background(), store, fixture)
	assert.ErrorContains(t, err, "orphan")
}
