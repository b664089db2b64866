// Package seed loads fixture data from a YAML file into the store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/bloghq/blogapi/internal/auth"
	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/logger"
	"github.com/bloghq/blogapi/internal/models"
)

// Fixture is the root of a seed file.
type Fixture struct {
	Users      []UserFixture     `yaml:"users"`
	Categories []CategoryFixture `yaml:"categories"`
	Posts      []PostFixture     `yaml:"posts"`
}

// UserFixture describes a user to seed. The password is hashed on load.
type UserFixture struct {
	Username    string `yaml:"username"`
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	FullName    string `yaml:"full_name"`
	Bio         string `yaml:"bio"`
	AvatarURL   string `yaml:"avatar_url"`
	WebsiteURL  string `yaml:"website_url"`
	IsSuperuser bool   `yaml:"is_superuser"`
}

// CategoryFixture describes a category to seed.
type CategoryFixture struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

// PostFixture describes a post to seed. Author is a username and Categories
// are category slugs, both of which must be seeded or already present.
type PostFixture struct {
	Title       string     `yaml:"title"`
	Slug        string     `yaml:"slug"`
	Excerpt     string     `yaml:"excerpt"`
	Content     string     `yaml:"content"`
	ImageURL    string     `yaml:"image_url"`
	Author      string     `yaml:"author"`
	Categories  []string   `yaml:"categories"`
	IsPublished bool       `yaml:"is_published"`
	IsFeatured  bool       `yaml:"is_featured"`
	PublishedAt *time.Time `yaml:"published_at"`
}

// Load reads the fixture file at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &fixture, nil
}

// Apply inserts the fixture records that do not yet exist. Existing users,
// categories and posts are matched by username and slug and left untouched,
// so applying the same fixture twice is safe.
func Apply(ctx context.Context, store db.Store, fixture *Fixture) error {
	for _, f := range fixture.Users {
		if err := applyUser(ctx, store, f); err != nil {
			return fmt.Errorf("user %q: %w", f.Username, err)
		}
	}
	for _, f := range fixture.Categories {
		if err := applyCategory(ctx, store, f); err != nil {
			return fmt.Errorf("category %q: %w", f.Slug, err)
		}
	}
	for _, f := range fixture.Posts {
		if err := applyPost(ctx, store, f); err != nil {
			return fmt.Errorf("post %q: %w", f.Slug, err)
		}
	}
	return nil
}

func applyUser(ctx context.Context, store db.Store, f UserFixture) error {
	_, err := store.GetUserByUsername(ctx, f.Username)
	if err == nil {
		logger.Debug("Seed user %s already exists, skipping", f.Username)
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(f.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:             uuid.New().String(),
		Username:       f.Username,
		Email:          f.Email,
		FullName:       f.FullName,
		HashedPassword: hashed,
		IsActive:       true,
		IsSuperuser:    f.IsSuperuser,
		Bio:            f.Bio,
		AvatarURL:      f.AvatarURL,
		WebsiteURL:     f.WebsiteURL,
	}

	if err := store.CreateUser(ctx, user); err != nil {
		return err
	}
	logger.Info("Seeded user %s", f.Username)
	return nil
}

func applyCategory(ctx context.Context, store db.Store, f CategoryFixture) error {
	_, err := store.GetCategoryBySlug(ctx, f.Slug)
	if err == nil {
		logger.Debug("Seed category %s already exists, skipping", f.Slug)
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return err
	}

	category := &models.Category{
		ID:          uuid.New().String(),
		Name:        f.Name,
		Slug:        f.Slug,
		Description: f.Description,
		Color:       f.Color,
	}

	if err := store.CreateCategory(ctx, category); err != nil {
		return err
	}
	logger.Info("Seeded category %s", f.Slug)
	return nil
}

func applyPost(ctx context.Context, store db.Store, f PostFixture) error {
	_, err := store.GetPostBySlug(ctx, f.Slug)
	if err == nil {
		logger.Debug("Seed post %s already exists, skipping", f.Slug)
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return err
	}

	author, err := store.GetUserByUsername(ctx, f.Author)
	if err != nil {
		return fmt.Errorf("author: %w", err)
	}

	categories := make([]*models.Category, 0, len(f.Categories))
	for _, slug := range f.Categories {
		category, err := store.GetCategoryBySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("category %q: %w", slug, err)
		}
		categories = append(categories, category)
	}

	post := &models.Post{
		ID:          uuid.New().String(),
		Title:       f.Title,
		Slug:        f.Slug,
		Excerpt:     f.Excerpt,
		Content:     f.Content,
		ImageURL:    f.ImageURL,
		PublishedAt: f.PublishedAt,
		IsPublished: f.IsPublished,
		IsFeatured:  f.IsFeatured,
		AuthorID:    author.ID,
		Categories:  categories,
	}

	if err := store.CreatePost(ctx, post); err != nil {
		return err
	}
	logger.Info("Seeded post %s", f.Slug)
	return nil
}
