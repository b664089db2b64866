package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/logger"
	"github.com/bloghq/blogapi/internal/models"
)

// PostService provides business logic for blog posts.
type PostService struct {
	store db.Store
}

// NewPostService creates a new post service.
func NewPostService(store db.Store) *PostService {
	return &PostService{store: store}
}

// CreatePost creates a post for the given author. The slug must be unused
// and every referenced category must exist.
func (s *PostService) CreatePost(ctx context.Context, req *models.CreatePostRequest, authorID string) (*models.Post, error) {
	if _, err := s.store.GetPostBySlug(ctx, req.Slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:              uuid.New().String(),
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		ImageURL:        req.ImageURL,
		PublishedAt:     req.PublishedAt,
		IsPublished:     req.IsPublished,
		IsFeatured:      req.IsFeatured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		AuthorID:        authorID,
		Categories:      categories,
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return s.store.GetPost(ctx, post.ID)
}

// GetPost retrieves a post by ID, drafts included.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.store.GetPost(ctx, id)
}

// GetPublishedPostBySlug retrieves a published post by slug. Drafts behave
// as not found so unpublished content stays private.
func (s *PostService) GetPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.store.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished {
		return nil, fmt.Errorf("post %q: %w", slug, db.ErrNotFound)
	}
	return post, nil
}

// GetPostBySlug retrieves a post by slug, drafts included. Callers are
// responsible for checking whether the requester may see drafts.
func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.store.GetPostBySlug(ctx, slug)
}

// ListPublishedPosts lists published posts, newest first.
func (s *PostService) ListPublishedPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.store.ListPublishedPosts(ctx, limit, offset)
}

// FeaturedPosts lists published featured posts.
func (s *PostService) FeaturedPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.store.ListFeaturedPosts(ctx, limit)
}

// PostsByCategory lists published posts in the category with the given slug.
func (s *PostService) PostsByCategory(ctx context.Context, categorySlug string, limit, offset int) ([]*models.Post, error) {
	return s.store.ListPostsByCategory(ctx, categorySlug, limit, offset)
}

// PostsByAuthor lists posts by the author. When publishedOnly is set, drafts
// are filtered out.
func (s *PostService) PostsByAuthor(ctx context.Context, authorID string, publishedOnly bool, limit, offset int) ([]*models.Post, error) {
	posts, err := s.store.ListPostsByAuthor(ctx, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	if !publishedOnly {
		return posts, nil
	}

	published := posts[:0]
	for _, post := range posts {
		if post.IsPublished {
			published = append(published, post)
		}
	}
	return published, nil
}

// SearchPosts searches published posts by title and content.
func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	return s.store.SearchPosts(ctx, query, limit, offset)
}

// CountPublishedPosts counts published posts.
func (s *PostService) CountPublishedPosts(ctx context.Context) (int, error) {
	return s.store.CountPublishedPosts(ctx)
}

// UpdatePost applies the non-nil request fields to the post, keeping the
// slug unique and replacing categories when a set is provided.
func (s *PostService) UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != post.Slug {
		existing, err := s.store.GetPostBySlug(ctx, *req.Slug)
		if err == nil && existing.ID != post.ID {
			return nil, ErrSlugTaken
		}
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		post.Slug = *req.Slug
	}
	if req.CategoryIDs != nil {
		categories, err := s.resolveCategories(ctx, *req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		post.Categories = categories
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.ImageURL != nil {
		post.ImageURL = *req.ImageURL
	}
	if req.PublishedAt != nil {
		post.PublishedAt = req.PublishedAt
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}
	if req.MetaTitle != nil {
		post.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		post.MetaDescription = *req.MetaDescription
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return s.store.GetPost(ctx, post.ID)
}

// DeletePost removes a post.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	return s.store.DeletePost(ctx, id)
}

// PublishDuePosts publishes every draft whose scheduled publish time has
// passed.
func (s *PostService) PublishDuePosts(ctx context.Context, now time.Time) (int, error) {
	count, err := s.store.PublishDuePosts(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to publish due posts: %w", err)
	}
	if count > 0 {
		logger.Info("Published %d scheduled post(s)", count)
	}
	return count, nil
}

func (s *PostService) resolveCategories(ctx context.Context, ids []string) ([]*models.Category, error) {
	if len(ids) == 0 {
		return []*models.Category{}, nil
	}
	categories, err := s.store.GetCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, ErrCategoryMissing
	}
	return categories, nil
}
