package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/models"
)

// CategoryService provides business logic for categories.
type CategoryService struct {
	store db.Store
}

// NewCategoryService creates a new category service.
func NewCategoryService(store db.Store) *CategoryService {
	return &CategoryService{store: store}
}

// CreateCategory creates a category. Name and slug must be unused.
func (s *CategoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if _, err := s.store.GetCategoryBySlug(ctx, req.Slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	if _, err := s.store.GetCategoryByName(ctx, req.Name); err == nil {
		return nil, ErrCategoryNameTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	category := &models.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
	}

	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// GetCategoryBySlug retrieves a category by slug.
func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.store.GetCategoryBySlug(ctx, slug)
}

// GetCategory retrieves a category by ID.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// ListCategories lists categories by name, with post counts when requested.
func (s *CategoryService) ListCategories(ctx context.Context, withPostCount bool, limit int) ([]*models.Category, error) {
	if withPostCount {
		return s.store.ListCategoriesWithPostCount(ctx)
	}
	return s.store.ListCategories(ctx, limit)
}

// PopularCategories lists categories ordered by post count.
func (s *CategoryService) PopularCategories(ctx context.Context, limit int) ([]*models.Category, error) {
	return s.store.ListPopularCategories(ctx, limit)
}

// UpdateCategory applies the non-nil request fields, keeping name and slug
// unique.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		existing, err := s.store.GetCategoryBySlug(ctx, *req.Slug)
		if err == nil && existing.ID != category.ID {
			return nil, ErrSlugTaken
		}
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		category.Slug = *req.Slug
	}
	if req.Name != nil && *req.Name != category.Name {
		existing, err := s.store.GetCategoryByName(ctx, *req.Name)
		if err == nil && existing.ID != category.ID {
			return nil, ErrCategoryNameTaken
		}
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes a category from the store and from every post using
// it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.store.DeleteCategory(ctx, id)
}
