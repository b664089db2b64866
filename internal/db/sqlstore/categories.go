package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bloghq/blogapi/internal/models"
)

const categoryColumns = "id, name, slug, description, color, created_at, updated_at"

// CreateCategory inserts a new category.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	query := s.rebind(`
		INSERT INTO categories (` + categoryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.DB.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.Color,
		category.CreatedAt,
		category.UpdatedAt,
	)

	return err
}

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.getCategory(ctx, "id", id)
}

// GetCategoryBySlug retrieves a category by slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getCategory(ctx, "slug", slug)
}

// GetCategoryByName retrieves a category by name.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return s.getCategory(ctx, "name", name)
}

func (s *Store) getCategory(ctx context.Context, column, value string) (*models.Category, error) {
	query := s.rebind("SELECT " + categoryColumns + " FROM categories WHERE " + column + " = ?")

	var category models.Category
	err := s.DB.QueryRowContext(ctx, query, value).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.Color,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %s %q: %w", column, value, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// GetCategoriesByIDs retrieves the categories matching the given IDs. Missing
// IDs are silently absent from the result; callers compare lengths.
func (s *Store) GetCategoriesByIDs(ctx context.Context, ids []string) ([]*models.Category, error) {
	if len(ids) == 0 {
		return []*models.Category{}, nil
	}

	query := s.rebind("SELECT " + categoryColumns + " FROM categories WHERE id IN (" + placeholders(len(ids)) + ") ORDER BY name")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

// ListCategories lists categories ordered by name.
func (s *Store) ListCategories(ctx context.Context, limit int) ([]*models.Category, error) {
	query := s.rebind("SELECT " + categoryColumns + " FROM categories ORDER BY name LIMIT ?")

	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

// ListCategoriesWithPostCount lists all categories with their published
// post counts. Drafts are not counted.
func (s *Store) ListCategoriesWithPostCount(ctx context.Context) ([]*models.Category, error) {
	query := s.rebind(`
		SELECT c.id, c.name, c.slug, c.description, c.color, c.created_at, c.updated_at, COUNT(p.id)
		FROM categories c
		LEFT JOIN post_categories pc ON pc.category_id = c.id
		LEFT JOIN posts p ON p.id = pc.post_id AND p.is_published = ?
		GROUP BY c.id
		ORDER BY c.name`)

	rows, err := s.DB.QueryContext(ctx, query, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategoriesWithCount(rows)
}

// ListPopularCategories lists categories ordered by post count, most used
// first.
func (s *Store) ListPopularCategories(ctx context.Context, limit int) ([]*models.Category, error) {
	query := s.rebind(`
		SELECT c.id, c.name, c.slug, c.description, c.color, c.created_at, c.updated_at, COUNT(p.id)
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		JOIN posts p ON p.id = pc.post_id AND p.is_published = ?
		GROUP BY c.id
		ORDER BY COUNT(p.id) DESC
		LIMIT ?`)

	rows, err := s.DB.QueryContext(ctx, query, true, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategoriesWithCount(rows)
}

// UpdateCategory updates an existing category.
func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now().UTC()

	query := s.rebind(`
		UPDATE categories
		SET name = ?, slug = ?, description = ?, color = ?, updated_at = ?
		WHERE id = ?`)

	result, err := s.DB.ExecContext(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.Color,
		category.UpdatedAt,
		category.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %q: %w", category.ID, ErrNotFound)
	}

	return nil
}

// DeleteCategory deletes a category. The cascade removes it from all posts
// that use it.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	result, err := s.DB.ExecContext(ctx, s.rebind("DELETE FROM categories WHERE id = ?"), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %q: %w", id, ErrNotFound)
	}

	return nil
}

func scanCategories(rows *sql.Rows) ([]*models.Category, error) {
	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.Color,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

func scanCategoriesWithCount(rows *sql.Rows) ([]*models.Category, error) {
	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.Color,
			&category.CreatedAt,
			&category.UpdatedAt,
			&category.PostCount,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}
