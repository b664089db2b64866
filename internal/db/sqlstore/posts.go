package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bloghq/blogapi/internal/models"
)

const postSelect = `
	SELECT p.id, p.title, p.slug, p.excerpt, p.content, p.image_url,
	       p.published_at, p.is_published, p.is_featured, p.meta_title, p.meta_description,
	       p.author_id, p.created_at, p.updated_at,
	       u.id, u.username, u.email, u.full_name, u.is_active, u.is_superuser,
	       u.bio, u.avatar_url, u.website_url, u.created_at, u.updated_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// CreatePost inserts a new post together with its category links.
func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := s.rebind(`
		INSERT INTO posts (id, title, slug, excerpt, content, image_url, published_at, is_published, is_featured, meta_title, meta_description, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = tx.ExecContext(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.ImageURL,
		nullTime(post.PublishedAt),
		post.IsPublished,
		post.IsFeatured,
		post.MetaTitle,
		post.MetaDescription,
		post.AuthorID,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := s.insertPostCategories(ctx, tx, post); err != nil {
		return err
	}

	return tx.Commit()
}

// GetPost retrieves a post by ID with author and categories.
func (s *Store) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.getPost(ctx, "p.id", id)
}

// GetPostBySlug retrieves a post by slug with author and categories.
func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.getPost(ctx, "p.slug", slug)
}

func (s *Store) getPost(ctx context.Context, column, value string) (*models.Post, error) {
	query := s.rebind(postSelect + " WHERE " + column + " = ?")

	row := s.DB.QueryRowContext(ctx, query, value)
	post, err := scanPostRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %q: %w", value, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachCategories(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

// ListPublishedPosts lists published posts, newest first.
func (s *Store) ListPublishedPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	query := postSelect + `
		WHERE p.is_published = ?
		ORDER BY p.published_at DESC, p.created_at DESC
		LIMIT ? OFFSET ?`
	return s.listPosts(ctx, query, true, limit, offset)
}

// ListFeaturedPosts lists published featured posts, newest first.
func (s *Store) ListFeaturedPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	query := postSelect + `
		WHERE p.is_published = ? AND p.is_featured = ?
		ORDER BY p.published_at DESC
		LIMIT ?`
	return s.listPosts(ctx, query, true, true, limit)
}

// ListPostsByCategory lists published posts in the category with the given
// slug.
func (s *Store) ListPostsByCategory(ctx context.Context, categorySlug string, limit, offset int) ([]*models.Post, error) {
	query := postSelect + `
		JOIN post_categories pc ON pc.post_id = p.id
		JOIN categories c ON c.id = pc.category_id
		WHERE c.slug = ? AND p.is_published = ?
		ORDER BY p.published_at DESC
		LIMIT ? OFFSET ?`
	return s.listPosts(ctx, query, categorySlug, true, limit, offset)
}

// ListPostsByAuthor lists all posts by the author, drafts included.
func (s *Store) ListPostsByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*models.Post, error) {
	query := postSelect + `
		WHERE p.author_id = ?
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?`
	return s.listPosts(ctx, query, authorID, limit, offset)
}

// SearchPosts searches published posts by title and content,
// case-insensitively.
func (s *Store) SearchPosts(ctx context.Context, search string, limit, offset int) ([]*models.Post, error) {
	pattern := "%" + strings.ToLower(search) + "%"
	query := postSelect + `
		WHERE p.is_published = ? AND (LOWER(p.title) LIKE ? OR LOWER(p.content) LIKE ?)
		ORDER BY p.published_at DESC
		LIMIT ? OFFSET ?`
	return s.listPosts(ctx, query, true, pattern, pattern, limit, offset)
}

// CountPublishedPosts counts published posts.
func (s *Store) CountPublishedPosts(ctx context.Context) (int, error) {
	var count int
	query := s.rebind("SELECT COUNT(*) FROM posts WHERE is_published = ?")
	if err := s.DB.QueryRowContext(ctx, query, true).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdatePost updates an existing post and replaces its category links.
func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := s.rebind(`
		UPDATE posts
		SET title = ?, slug = ?, excerpt = ?, content = ?, image_url = ?, published_at = ?, is_published = ?, is_featured = ?, meta_title = ?, meta_description = ?, updated_at = ?
		WHERE id = ?`)

	result, err := tx.ExecContext(ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.ImageURL,
		nullTime(post.PublishedAt),
		post.IsPublished,
		post.IsFeatured,
		post.MetaTitle,
		post.MetaDescription,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post %q: %w", post.ID, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM post_categories WHERE post_id = ?"), post.ID); err != nil {
		return err
	}
	if err := s.insertPostCategories(ctx, tx, post); err != nil {
		return err
	}

	return tx.Commit()
}

// DeletePost deletes a post and its category links.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	result, err := s.DB.ExecContext(ctx, s.rebind("DELETE FROM posts WHERE id = ?"), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post %q: %w", id, ErrNotFound)
	}

	return nil
}

// PublishDuePosts marks unpublished posts whose scheduled publish time has
// passed as published. Returns the number of posts published.
func (s *Store) PublishDuePosts(ctx context.Context, now time.Time) (int, error) {
	query := s.rebind(`
		UPDATE posts
		SET is_published = ?, updated_at = ?
		WHERE is_published = ? AND published_at IS NOT NULL AND published_at <= ?`)

	result, err := s.DB.ExecContext(ctx, query, true, now.UTC(), false, now.UTC())
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rowsAffected), nil
}

func (s *Store) listPosts(ctx context.Context, query string, args ...interface{}) ([]*models.Post, error) {
	rows, err := s.DB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachCategories(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *Store) insertPostCategories(ctx context.Context, tx *sql.Tx, post *models.Post) error {
	query := s.rebind("INSERT INTO post_categories (post_id, category_id) VALUES (?, ?)")
	for _, category := range post.Categories {
		if _, err := tx.ExecContext(ctx, query, post.ID, category.ID); err != nil {
			return err
		}
	}
	return nil
}

// attachCategories loads the categories for each post in one query.
func (s *Store) attachCategories(ctx context.Context, posts []*models.Post) error {
	for _, post := range posts {
		post.Categories = []*models.Category{}
	}
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[string]*models.Post, len(posts))
	args := make([]interface{}, len(posts))
	for i, post := range posts {
		byID[post.ID] = post
		args[i] = post.ID
	}

	query := s.rebind(`
		SELECT pc.post_id, c.id, c.name, c.slug, c.description, c.color, c.created_at, c.updated_at
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id IN (` + placeholders(len(posts)) + `)
		ORDER BY c.name`)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		var category models.Category
		err := rows.Scan(
			&postID,
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.Color,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if post, ok := byID[postID]; ok {
			post.Categories = append(post.Categories, &category)
		}
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPostRow(row rowScanner) (*models.Post, error) {
	var post models.Post
	var author models.User
	var publishedAt sql.NullTime

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.ImageURL,
		&publishedAt,
		&post.IsPublished,
		&post.IsFeatured,
		&post.MetaTitle,
		&post.MetaDescription,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&author.ID,
		&author.Username,
		&author.Email,
		&author.FullName,
		&author.IsActive,
		&author.IsSuperuser,
		&author.Bio,
		&author.AvatarURL,
		&author.WebsiteURL,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	post.Author = &author

	return &post, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
