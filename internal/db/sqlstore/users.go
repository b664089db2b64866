package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bloghq/blogapi/internal/models"
)

const userColumns = "id, username, email, full_name, hashed_password, is_active, is_superuser, bio, avatar_url, website_url, created_at, updated_at"

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := s.rebind(`
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.HashedPassword,
		user.IsActive,
		user.IsSuperuser,
		user.Bio,
		user.AvatarURL,
		user.WebsiteURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return err
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "username", username)
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

func (s *Store) getUser(ctx context.Context, column, value string) (*models.User, error) {
	query := s.rebind("SELECT " + userColumns + " FROM users WHERE " + column + " = ?")

	var user models.User
	err := s.DB.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.HashedPassword,
		&user.IsActive,
		&user.IsSuperuser,
		&user.Bio,
		&user.AvatarURL,
		&user.WebsiteURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s %q: %w", column, value, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ListUsers lists users ordered by creation time, optionally filtered by
// active status.
func (s *Store) ListUsers(ctx context.Context, activeOnly *bool, limit, offset int) ([]*models.User, error) {
	query := "SELECT " + userColumns + " FROM users"
	args := []interface{}{}

	if activeOnly != nil {
		query += " WHERE is_active = ?"
		args = append(args, *activeOnly)
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.DB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.FullName,
			&user.HashedPassword,
			&user.IsActive,
			&user.IsSuperuser,
			&user.Bio,
			&user.AvatarURL,
			&user.WebsiteURL,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// UpdateUser updates an existing user.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	query := s.rebind(`
		UPDATE users
		SET username = ?, email = ?, full_name = ?, hashed_password = ?, is_active = ?, is_superuser = ?, bio = ?, avatar_url = ?, website_url = ?, updated_at = ?
		WHERE id = ?`)

	result, err := s.DB.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.FullName,
		user.HashedPassword,
		user.IsActive,
		user.IsSuperuser,
		user.Bio,
		user.AvatarURL,
		user.WebsiteURL,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %q: %w", user.ID, ErrNotFound)
	}

	return nil
}

// DeleteUser deletes a user. Posts by the user are removed by the cascade.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.DB.ExecContext(ctx, s.rebind("DELETE FROM users WHERE id = ?"), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %q: %w", id, ErrNotFound)
	}

	return nil
}

// CountUserPosts counts all posts authored by the given user.
func (s *Store) CountUserPosts(ctx context.Context, userID string) (int, error) {
	var count int
	query := s.rebind("SELECT COUNT(*) FROM posts WHERE author_id = ?")
	if err := s.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
