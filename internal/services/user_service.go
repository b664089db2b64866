package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bloghq/blogapi/internal/auth"
	"github.com/bloghq/blogapi/internal/db"
	"github.com/bloghq/blogapi/internal/models"
)

// UserService provides business logic for user accounts.
type UserService struct {
	store db.Store
}

// NewUserService creates a new user service.
func NewUserService(store db.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser registers a new user with a hashed password. Username and email
// must be unused.
func (s *UserService) CreateUser(ctx context.Context, req *models.RegisterUserRequest) (*models.User, error) {
	if _, err := s.store.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:             uuid.New().String(),
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		HashedPassword: hashed,
		IsActive:       true,
		Bio:            req.Bio,
		AvatarURL:      req.AvatarURL,
		WebsiteURL:     req.WebsiteURL,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.store.GetUserByUsername(ctx, username)
}

// ListUsers lists users, optionally only active ones.
func (s *UserService) ListUsers(ctx context.Context, activeOnly *bool, limit, offset int) ([]*models.User, error) {
	return s.store.ListUsers(ctx, activeOnly, limit, offset)
}

// UpdateUser applies the non-nil request fields to the user.
func (s *UserService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.store.GetUserByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.WebsiteURL != nil {
		user.WebsiteURL = *req.WebsiteURL
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user account and all posts it authored.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.store.DeleteUser(ctx, id)
}

// PostCount returns the number of posts authored by the user.
func (s *UserService) PostCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUserPosts(ctx, userID)
}
