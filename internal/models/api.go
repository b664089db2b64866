package models

import "time"

// API request/response structures shared by the HTTP layer.

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedResponse wraps list data with pagination metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// LoginRequest carries user credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterUserRequest creates a new user account.
type RegisterUserRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=50"`
	Email      string `json:"email" binding:"required,email"`
	FullName   string `json:"full_name" binding:"required,max=255"`
	Password   string `json:"password" binding:"required,min=8"`
	Bio        string `json:"bio" binding:"max=500"`
	AvatarURL  string `json:"avatar_url" binding:"max=512"`
	WebsiteURL string `json:"website_url" binding:"max=512"`
}

// UpdateUserRequest updates profile fields; nil fields are left unchanged.
type UpdateUserRequest struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	FullName   *string `json:"full_name" binding:"omitempty,max=255"`
	Bio        *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL  *string `json:"avatar_url" binding:"omitempty,max=512"`
	WebsiteURL *string `json:"website_url" binding:"omitempty,max=512"`
	IsActive   *bool   `json:"is_active"`
}

// CreateCategoryRequest creates a new category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug" binding:"required,max=100"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"omitempty,max=7"`
}

// UpdateCategoryRequest updates a category; nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,max=7"`
}

// CreatePostRequest creates a new post for the authenticated author.
type CreatePostRequest struct {
	Title           string     `json:"title" binding:"required,max=255"`
	Slug            string     `json:"slug" binding:"required,max=255"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content" binding:"required"`
	ImageURL        string     `json:"image_url" binding:"omitempty,max=512"`
	CategoryIDs     []string   `json:"category_ids"`
	PublishedAt     *time.Time `json:"published_at"`
	IsPublished     bool       `json:"is_published"`
	IsFeatured      bool       `json:"is_featured"`
	MetaTitle       string     `json:"meta_title" binding:"omitempty,max=255"`
	MetaDescription string     `json:"meta_description" binding:"omitempty,max=500"`
}

// UpdatePostRequest updates a post; nil fields are left unchanged. A non-nil
// CategoryIDs replaces the whole category set.
type UpdatePostRequest struct {
	Title           *string    `json:"title" binding:"omitempty,max=255"`
	Slug            *string    `json:"slug" binding:"omitempty,max=255"`
	Excerpt         *string    `json:"excerpt"`
	Content         *string    `json:"content"`
	ImageURL        *string    `json:"image_url" binding:"omitempty,max=512"`
	CategoryIDs     *[]string  `json:"category_ids"`
	PublishedAt     *time.Time `json:"published_at"`
	IsPublished     *bool      `json:"is_published"`
	IsFeatured      *bool      `json:"is_featured"`
	MetaTitle       *string    `json:"meta_title" binding:"omitempty,max=255"`
	MetaDescription *string    `json:"meta_description" binding:"omitempty,max=500"`
}
