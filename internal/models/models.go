package models

import (
	"time"
)

// User represents a blog author account.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	Bio            string    `json:"bio,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	WebsiteURL     string    `json:"website_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Category organizes posts; each post may belong to several categories.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"` // Hex color code like #FF5733
	PostCount   int       `json:"post_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Post is a blog entry. PublishedAt may be in the future for scheduled
// publishing; IsPublished controls public visibility.
type Post struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	Excerpt         string      `json:"excerpt,omitempty"`
	Content         string      `json:"content"`
	ImageURL        string      `json:"image_url,omitempty"`
	PublishedAt     *time.Time  `json:"published_at,omitempty"`
	IsPublished     bool        `json:"is_published"`
	IsFeatured      bool        `json:"is_featured"`
	MetaTitle       string      `json:"meta_title,omitempty"`
	MetaDescription string      `json:"meta_description,omitempty"`
	AuthorID        string      `json:"author_id"`
	Author          *User       `json:"author,omitempty"`
	Categories      []*Category `json:"categories"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
