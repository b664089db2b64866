package services

import "errors"

// Validation errors surfaced to the API layer as bad requests.
var (
	ErrUsernameTaken     = errors.New("username already registered")
	ErrEmailTaken        = errors.New("email already registered")
	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrSlugTaken         = errors.New("slug already exists")
	ErrCategoryMissing   = errors.New("one or more categories not found")
)
