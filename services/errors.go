package services

import "errors"

// Shared service-level errors, mapped to HTTP statuses in one place by the
// handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business-rule errors.
	ErrValidationFailed       = errors.New("validation failed")
	ErrScoreItemRequired      = errors.New("score item reference is required")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrItemNameRequired       = errors.New("item name is required")
	ErrNewsContentRequired    = errors.New("news title and content are required")
	ErrGalleryCaptionRequired = errors.New("gallery caption is required")
	ErrFileRequired           = errors.New("file is required")

	// Conflicts.
	ErrUserEmailConflict = errors.New("email address is already in use")

	// Authentication.
	ErrAuthInvalidCredentials = errors.New("invalid email or password")

	// Entity-specific not-found errors.
	ErrScoreNotFound       = errors.New("score not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrNewsNotFound        = errors.New("news article not found")
	ErrGalleryItemNotFound = errors.New("gallery item not found")
	ErrUserNotFound        = errors.New("user not found")
)
