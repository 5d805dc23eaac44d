package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller is neither the author nor an admin.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates a stale post or comment identifier, for example
	// one deleted by another session. Callers should refetch.
	ErrNotFound = errors.New("not found")

	// ErrEmptyComment indicates the user submitted an empty comment.
	ErrEmptyComment = errors.New("comment cannot be empty")
)
