package app

import (
	"context"

	"github.com/blogcraft/blogcraft/domain"
)

// AccountService provides information about the authenticated user.
type AccountService interface {
	// CurrentUser returns the authenticated user's profile.
	CurrentUser(ctx context.Context) (domain.User, error)

	// Login exchanges credentials for a bearer token and persists it.
	Login(ctx context.Context, email, password string) (domain.User, error)

	// Register creates an account, then logs in.
	Register(ctx context.Context, name, email, password string) (domain.User, error)

	// Logout discards the stored credential.
	Logout(ctx context.Context) error

	// Authenticated reports whether a credential is currently stored.
	Authenticated() bool
}
