package repository

import (
	"context"
	"errors"

	"account-service/internal/domain"
)

var (
	// ErrNotFound is returned by lookups that match no user.
	ErrNotFound = errors.New("user not found")
	// ErrConflict is returned when an insert collides with an existing
	// username or display name, the store's uniqueness constraint being the
	// final arbiter.
	ErrConflict = errors.New("user already exists")
)

// UserRepository defines persistence operations for User entities. Callers
// pass usernames already normalized to lowercase.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	GetByCredentials(ctx context.Context, username, passwordHash string) (*domain.User, error)
}
