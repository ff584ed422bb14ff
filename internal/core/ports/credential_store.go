package ports

import (
	"context"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

// CredentialStore persists users keyed by username.
// Create must fail with domain.ErrUserExists when the username is taken;
// FindByUsername returns domain.ErrUserNotFound for unknown usernames.
type CredentialStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
