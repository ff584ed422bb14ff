package ports

import (
	"context"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

// SessionStore persists and retrieves login sessions.
// Get returns domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, sess domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}
