package ports

import (
	"context"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password, previousSessionID string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
}

// SessionTokens converts between server-side session ids and the signed
// value handed to clients in the session cookie.
type SessionTokens interface {
	Issue(sess domain.Session) (string, error)
	Parse(token string) (sessionID string, err error)
}
