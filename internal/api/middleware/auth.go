package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session_id"

// UnauthorizedMessage is the body returned by the session gate.
const UnauthorizedMessage = "Unauthorized: Please log in first."

// TokenParser resolves a cookie value to a session id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// SessionResolver loads a live session by id.
type SessionResolver interface {
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
}

// LoadSession resolves the session cookie, when present and valid, and
// injects "session_id" and "username" into the context. It never rejects a
// request; gating is left to RequireSession.
func LoadSession(tokens TokenParser, sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sid, err := tokens.Parse(cookie.Value)
			if err != nil {
				return next(c)
			}

			sess, err := sessions.Session(c.Request().Context(), sid)
			if err != nil {
				return next(c)
			}

			c.Set("session_id", sess.ID)
			c.Set("username", sess.Username)
			return next(c)
		}
	}
}

// RequireSession rejects requests that LoadSession did not bind to a session.
// The wrapped handler is never invoked for anonymous callers.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get("username").(string)
			if username == "" {
				return c.String(http.StatusUnauthorized, UnauthorizedMessage)
			}
			return next(c)
		}
	}
}
