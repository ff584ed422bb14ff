package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

type stubTokens struct {
	sessionIDs map[string]string
}

func (s stubTokens) Parse(token string) (string, error) {
	sid, ok := s.sessionIDs[token]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}

type stubSessions struct {
	sessions map[string]domain.Session
}

func (s stubSessions) Session(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func newLoader() echo.MiddlewareFunc {
	return LoadSession(
		stubTokens{sessionIDs: map[string]string{"good-token": "sid-1", "orphan-token": "sid-gone"}},
		stubSessions{sessions: map[string]domain.Session{"sid-1": {ID: "sid-1", Username: "alice"}}},
	)
}

func TestLoadSession_ValidCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := newLoader()(func(c echo.Context) error {
		called = true
		if c.Get("username") != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get("session_id") != "sid-1" {
			t.Fatalf("session_id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestLoadSession_AnonymousPassesThrough(t *testing.T) {
	cases := map[string]*http.Cookie{
		"no cookie":       nil,
		"bad token":       {Name: SessionCookieName, Value: "forged"},
		"unknown session": {Name: SessionCookieName, Value: "orphan-token"},
	}

	for name, cookie := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if cookie != nil {
				req.AddCookie(cookie)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			handler := newLoader()(func(c echo.Context) error {
				called = true
				if c.Get("username") != nil {
					t.Fatalf("username should not be set")
				}
				return nil
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called {
				t.Fatalf("next not called")
			}
		})
	}
}

func TestRequireSession_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "alice")

	called := false
	handler := RequireSession()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSession_RejectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Body.String() != UnauthorizedMessage {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestRequestLogger_WritesEntry(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	line := buf.String()
	if !strings.Contains(line, `"uri":"/ping"`) || !strings.Contains(line, `"status":200`) {
		t.Fatalf("unexpected log line: %s", line)
	}
}
