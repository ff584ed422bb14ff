package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

type stubCredentialStore struct {
	users map[string]*domain.User
}

func newStubCredentialStore() *stubCredentialStore {
	return &stubCredentialStore{users: make(map[string]*domain.User)}
}

func (r *stubCredentialStore) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *stubCredentialStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	deleted  []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	delete(s.sessions, id)
	return nil
}

func newTestAuthService() (*AuthService, *stubCredentialStore, *stubSessionStore) {
	users := newStubCredentialStore()
	sessions := newStubSessionStore()
	svc := NewAuthService(users, sessions, AuthOptions{BcryptCost: bcrypt.MinCost, SessionTTL: time.Hour}, zerolog.Nop())
	return svc, users, sessions
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, users, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	stored, ok := users.users["alice"]
	if !ok {
		t.Fatalf("user not stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_DefaultCost(t *testing.T) {
	svc := NewAuthService(newStubCredentialStore(), newStubSessionStore(), AuthOptions{}, zerolog.Nop())
	if svc.bcryptCost != 10 {
		t.Fatalf("expected default cost 10, got %d", svc.bcryptCost)
	}
	if svc.sessionTTL != 24*time.Hour {
		t.Fatalf("expected default ttl 24h, got %s", svc.sessionTTL)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, users, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "bob", "pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	original := users.users["bob"].PasswordHash

	for _, password := range []string{"pass", "other", "", strings.Repeat("x", 80)} {
		if _, err := svc.Register(context.Background(), "bob", password); err != domain.ErrUserExists {
			t.Fatalf("expected ErrUserExists for password of length %d, got %v", len(password), err)
		}
	}
	if users.users["bob"].PasswordHash != original {
		t.Fatalf("duplicate registration overwrote the stored hash")
	}
}

func TestAuthService_Register_LongPasswordNewUser(t *testing.T) {
	svc, users, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "carol", strings.Repeat("x", 80)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an over-long password, got %v", err)
	}
	if _, ok := users.users["carol"]; ok {
		t.Fatalf("user must not be stored when hashing fails")
	}
}

func TestAuthService_Verify(t *testing.T) {
	svc, _, _ := newTestAuthService()
	_, _ = svc.Register(context.Background(), "carol", "s3cret")

	if err := svc.Verify(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := svc.Verify(context.Background(), "carol", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.Verify(context.Background(), "ghost", "s3cret"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	_, _ = svc.Register(context.Background(), "carol", "s3cret")

	sess, err := svc.Login(context.Background(), "carol", "s3cret", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.ID == "" || sess.ID == "carol" {
		t.Fatalf("expected opaque session id, got %q", sess.ID)
	}
	if sess.Username != "carol" {
		t.Fatalf("unexpected username: %s", sess.Username)
	}
	if !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Fatalf("expected expiry after creation")
	}
	if _, ok := sessions.sessions[sess.ID]; !ok {
		t.Fatalf("session not stored")
	}
}

func TestAuthService_Login_RotatesPreviousSession(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	_, _ = svc.Register(context.Background(), "dave", "goodpass")

	first, err := svc.Login(context.Background(), "dave", "goodpass", "")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, err := svc.Login(context.Background(), "dave", "goodpass", first.ID)
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected a fresh session id")
	}
	if _, ok := sessions.sessions[first.ID]; ok {
		t.Fatalf("previous session still present")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	_, _ = svc.Register(context.Background(), "dave", "goodpass")

	if _, err := svc.Login(context.Background(), "dave", "badpass", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("session bound on failed login")
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	if _, err := svc.Login(context.Background(), "ghost", "pass", ""); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("session bound on failed login")
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	_, _ = svc.Register(context.Background(), "erin", "pw")
	sess, _ := svc.Login(context.Background(), "erin", "pw", "")

	if err := svc.Logout(context.Background(), sess.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Session(context.Background(), sess.ID); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}

	sessions.deleted = nil
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty logout should be a no-op, got %v", err)
	}
	if len(sessions.deleted) != 0 {
		t.Fatalf("empty logout touched the store")
	}
}

func TestAuthService_Session_Expired(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	sessions.sessions["old"] = domain.Session{
		ID:        "old",
		Username:  "frank",
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}

	if _, err := svc.Session(context.Background(), "old"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, ok := sessions.sessions["old"]; ok {
		t.Fatalf("expired session not cleaned up")
	}
}

func TestAuthService_Session_Empty(t *testing.T) {
	svc, _, _ := newTestAuthService()
	if _, err := svc.Session(context.Background(), ""); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
