package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/piracy-detector/internal/core/domain"
	"github.com/99minutos/piracy-detector/internal/core/ports"
	"github.com/99minutos/piracy-detector/pkg/metrics"
)

const (
	defaultBcryptCost = 10
	defaultSessionTTL = 24 * time.Hour
)

// AuthOptions tunes hashing cost and session lifetime.
type AuthOptions struct {
	BcryptCost int
	SessionTTL time.Duration
}

// AuthService implements registration, login and session lookup.
type AuthService struct {
	users      ports.CredentialStore
	sessions   ports.SessionStore
	bcryptCost int
	sessionTTL time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

func NewAuthService(users ports.CredentialStore, sessions ports.SessionStore, opts AuthOptions, log zerolog.Logger) *AuthService {
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = defaultBcryptCost
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		bcryptCost: opts.BcryptCost,
		sessionTTL: opts.SessionTTL,
		now:        time.Now,
		log:        log,
	}
}

// Register hashes password and stores a new user. A taken username fails with
// domain.ErrUserExists whatever the password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidInput
	}

	// A taken username is reported before the password is looked at.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		metrics.RegistrationsTotal.WithLabelValues("exists").Inc()
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	if password == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("exists").Inc()
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("username", username).Msg("user registered")
	return user, nil
}

// Verify checks password against the stored hash. It returns nil on a match,
// domain.ErrUserNotFound for an unknown user and domain.ErrInvalidCredentials
// on a mismatch.
func (s *AuthService) Verify(ctx context.Context, username, password string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("verify: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Login verifies the credentials and opens a new session. The caller's
// previous session, if any, is discarded so a session id never survives a
// change of identity.
func (s *AuthService) Login(ctx context.Context, username, password, previousSessionID string) (*domain.Session, error) {
	if err := s.Verify(ctx, username, password); err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return nil, err
	}

	if previousSessionID != "" {
		if err := s.sessions.Delete(ctx, previousSessionID); err != nil {
			s.log.Warn().Err(err).Msg("failed to drop previous session")
		}
	}

	now := s.now().UTC()
	sess := domain.Session{
		ID:        uuid.New().String(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", username).Msg("user logged in")
	return &sess, nil
}

// Logout removes a session. An empty id is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Session returns the live session for sessionID or domain.ErrSessionNotFound.
func (s *AuthService) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if sess.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.log.Warn().Err(err).Msg("failed to delete expired session")
		}
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}
