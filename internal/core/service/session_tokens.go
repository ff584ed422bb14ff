package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

const sessionIDClaim = "sid"

// SessionTokens signs session ids into HS256 tokens for the session cookie,
// so the cookie carries a tamper-evident reference and never the username.
type SessionTokens struct {
	secret []byte
}

func NewSessionTokens(secret string) *SessionTokens {
	return &SessionTokens{secret: []byte(secret)}
}

// Issue returns a signed token that expires together with the session.
func (t *SessionTokens) Issue(sess domain.Session) (string, error) {
	if sess.ID == "" {
		return "", errors.New("session id is required")
	}
	claims := jwt.MapClaims{
		sessionIDClaim: sess.ID,
		"iat":          sess.CreatedAt.Unix(),
	}
	if !sess.ExpiresAt.IsZero() {
		claims["exp"] = sess.ExpiresAt.Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates the token and returns the session id it references.
// Any failure is reported as domain.ErrSessionNotFound.
func (t *SessionTokens) Parse(token string) (string, error) {
	if token == "" {
		return "", domain.ErrSessionNotFound
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrSessionNotFound
	}

	sid, _ := claims[sessionIDClaim].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}
