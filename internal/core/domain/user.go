package domain

import "time"

// User is a registered account. Owned by the credential store and never
// updated after creation.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
