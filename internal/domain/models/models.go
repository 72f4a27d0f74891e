package models

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Favorite marks a single movie as favorited by a single user. At most one
// record may exist per (UserID, MovieID) pair, enforced by a unique index.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MovieID   string    `json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is an immutable value produced once on successful authentication
// and carried through request context. It is never persisted server-side.
type Session struct {
	UserID    int64
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the session is present and not expired.
func (s *Session) Valid() bool {
	if s == nil {
		return false
	}
	return time.Now().Before(s.ExpiresAt)
}
