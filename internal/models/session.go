package models

import "time"

// Session maps an opaque id, carried signed inside the cookie, to a user.
type Session struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	CreatedAt *time.Time `db:"created_at"`
	ExpiresAt time.Time  `db:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
