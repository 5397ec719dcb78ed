package models

import "time"

// LoginToken backs the emailed-link strategy: single-use, time-bounded,
// keyed to the email it was mailed to.
type LoginToken struct {
	Token      string     `db:"token"`
	Email      string     `db:"email"`
	ExpiresAt  time.Time  `db:"expires_at"`
	ConsumedAt *time.Time `db:"consumed_at"`
	CreatedAt  *time.Time `db:"created_at"`
}
