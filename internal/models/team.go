package models

import "time"

// Team has exactly one leader at a time; the leader is always present in the
// membership set.
type Team struct {
	ID        string     `db:"id"`
	LeaderID  string     `db:"leader_id"`
	Name      string     `db:"name"`
	AvatarURL string     `db:"avatar_url"`
	Slug      string     `db:"slug"`
	CreatedAt *time.Time `db:"created_at"`
}
