package models

import "time"

type User struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	AvatarURL string     `db:"avatar_url"`
	Slug      string     `db:"slug"`
	IsAdmin   bool       `db:"is_admin"`
	CreatedAt *time.Time `db:"created_at"`
}
