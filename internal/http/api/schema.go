package api

import (
	"time"

	"teamgate/internal/models"
)

type UserSchema struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
	Slug      string `json:"slug"`
	IsAdmin   bool   `json:"isAdmin"`
}

type TeamSchema struct {
	ID        string       `json:"id"`
	LeaderID  string       `json:"leaderId"`
	Name      string       `json:"name"`
	AvatarURL string       `json:"avatarUrl"`
	Slug      string       `json:"slug"`
	Members   []UserSchema `json:"members,omitempty"`
}

type InvitationSchema struct {
	Token     string     `json:"token"`
	TeamID    string     `json:"teamId"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func NewUserSchema(u *models.User) UserSchema {
	return UserSchema{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Slug:      u.Slug,
		IsAdmin:   u.IsAdmin,
	}
}

func NewUserSchemas(users []*models.User) []UserSchema {
	out := make([]UserSchema, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserSchema(u))
	}
	return out
}

func NewTeamSchema(t *models.Team) TeamSchema {
	return TeamSchema{
		ID:        t.ID,
		LeaderID:  t.LeaderID,
		Name:      t.Name,
		AvatarURL: t.AvatarURL,
		Slug:      t.Slug,
	}
}

func NewInvitationSchema(inv *models.Invitation) InvitationSchema {
	return InvitationSchema{
		Token:     inv.Token,
		TeamID:    inv.TeamID,
		Email:     inv.Email,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
	}
}

func NewInvitationSchemas(invs []*models.Invitation) []InvitationSchema {
	out := make([]InvitationSchema, 0, len(invs))
	for _, inv := range invs {
		out = append(out, NewInvitationSchema(inv))
	}
	return out
}
