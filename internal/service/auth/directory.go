package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teamgate/internal/apperr"
	"teamgate/internal/models"
	"teamgate/internal/slug"

	"github.com/google/uuid"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=UserRepository
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (string, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, name, avatarURL string) error
	SlugTaken(ctx context.Context, slug string) (bool, error)
}

// directory locates or creates the local user behind an external identity.
// Every strategy converges here: whatever proved the email, the user record
// is keyed by it.
type directory struct {
	users UserRepository
}

func (d *directory) EnsureUser(ctx context.Context, email, name, avatarURL string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperr.ErrInvalidOperation)
	}

	user, err := d.users.GetByEmail(ctx, email)
	if err == nil {
		// A provider-backed login carries the freshest profile; the slug and
		// email stay put.
		if name != "" && (user.Name != name || user.AvatarURL != avatarURL) {
			if err := d.users.UpdateProfile(ctx, user.ID, name, avatarURL); err != nil {
				return nil, err
			}
			user.Name = name
			user.AvatarURL = avatarURL
		}
		return user, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	if name == "" {
		name = nameFromEmail(email)
	}

	userSlug, err := slug.NewAllocator(userSlugScope{d.users}).Allocate(ctx, name)
	if err != nil {
		return nil, err
	}

	user = &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		AvatarURL: avatarURL,
		Slug:      userSlug,
	}

	if _, err := d.users.Create(ctx, user); err != nil {
		// Concurrent first login for the same email: the other request won,
		// use its row.
		if errors.Is(err, apperr.ErrConflict) {
			return d.users.GetByEmail(ctx, email)
		}
		return nil, err
	}

	return user, nil
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

type userSlugScope struct {
	users UserRepository
}

func (s userSlugScope) Taken(ctx context.Context, candidate string) (bool, error) {
	return s.users.SlugTaken(ctx, candidate)
}
