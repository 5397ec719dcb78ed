package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"teamgate/internal/apperr"
	"teamgate/internal/models"
	"teamgate/internal/slug"

	"golang.org/x/oauth2"
)

// Strategy is the capability all login flows converge on: exchange a
// strategy-specific credential (an OAuth authorization code, an emailed
// token) for the local user it proves. The active strategy is selected by
// configuration at process start.
type Strategy interface {
	Name() string
	Complete(ctx context.Context, credential string) (*models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=LoginTokenRepository
type LoginTokenRepository interface {
	Create(ctx context.Context, token *models.LoginToken) error
	Consume(ctx context.Context, token string, now time.Time) (string, error)
}

// Mailer is the out-of-scope delivery collaborator. The service only hands
// it a composed link; deliverability is not verified.
//
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=Mailer
type Mailer interface {
	SendLoginLink(ctx context.Context, email, link string) error
}

const loginTokenLength = 24

// EmailLinkStrategy issues single-use, time-bounded tokens mailed to the
// address trying to log in.
type EmailLinkStrategy struct {
	tokens   LoginTokenRepository
	mailer   Mailer
	users    *directory
	ttl      time.Duration
	linkBase string
	now      func() time.Time
}

func NewEmailLinkStrategy(
	tokens LoginTokenRepository,
	mailer Mailer,
	users UserRepository,
	ttl time.Duration,
	linkBase string,
) *EmailLinkStrategy {
	return &EmailLinkStrategy{
		tokens:   tokens,
		mailer:   mailer,
		users:    &directory{users: users},
		ttl:      ttl,
		linkBase: linkBase,
		now:      time.Now,
	}
}

func (s *EmailLinkStrategy) Name() string { return "email-link" }

func (s *EmailLinkStrategy) Initiate(ctx context.Context, email string) error {
	token, err := slug.Opaque(loginTokenLength)
	if err != nil {
		return err
	}

	err = s.tokens.Create(ctx, &models.LoginToken{
		Token:     token,
		Email:     email,
		ExpiresAt: s.now().Add(s.ttl),
	})
	if err != nil {
		return err
	}

	return s.mailer.SendLoginLink(ctx, email, fmt.Sprintf("%s?token=%s", s.linkBase, token))
}

func (s *EmailLinkStrategy) Complete(ctx context.Context, credential string) (*models.User, error) {
	email, err := s.tokens.Consume(ctx, credential, s.now())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: login link is invalid or expired", apperr.ErrNotFound)
		}
		return nil, err
	}

	return s.users.EnsureUser(ctx, email, "", "")
}

// OAuthStrategy runs the authorization-code flow against a third-party
// identity provider and resolves the provider identity to a local user.
type OAuthStrategy struct {
	cfg         *oauth2.Config
	userInfoURL string
	users       *directory
}

func NewOAuthStrategy(cfg *oauth2.Config, userInfoURL string, users UserRepository) *OAuthStrategy {
	return &OAuthStrategy{
		cfg:         cfg,
		userInfoURL: userInfoURL,
		users:       &directory{users: users},
	}
}

func (s *OAuthStrategy) Name() string { return "oauth" }

// AuthURL is the redirect target for the initiate leg.
func (s *OAuthStrategy) AuthURL(state string) string {
	return s.cfg.AuthCodeURL(state)
}

func (s *OAuthStrategy) Complete(ctx context.Context, credential string) (*models.User, error) {
	tok, err := s.cfg.Exchange(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("%w: oauth code exchange failed", apperr.ErrUnauthorized)
	}

	identity, err := s.fetchIdentity(ctx, tok)
	if err != nil {
		return nil, err
	}

	return s.users.EnsureUser(ctx, identity.Email, identity.Name, identity.Picture)
}

type providerIdentity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *OAuthStrategy) fetchIdentity(ctx context.Context, tok *oauth2.Token) (*providerIdentity, error) {
	resp, err := s.cfg.Client(ctx, tok).Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch provider identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider identity request returned %d", apperr.ErrUnauthorized, resp.StatusCode)
	}

	var identity providerIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decode provider identity: %w", err)
	}

	return &identity, nil
}
