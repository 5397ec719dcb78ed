package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"teamgate/internal/apperr"
	"teamgate/internal/models"
	"teamgate/internal/service"
	"teamgate/internal/slug"

	"github.com/golang-jwt/jwt/v5"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=SessionRepository
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

const sessionIDLength = 32

// CookieConfig describes the session cookie shared between the rendering
// and API tiers.
type CookieConfig struct {
	Name   string
	Domain string
	Secret string
	TTL    time.Duration
}

// AuthService owns session establishment and resolution. The session row
// lives in the store; the cookie carries only the opaque session id, signed
// with HS256 so a tampered cookie fails before any lookup.
type AuthService struct {
	trm      service.TransactionManager
	sessions SessionRepository
	users    UserRepository
	strategy Strategy
	cookie   CookieConfig
	now      func() time.Time
}

func NewAuthService(
	trm service.TransactionManager,
	sessions SessionRepository,
	users UserRepository,
	strategy Strategy,
	cookie CookieConfig,
) *AuthService {
	return &AuthService{
		trm:      trm,
		sessions: sessions,
		users:    users,
		strategy: strategy,
		cookie:   cookie,
		now:      time.Now,
	}
}

// InitiateEmailLogin starts the emailed-link flow. Fails when the process
// was started with a different strategy.
func (s *AuthService) InitiateEmailLogin(ctx context.Context, email string) error {
	st, ok := s.strategy.(*EmailLinkStrategy)
	if !ok {
		return fmt.Errorf("%w: email login is not enabled", apperr.ErrInvalidOperation)
	}
	return st.Initiate(ctx, email)
}

// OAuthURL returns the provider redirect target for the given CSRF state.
func (s *AuthService) OAuthURL(state string) (string, error) {
	st, ok := s.strategy.(*OAuthStrategy)
	if !ok {
		return "", fmt.Errorf("%w: oauth login is not enabled", apperr.ErrInvalidOperation)
	}
	return st.AuthURL(state), nil
}

// CompleteLogin runs the active strategy's completion leg and establishes a
// session: both strategies converge on the same post-condition, a session
// row plus a signed httpOnly cookie bounded by the configured TTL. The
// strategy leg runs before the transaction opens; under OAuth it holds HTTP
// round-trips to the provider, which must not pin a database transaction.
func (s *AuthService) CompleteLogin(ctx context.Context, credential string) (*models.User, *http.Cookie, error) {
	user, err := s.strategy.Complete(ctx, credential)
	if err != nil {
		return nil, nil, err
	}

	sessionID, err := slug.Opaque(sessionIDLength)
	if err != nil {
		return nil, nil, err
	}

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		return s.sessions.Create(ctx, &models.Session{
			ID:        sessionID,
			UserID:    user.ID,
			ExpiresAt: s.now().Add(s.cookie.TTL),
		})
	})
	if err != nil {
		return nil, nil, err
	}

	cookie, err := s.signCookie(sessionID)
	if err != nil {
		return nil, nil, err
	}

	return user, cookie, nil
}

// CurrentUser resolves a cookie value to a user. Anything short of a valid,
// unexpired session yields (nil, nil): anonymous is a result, not an error.
// Errors are reserved for store failures.
func (s *AuthService) CurrentUser(ctx context.Context, cookieValue string) (*models.User, error) {
	sessionID, ok := s.verifyCookie(cookieValue)
	if !ok {
		return nil, nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.Expired(s.now()) {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// Logout destroys the session behind the cookie and returns an expired
// replacement cookie. An invalid cookie still logs out cleanly.
func (s *AuthService) Logout(ctx context.Context, cookieValue string) (*http.Cookie, error) {
	if sessionID, ok := s.verifyCookie(cookieValue); ok {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	expired := s.newCookie("")
	expired.MaxAge = -1
	return expired, nil
}

func (s *AuthService) signCookie(sessionID string) (*http.Cookie, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": s.now().Add(s.cookie.TTL).Unix(),
	})

	signed, err := t.SignedString([]byte(s.cookie.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign session cookie: %w", err)
	}

	return s.newCookie(signed), nil
}

func (s *AuthService) verifyCookie(cookieValue string) (string, bool) {
	if cookieValue == "" {
		return "", false
	}

	token, err := jwt.Parse(cookieValue, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cookie.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", false
	}

	return sid, true
}

func (s *AuthService) newCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookie.Name,
		Value:    value,
		Path:     "/",
		Domain:   s.cookie.Domain,
		MaxAge:   int(s.cookie.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
