package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"teamgate/internal/apperr"
	"teamgate/internal/models"
	"teamgate/internal/service/auth"
	"teamgate/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testCookie = auth.CookieConfig{
	Name:   "teamgate_session",
	Secret: "test_secret",
	TTL:    14 * 24 * time.Hour,
}

func newEmailService(t *testing.T) (*auth.AuthService, *mocks.UserRepository, *mocks.SessionRepository, *mocks.LoginTokenRepository, *mocks.Mailer) {
	users := mocks.NewUserRepository(t)
	sessions := mocks.NewSessionRepository(t)
	tokens := mocks.NewLoginTokenRepository(t)
	mailer := mocks.NewMailer(t)

	strategy := auth.NewEmailLinkStrategy(tokens, mailer, users, 15*time.Minute, "http://localhost:8080/login")
	svc := auth.NewAuthService(mocks.PassthroughManager{}, sessions, users, strategy, testCookie)

	return svc, users, sessions, tokens, mailer
}

func TestInitiateEmailLogin_PersistsTokenAndMailsLink(t *testing.T) {
	ctx := context.Background()
	svc, _, _, tokens, mailer := newEmailService(t)

	var issued string
	tokens.On("Create", ctx, mock.MatchedBy(func(lt *models.LoginToken) bool {
		issued = lt.Token
		return lt.Email == "bob@example.com" && len(lt.Token) == 24 && lt.ExpiresAt.After(time.Now())
	})).Return(nil)
	mailer.On("SendLoginLink", ctx, "bob@example.com", mock.MatchedBy(func(link string) bool {
		return strings.HasPrefix(link, "http://localhost:8080/login?token=") &&
			strings.HasSuffix(link, issued)
	})).Return(nil)

	err := svc.InitiateEmailLogin(ctx, "bob@example.com")

	assert.NoError(t, err)
}

func TestCompleteLogin_EstablishesSessionAndCookie(t *testing.T) {
	ctx := context.Background()
	svc, users, sessions, tokens, _ := newEmailService(t)

	tokens.On("Consume", ctx, "T1", mock.AnythingOfType("time.Time")).Return("bob@example.com", nil)
	existing := &models.User{ID: "user-b", Email: "bob@example.com", Slug: "bob"}
	users.On("GetByEmail", ctx, "bob@example.com").Return(existing, nil)
	sessions.On("Create", ctx, mock.MatchedBy(func(s *models.Session) bool {
		return s.UserID == "user-b" && len(s.ID) == 32 && s.ExpiresAt.After(time.Now())
	})).Return(nil)

	user, cookie, err := svc.CompleteLogin(ctx, "T1")

	assert.NoError(t, err)
	assert.Equal(t, "user-b", user.ID)
	assert.Equal(t, "teamgate_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int((14 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.NotEmpty(t, cookie.Value)
}

func TestCompleteLogin_CreatesUserOnFirstLogin(t *testing.T) {
	ctx := context.Background()
	svc, users, sessions, tokens, _ := newEmailService(t)

	tokens.On("Consume", ctx, "T1", mock.AnythingOfType("time.Time")).Return("new@example.com", nil)
	users.On("GetByEmail", ctx, "new@example.com").Return(nil, apperr.ErrNotFound)
	users.On("SlugTaken", ctx, "new").Return(false, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "new@example.com" && u.Name == "new" && u.Slug == "new" && u.ID != ""
	})).Return("", nil)
	sessions.On("Create", ctx, mock.Anything).Return(nil)

	user, cookie, err := svc.CompleteLogin(ctx, "T1")

	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.NotNil(t, cookie)
}

func TestCompleteLogin_SpentTokenNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions, tokens, _ := newEmailService(t)

	tokens.On("Consume", ctx, "spent", mock.AnythingOfType("time.Time")).Return("", apperr.ErrNotFound)

	user, cookie, err := svc.CompleteLogin(ctx, "spent")

	assert.Nil(t, user)
	assert.Nil(t, cookie)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// trackingManager records whether a transaction is open when repository
// calls happen, so tests can pin down which writes run inside Do.
type trackingManager struct {
	inTx bool
}

func (m *trackingManager) Do(ctx context.Context, fn func(context.Context) error) error {
	m.inTx = true
	defer func() { m.inTx = false }()
	return fn(ctx)
}

func TestCompleteLogin_CredentialExchangeRunsOutsideSessionTransaction(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewUserRepository(t)
	sessions := mocks.NewSessionRepository(t)
	tokens := mocks.NewLoginTokenRepository(t)

	trm := &trackingManager{}
	strategy := auth.NewEmailLinkStrategy(tokens, mocks.NewMailer(t), users, 15*time.Minute, "http://localhost:8080/login")
	svc := auth.NewAuthService(trm, sessions, users, strategy, testCookie)

	tokens.On("Consume", ctx, "T1", mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { assert.False(t, trm.inTx, "credential exchange must not hold a transaction") }).
		Return("bob@example.com", nil)
	users.On("GetByEmail", ctx, "bob@example.com").
		Return(&models.User{ID: "user-b", Email: "bob@example.com"}, nil)
	sessions.On("Create", ctx, mock.Anything).
		Run(func(mock.Arguments) { assert.True(t, trm.inTx, "session write belongs inside the transaction") }).
		Return(nil)

	_, _, err := svc.CompleteLogin(ctx, "T1")

	assert.NoError(t, err)
}

func TestCurrentUser_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, users, sessions, tokens, _ := newEmailService(t)

	tokens.On("Consume", ctx, "T1", mock.AnythingOfType("time.Time")).Return("bob@example.com", nil)
	existing := &models.User{ID: "user-b", Email: "bob@example.com"}
	users.On("GetByEmail", ctx, "bob@example.com").Return(existing, nil)

	var sessionID string
	sessions.On("Create", ctx, mock.MatchedBy(func(s *models.Session) bool {
		sessionID = s.ID
		return true
	})).Return(nil)

	_, cookie, err := svc.CompleteLogin(ctx, "T1")
	assert.NoError(t, err)

	sessions.On("Get", ctx, mock.MatchedBy(func(id string) bool { return id == sessionID })).
		Return(&models.Session{
			ID:        sessionID,
			UserID:    "user-b",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)
	users.On("GetByID", ctx, "user-b").Return(existing, nil)

	user, err := svc.CurrentUser(ctx, cookie.Value)

	assert.NoError(t, err)
	assert.Equal(t, "user-b", user.ID)
}

func TestCurrentUser_TamperedCookieIsAnonymous(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions, _, _ := newEmailService(t)

	user, err := svc.CurrentUser(ctx, "not-a-signed-cookie")

	assert.NoError(t, err)
	assert.Nil(t, user)
	sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCurrentUser_EmptyCookieIsAnonymous(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newEmailService(t)

	user, err := svc.CurrentUser(ctx, "")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestCurrentUser_ExpiredSessionIsAnonymous(t *testing.T) {
	ctx := context.Background()
	svc, users, sessions, tokens, _ := newEmailService(t)

	tokens.On("Consume", ctx, "T1", mock.AnythingOfType("time.Time")).Return("bob@example.com", nil)
	users.On("GetByEmail", ctx, "bob@example.com").Return(&models.User{ID: "user-b"}, nil)

	var sessionID string
	sessions.On("Create", ctx, mock.MatchedBy(func(s *models.Session) bool {
		sessionID = s.ID
		return true
	})).Return(nil)

	_, cookie, err := svc.CompleteLogin(ctx, "T1")
	assert.NoError(t, err)

	sessions.On("Get", ctx, mock.MatchedBy(func(id string) bool { return id == sessionID })).
		Return(&models.Session{
			ID:        sessionID,
			UserID:    "user-b",
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)

	user, err := svc.CurrentUser(ctx, cookie.Value)

	assert.NoError(t, err)
	assert.Nil(t, user)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestLogout_DeletesSessionAndExpiresCookie(t *testing.T) {
	ctx := context.Background()
	svc, users, sessions, tokens, _ := newEmailService(t)

	tokens.On("Consume", ctx, "T1", mock.AnythingOfType("time.Time")).Return("bob@example.com", nil)
	users.On("GetByEmail", ctx, "bob@example.com").Return(&models.User{ID: "user-b"}, nil)

	var sessionID string
	sessions.On("Create", ctx, mock.MatchedBy(func(s *models.Session) bool {
		sessionID = s.ID
		return true
	})).Return(nil)

	_, cookie, err := svc.CompleteLogin(ctx, "T1")
	assert.NoError(t, err)

	sessions.On("Delete", ctx, mock.MatchedBy(func(id string) bool { return id == sessionID })).Return(nil)

	expired, err := svc.Logout(ctx, cookie.Value)

	assert.NoError(t, err)
	assert.Equal(t, -1, expired.MaxAge)
	assert.Empty(t, expired.Value)
}

func TestLogout_InvalidCookieStillSucceeds(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions, _, _ := newEmailService(t)

	expired, err := svc.Logout(ctx, "garbage")

	assert.NoError(t, err)
	assert.Equal(t, -1, expired.MaxAge)
	sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOAuthURL_DisabledUnderEmailStrategy(t *testing.T) {
	svc, _, _, _, _ := newEmailService(t)

	_, err := svc.OAuthURL("state")

	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
}

func TestEnsureUser_ConcurrentFirstLoginFallsBackToWinner(t *testing.T) {
	ctx := context.Background()
	svc, users, sessions, tokens, _ := newEmailService(t)

	tokens.On("Consume", ctx, "T1", mock.AnythingOfType("time.Time")).Return("bob@example.com", nil)

	winner := &models.User{ID: "winner", Email: "bob@example.com"}
	users.On("GetByEmail", ctx, "bob@example.com").Return(nil, apperr.ErrNotFound).Once()
	users.On("SlugTaken", ctx, "bob").Return(false, nil)
	users.On("Create", ctx, mock.Anything).Return("", apperr.ErrConflict)
	users.On("GetByEmail", ctx, "bob@example.com").Return(winner, nil).Once()
	sessions.On("Create", ctx, mock.Anything).Return(nil)

	user, _, err := svc.CompleteLogin(ctx, "T1")

	assert.NoError(t, err)
	assert.Equal(t, "winner", user.ID)
}
