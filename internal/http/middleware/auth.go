package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"teamgate/internal/http/api"
	"teamgate/internal/lib/sl"
	"teamgate/internal/models"

	"github.com/go-chi/render"
)

type key int

const userKey key = 1

type principalResolver interface {
	CurrentUser(ctx context.Context, cookieValue string) (*models.User, error)
}

// Principal resolves the session cookie into the current user and attaches
// it to the request context. A nil user means anonymous; handlers and gates
// downstream decide what that implies. Runs on every route, public included.
func Principal(log *slog.Logger, resolver principalResolver, cookieName string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookieValue string
			if c, err := r.Cookie(cookieName); err == nil {
				cookieValue = c.Value
			}

			user, err := resolver.CurrentUser(r.Context(), cookieValue)
			if err != nil {
				// Store failure, not an authentication outcome: a 200 here
				// would read as a definite anonymous to the bridge, so this
				// surfaces as 5xx for external retry.
				log.Error("session resolution failed", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, api.InternalError())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser attaches a resolved user to the context, the same way Principal
// does. Nil marks the request anonymous.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the resolved user, nil for anonymous.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// RequireSession is the authentication gate: it short-circuits with 401
// before any business logic runs, so gate failures have no side effects.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, api.Error("unauthorized"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AdminOnly gates the admin surface. Non-admins get the same 401 as
// anonymous callers; the admin surface does not acknowledge its existence.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, api.Error("unauthorized"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
