// Package bridge is the rendering tier's half of the cross-service session
// protocol: every request needing identity forwards the browser's cookie
// header to the API tier and interprets the answer as the current user.
// Forgetting to forward the cookie silently observes an anonymous user, so
// the forwarding is owned by one typed call instead of per-endpoint code.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"teamgate/internal/http/api"
	"teamgate/internal/lib/sl"
)

// Principal is the outcome of one resolution. A nil User is a definite
// "not logged in"; transport failures never produce a Principal.
type Principal struct {
	User *api.UserSchema
}

func (p Principal) Anonymous() bool {
	return p.User == nil
}

type Resolver struct {
	baseURL string
	client  *http.Client
}

// NewResolver builds a resolver against the API tier base URL. The timeout
// is the whole budget for one resolution; a slow API tier degrades to an
// error, not a hung page render.
func NewResolver(baseURL string, timeout time.Duration) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Resolve forwards the inbound cookie header to the API tier's get-user
// endpoint. It returns an error only for transport-level failures, so the
// caller can tell "API unreachable" apart from "not logged in".
func (r *Resolver) Resolve(ctx context.Context, cookieHeader string) (Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/public/get-user", nil)
	if err != nil {
		return Principal{}, fmt.Errorf("build principal request: %w", err)
	}
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Principal{}, fmt.Errorf("resolve principal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Principal{}, fmt.Errorf("resolve principal: api tier returned %d", resp.StatusCode)
	}

	var body api.UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Principal{}, fmt.Errorf("decode principal response: %w", err)
	}

	return Principal{User: body.User}, nil
}

// ResolveOrAnonymous degrades a transport failure to anonymous after logging
// it, for pages that must render either way.
func (r *Resolver) ResolveOrAnonymous(ctx context.Context, log *slog.Logger, cookieHeader string) Principal {
	p, err := r.Resolve(ctx, cookieHeader)
	if err != nil {
		log.Warn("principal resolution degraded to anonymous", sl.Err(err))
		return Principal{}
	}
	return p
}

type key int

const principalKey key = 1

// Middleware resolves the principal for every inbound request and stores it
// in the request context.
func (r *Resolver) Middleware(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			p := r.ResolveOrAnonymous(req.Context(), log, req.Header.Get("Cookie"))
			ctx := context.WithValue(req.Context(), principalKey, p)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// FromContext returns the principal placed by Middleware; the zero value is
// anonymous.
func FromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(principalKey).(Principal)
	return p
}
