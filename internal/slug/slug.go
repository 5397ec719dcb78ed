// Package slug generates unique URL-safe identifiers for teams, users, and
// tokens. Uniqueness is owned by the store's unique indexes; the allocator
// only probes candidates, so a concurrent winner surfaces as a write-time
// conflict the caller retries with the next candidate.
package slug

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"teamgate/internal/apperr"
)

const opaqueAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const (
	// DefaultOpaqueLength fits invitation and login tokens: 24 base-36
	// characters carry enough entropy to make guessing infeasible.
	DefaultOpaqueLength = 24

	// maxProbes caps the sequential -1, -2, ... probe loop. Past the cap the
	// allocator falls back to an opaque random base rather than looping
	// forever under pathological concurrent creation.
	maxProbes = 50
)

// Normalize turns a display name into a slug base: lowercased, runs of
// non-alphanumerics collapsed to single hyphens, leading and trailing
// hyphens stripped. Returns "" when nothing survives.
func Normalize(name string) string {
	var b strings.Builder
	prevHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Opaque returns a random base-36 token of length n.
func Opaque(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, c := range buf {
		buf[i] = opaqueAlphabet[int(c)%len(opaqueAlphabet)]
	}
	return string(buf), nil
}

// Scope answers whether a candidate slug is already taken within one
// collection (teams, users, invitation tokens).
type Scope interface {
	Taken(ctx context.Context, slug string) (bool, error)
}

type Allocator struct {
	scope Scope
}

func NewAllocator(scope Scope) *Allocator {
	return &Allocator{scope: scope}
}

// Allocate probes base, base-1, base-2, ... until a free slug is found.
// With N existing collisions it returns on probe N+1. An empty or fully
// stripped name falls through to the opaque variant.
func (a *Allocator) Allocate(ctx context.Context, name string) (string, error) {
	base := Normalize(name)
	if base == "" {
		return a.AllocateOpaque(ctx, DefaultOpaqueLength)
	}

	for i := 0; i <= maxProbes; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}

		taken, err := a.scope.Taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probe slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return a.AllocateOpaque(ctx, DefaultOpaqueLength)
}

// AllocateOpaque generates random base-36 candidates of length n, looping on
// collision instead of incrementing. Exhausting the probe budget means the
// keyspace is effectively saturated and surfaces as a conflict.
func (a *Allocator) AllocateOpaque(ctx context.Context, n int) (string, error) {
	for i := 0; i < maxProbes; i++ {
		candidate, err := Opaque(n)
		if err != nil {
			return "", err
		}

		taken, err := a.scope.Taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probe token: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: opaque slug probe exhausted", apperr.ErrConflict)
}
