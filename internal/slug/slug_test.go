package slug_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"teamgate/internal/apperr"
	"teamgate/internal/slug"

	"github.com/stretchr/testify/assert"
)

type fakeScope struct {
	taken  map[string]bool
	probes []string
	err    error
}

func (s *fakeScope) Taken(_ context.Context, candidate string) (bool, error) {
	s.probes = append(s.probes, candidate)
	if s.err != nil {
		return false, s.err
	}
	return s.taken[candidate], nil
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme", "acme"},
		{"spaces", "Acme Rocket Co", "acme-rocket-co"},
		{"punctuation", "Bob's Team!!", "bob-s-team"},
		{"collapsed runs", "a  --  b", "a-b"},
		{"leading trailing", "  Acme  ", "acme"},
		{"digits", "Team 42", "team-42"},
		{"nothing left", "!!!", ""},
		{"unicode stripped", "Café", "caf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Normalize(tc.in))
		})
	}
}

func TestAllocate_FreeBase(t *testing.T) {
	scope := &fakeScope{taken: map[string]bool{}}
	a := slug.NewAllocator(scope)

	got, err := a.Allocate(context.Background(), "Acme")

	assert.NoError(t, err)
	assert.Equal(t, "acme", got)
	assert.Equal(t, []string{"acme"}, scope.probes)
}

func TestAllocate_CollisionsProbeSequentially(t *testing.T) {
	// N = 3 collisions must terminate on probe N+1.
	scope := &fakeScope{taken: map[string]bool{
		"acme":   true,
		"acme-1": true,
		"acme-2": true,
	}}
	a := slug.NewAllocator(scope)

	got, err := a.Allocate(context.Background(), "Acme")

	assert.NoError(t, err)
	assert.Equal(t, "acme-3", got)
	assert.Len(t, scope.probes, 4)
}

func TestAllocate_EmptyNameFallsBackToOpaque(t *testing.T) {
	scope := &fakeScope{taken: map[string]bool{}}
	a := slug.NewAllocator(scope)

	got, err := a.Allocate(context.Background(), "!!!")

	assert.NoError(t, err)
	assert.Len(t, got, slug.DefaultOpaqueLength)
}

func TestAllocate_ScopeError(t *testing.T) {
	scope := &fakeScope{err: errors.New("store down")}
	a := slug.NewAllocator(scope)

	_, err := a.Allocate(context.Background(), "Acme")

	assert.Error(t, err)
}

func TestAllocateOpaque_LengthAndAlphabet(t *testing.T) {
	scope := &fakeScope{taken: map[string]bool{}}
	a := slug.NewAllocator(scope)

	got, err := a.AllocateOpaque(context.Background(), 24)

	assert.NoError(t, err)
	assert.Len(t, got, 24)
	for _, c := range got {
		assert.True(t, strings.ContainsRune("0123456789abcdefghijklmnopqrstuvwxyz", c))
	}
}

func TestAllocateOpaque_ExhaustedProbesIsConflict(t *testing.T) {
	// Every probe collides.
	a := slug.NewAllocator(&collidingScope{})

	_, err := a.AllocateOpaque(context.Background(), 8)

	assert.ErrorIs(t, err, apperr.ErrConflict)
}

type collidingScope struct{}

func (collidingScope) Taken(context.Context, string) (bool, error) { return true, nil }

func TestOpaque_Distinct(t *testing.T) {
	a, err := slug.Opaque(24)
	assert.NoError(t, err)
	b, err := slug.Opaque(24)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
