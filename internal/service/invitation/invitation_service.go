package invitation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teamgate/internal/apperr"
	"teamgate/internal/models"
	"teamgate/internal/service"
	"teamgate/internal/slug"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TeamProvider
type TeamProvider interface {
	GetByID(ctx context.Context, teamID string) (*models.Team, error)
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	AddMember(ctx context.Context, teamID, userID string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=InvitationRepository
type InvitationRepository interface {
	Create(ctx context.Context, inv *models.Invitation) error
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)
	MarkAccepted(ctx context.Context, token string) error
	MarkRemoved(ctx context.Context, token string) error
	ListByTeam(ctx context.Context, teamID string) ([]*models.Invitation, error)
	TokenTaken(ctx context.Context, token string) (bool, error)
}

// tokenAttempts bounds retries on a write-time token collision; the opaque
// keyspace makes more than one round effectively unreachable.
const tokenAttempts = 3

type InvitationService struct {
	trm         service.TransactionManager
	teams       TeamProvider
	invitations InvitationRepository
}

func NewInvitationService(
	trm service.TransactionManager,
	teams TeamProvider,
	invitations InvitationRepository,
) *InvitationService {
	return &InvitationService{
		trm:         trm,
		teams:       teams,
		invitations: invitations,
	}
}

// Create issues a pending invitation. Only the team leader may invite.
// The email is not verified as deliverable; delivery belongs to the mail
// collaborator downstream.
func (s *InvitationService) Create(ctx context.Context, teamID, email, actingUserID string) (*models.Invitation, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != actingUserID {
		return nil, fmt.Errorf("%w: only the team leader can invite members", apperr.ErrForbidden)
	}

	allocator := slug.NewAllocator(tokenScope{s.invitations})

	var lastErr error
	for i := 0; i < tokenAttempts; i++ {
		token, err := allocator.AllocateOpaque(ctx, slug.DefaultOpaqueLength)
		if err != nil {
			return nil, err
		}

		inv := &models.Invitation{
			Token:  token,
			TeamID: teamID,
			Email:  strings.ToLower(strings.TrimSpace(email)),
			Status: models.InvitationPending,
		}

		err = s.invitations.Create(ctx, inv)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
		// Lost the write-time race for this token, probe again.
		lastErr = err
	}

	return nil, lastErr
}

// Redeem resolves a token to its team. The team is returned regardless of
// authentication state so the invite landing page can name it before login.
// With a current user present, membership is applied as an idempotent
// set-insert: a retried or double-clicked redemption is absorbed silently.
func (s *InvitationService) Redeem(ctx context.Context, token string, currentUser *models.User) (*models.Team, error) {
	inv, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, invitationNotFound(err)
	}

	if inv.Status == models.InvitationRemoved {
		return nil, fmt.Errorf("%w: invitation no longer exists", apperr.ErrNotFound)
	}

	team, err := s.teams.GetByID(ctx, inv.TeamID)
	if err != nil {
		return nil, invitationNotFound(err)
	}

	if currentUser == nil {
		return team, nil
	}

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.teams.AddMember(ctx, team.ID, currentUser.ID); err != nil {
			return err
		}
		return s.invitations.MarkAccepted(ctx, token)
	})
	if err != nil {
		return nil, err
	}

	return team, nil
}

// Finalize is the cleanup step: it retires the invitation only once the
// caller's user is indeed a member of the target team. A premature call
// leaves the row intact and does not error; a repeated call is a no-op
// that still returns the team.
func (s *InvitationService) Finalize(ctx context.Context, token, userID string) (*models.Team, error) {
	inv, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, invitationNotFound(err)
	}

	team, err := s.teams.GetByID(ctx, inv.TeamID)
	if err != nil {
		return nil, invitationNotFound(err)
	}

	if inv.Status == models.InvitationRemoved {
		return team, nil
	}

	if userID == "" {
		return team, nil
	}

	member, err := s.teams.IsMember(ctx, team.ID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		// Stale or incorrect client call: membership was never applied, so
		// the invitation stays redeemable.
		return team, nil
	}

	if err := s.invitations.MarkRemoved(ctx, token); err != nil {
		return nil, err
	}

	return team, nil
}

// ListByTeam returns a team's open invitations, leader-only.
func (s *InvitationService) ListByTeam(ctx context.Context, teamID, actingUserID string) ([]*models.Invitation, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != actingUserID {
		return nil, fmt.Errorf("%w: only the team leader can list invitations", apperr.ErrForbidden)
	}

	return s.invitations.ListByTeam(ctx, teamID)
}

func invitationNotFound(err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("%w: invitation token does not resolve", apperr.ErrNotFound)
	}
	return err
}

type tokenScope struct {
	invitations InvitationRepository
}

func (s tokenScope) Taken(ctx context.Context, token string) (bool, error) {
	return s.invitations.TokenTaken(ctx, token)
}
