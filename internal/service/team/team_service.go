package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"teamgate/internal/apperr"
	"teamgate/internal/lib/sl"
	"teamgate/internal/models"
	"teamgate/internal/service"
	"teamgate/internal/slug"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TeamRepository
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) (string, error)
	GetByID(ctx context.Context, teamID string) (*models.Team, error)
	GetBySlug(ctx context.Context, slug string) (*models.Team, error)
	Update(ctx context.Context, teamID, name, avatarURL string) error
	AddMember(ctx context.Context, teamID, userID string) error
	RemoveMember(ctx context.Context, teamID, userID string) error
	Members(ctx context.Context, teamID string) ([]*models.User, error)
	Delete(ctx context.Context, teamID string) error
	DeleteMembers(ctx context.Context, teamID string) error
	ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]string, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=InvitationCleaner
type InvitationCleaner interface {
	DeleteByTeam(ctx context.Context, teamID string) (int64, error)
}

// createAttempts bounds retries when a concurrent creator wins the slug's
// unique index between the probe and the write.
const createAttempts = 3

type TeamService struct {
	trm         service.TransactionManager
	log         *slog.Logger
	teams       TeamRepository
	invitations InvitationCleaner
}

func NewTeamService(
	trm service.TransactionManager,
	log *slog.Logger,
	teams TeamRepository,
	invitations InvitationCleaner,
) *TeamService {
	return &TeamService{
		trm:         trm,
		log:         log,
		teams:       teams,
		invitations: invitations,
	}
}

// Create allocates a slug, writes the team, and enrolls the leader as its
// first member in one transaction: the leader is a member from the first
// observable moment.
func (s *TeamService) Create(ctx context.Context, leaderID, name, avatarURL string) (*models.Team, error) {
	allocator := slug.NewAllocator(slugScope{s.teams})

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		teamSlug, err := allocator.Allocate(ctx, name)
		if err != nil {
			return nil, err
		}

		team := &models.Team{
			ID:        uuid.NewString(),
			LeaderID:  leaderID,
			Name:      name,
			AvatarURL: avatarURL,
			Slug:      teamSlug,
		}

		err = s.trm.Do(ctx, func(ctx context.Context) error {
			if _, err := s.teams.Create(ctx, team); err != nil {
				return err
			}
			return s.teams.AddMember(ctx, team.ID, leaderID)
		})
		if err == nil {
			return team, nil
		}
		if !errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
		// Write-time slug collision: re-probe with the next candidate.
		lastErr = err
	}

	return nil, lastErr
}

// GetBySlug resolves a team by its public slug along with its member list.
// Slugs are the URL-facing identity, so this backs the public team page.
func (s *TeamService) GetBySlug(ctx context.Context, teamSlug string) (*models.Team, []*models.User, error) {
	team, err := s.teams.GetBySlug(ctx, teamSlug)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.teams.Members(ctx, team.ID)
	if err != nil {
		return nil, nil, err
	}

	return team, members, nil
}

// Update changes name and avatar, leader-only. The slug is stable for life.
func (s *TeamService) Update(ctx context.Context, actingUserID, teamID, name, avatarURL string) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != actingUserID {
		return nil, fmt.Errorf("%w: only the team leader can update the team", apperr.ErrForbidden)
	}

	if err := s.teams.Update(ctx, teamID, name, avatarURL); err != nil {
		return nil, err
	}

	team.Name = name
	team.AvatarURL = avatarURL
	return team, nil
}

// RemoveMember evicts a member, leader-only. The leader cannot be removed:
// that would orphan the team.
func (s *TeamService) RemoveMember(ctx context.Context, actingUserID, teamID, userID string) error {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}

	if team.LeaderID != actingUserID {
		return fmt.Errorf("%w: only the team leader can remove members", apperr.ErrForbidden)
	}

	if userID == team.LeaderID {
		return fmt.Errorf("%w: the team leader cannot be removed from the team", apperr.ErrInvalidOperation)
	}

	return s.teams.RemoveMember(ctx, teamID, userID)
}

// DeleteCascade removes a team and everything referencing it in dependency
// order: invitations, then memberships, then the team row. No multi-table
// transaction is assumed; each step is idempotent and a failed step is
// logged and skipped so a re-run can finish the job.
func (s *TeamService) DeleteCascade(ctx context.Context, teamID string) error {
	log := s.log.With(slog.String("team_id", teamID))

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"delete invitations", func(ctx context.Context) error {
			_, err := s.invitations.DeleteByTeam(ctx, teamID)
			return err
		}},
		{"delete members", func(ctx context.Context) error {
			return s.teams.DeleteMembers(ctx, teamID)
		}},
		{"delete team", func(ctx context.Context) error {
			return s.teams.Delete(ctx, teamID)
		}},
	}

	var errs error
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			log.Error("cascade step failed", slog.String("step", step.name), sl.Err(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", step.name, err))
		}
	}

	return errs
}

// SweepOld cascade-deletes teams older than the cutoff and reports how many
// were attempted. Per-team failures do not stop the sweep.
func (s *TeamService) SweepOld(ctx context.Context, cutoff time.Time) (int, error) {
	ids, err := s.teams.ListCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var errs error
	for _, id := range ids {
		if err := s.DeleteCascade(ctx, id); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return len(ids), errs
}

type slugScope struct {
	teams TeamRepository
}

func (s slugScope) Taken(ctx context.Context, candidate string) (bool, error) {
	return s.teams.SlugTaken(ctx, candidate)
}
