package maintenance

import (
	"context"
	"log/slog"
	"time"

	"teamgate/internal/lib/sl"

	"go.uber.org/multierr"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=InvitationSweeper
type InvitationSweeper interface {
	DeleteOrphaned(ctx context.Context) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=SessionSweeper
type SessionSweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=LoginTokenSweeper
type LoginTokenSweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=TeamSweeper
type TeamSweeper interface {
	SweepOld(ctx context.Context, cutoff time.Time) (int, error)
}

// Summary reports what one remove-old-data pass cleaned up.
type Summary struct {
	InvitationsRemoved int64
	SessionsRemoved    int64
	LoginTokensRemoved int64
	TeamsRemoved       int
}

// MaintenanceService is the admin remove-old-data sweep: stale invitations
// (orphaned by a deleted team or past retention), expired sessions, spent
// login tokens, and optionally whole teams past their retention. Each step
// is idempotent; a failed step is logged and the pass continues.
type MaintenanceService struct {
	log                 *slog.Logger
	invitations         InvitationSweeper
	sessions            SessionSweeper
	loginTokens         LoginTokenSweeper
	teams               TeamSweeper
	invitationRetention time.Duration
	teamRetention       time.Duration
	now                 func() time.Time
}

func NewMaintenanceService(
	log *slog.Logger,
	invitations InvitationSweeper,
	sessions SessionSweeper,
	loginTokens LoginTokenSweeper,
	teams TeamSweeper,
	invitationRetention time.Duration,
	teamRetention time.Duration,
) *MaintenanceService {
	return &MaintenanceService{
		log:                 log,
		invitations:         invitations,
		sessions:            sessions,
		loginTokens:         loginTokens,
		teams:               teams,
		invitationRetention: invitationRetention,
		teamRetention:       teamRetention,
		now:                 time.Now,
	}
}

func (s *MaintenanceService) RemoveOldData(ctx context.Context) (*Summary, error) {
	now := s.now()
	summary := &Summary{}
	var errs error

	// Teams first: their cascade already sweeps the invitations they own,
	// so the orphan pass below only mops up what was left behind earlier.
	if s.teamRetention > 0 {
		n, err := s.teams.SweepOld(ctx, now.Add(-s.teamRetention))
		summary.TeamsRemoved = n
		if err != nil {
			s.log.Error("team sweep failed", sl.Err(err))
			errs = multierr.Append(errs, err)
		}
	}

	n, err := s.invitations.DeleteOrphaned(ctx)
	summary.InvitationsRemoved += n
	if err != nil {
		s.log.Error("orphaned invitation sweep failed", sl.Err(err))
		errs = multierr.Append(errs, err)
	}

	n, err = s.invitations.DeleteOlderThan(ctx, now.Add(-s.invitationRetention))
	summary.InvitationsRemoved += n
	if err != nil {
		s.log.Error("stale invitation sweep failed", sl.Err(err))
		errs = multierr.Append(errs, err)
	}

	n, err = s.sessions.DeleteExpired(ctx, now)
	summary.SessionsRemoved = n
	if err != nil {
		s.log.Error("expired session sweep failed", sl.Err(err))
		errs = multierr.Append(errs, err)
	}

	n, err = s.loginTokens.DeleteExpired(ctx, now)
	summary.LoginTokensRemoved = n
	if err != nil {
		s.log.Error("login token sweep failed", sl.Err(err))
		errs = multierr.Append(errs, err)
	}

	return summary, errs
}
