package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"teamgate/internal/apperr"
	"teamgate/internal/lib"
	"teamgate/internal/models"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"
)

type InvitationRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewInvitationRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *InvitationRepo {
	return &InvitationRepo{
		db:     db,
		getter: c,
	}
}

func (r *InvitationRepo) Create(ctx context.Context, inv *models.Invitation) error {
	const op = "invitation_repo.Create"

	query := `
		INSERT INTO invitations (token, team_id, email, status, created_at)
		VALUES ($1, $2, $3, $4, now());
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(
		ctx,
		query,
		inv.Token,
		inv.TeamID,
		inv.Email,
		inv.Status,
	)
	if err != nil {
		if translated := translateWrite(err); errors.Is(translated, apperr.ErrConflict) {
			return translated
		}
		return lib.Err(op, err)
	}

	return nil
}

func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	const op = "invitation_repo.GetByToken"

	query := `
		SELECT token, team_id, email, status, created_at
		FROM invitations
		WHERE token = $1;
	`

	var inv models.Invitation
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &inv, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	return &inv, nil
}

// MarkAccepted moves pending to accepted. Re-marking an accepted invitation
// matches zero rows, which keeps redemption idempotent.
func (r *InvitationRepo) MarkAccepted(ctx context.Context, token string) error {
	const op = "invitation_repo.MarkAccepted"

	query := `UPDATE invitations SET status = $1 WHERE token = $2 AND status = $3;`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(
		ctx,
		query,
		models.InvitationAccepted,
		token,
		models.InvitationPending,
	)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

// MarkRemoved is the finalize transition. The row survives with status
// removed so a repeated finalize call still resolves the team.
func (r *InvitationRepo) MarkRemoved(ctx context.Context, token string) error {
	const op = "invitation_repo.MarkRemoved"

	query := `UPDATE invitations SET status = $1 WHERE token = $2;`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, models.InvitationRemoved, token)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

// ListByTeam returns the invitations still visible to the team leader,
// i.e. everything not yet finalized.
func (r *InvitationRepo) ListByTeam(ctx context.Context, teamID string) ([]*models.Invitation, error) {
	const op = "invitation_repo.ListByTeam"

	query := `
		SELECT token, team_id, email, status, created_at
		FROM invitations
		WHERE team_id = $1 AND status <> $2
		ORDER BY created_at DESC;
	`

	var invs []*models.Invitation
	err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &invs, query, teamID, models.InvitationRemoved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*models.Invitation{}, nil
		}
		return nil, lib.Err(op, err)
	}

	return invs, nil
}

func (r *InvitationRepo) DeleteByTeam(ctx context.Context, teamID string) (int64, error) {
	const op = "invitation_repo.DeleteByTeam"

	query := `DELETE FROM invitations WHERE team_id = $1;`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, teamID)
	if err != nil {
		return 0, lib.Err(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, lib.Err(op, err)
	}

	return n, nil
}

// DeleteOrphaned removes invitations whose team no longer exists.
func (r *InvitationRepo) DeleteOrphaned(ctx context.Context) (int64, error) {
	const op = "invitation_repo.DeleteOrphaned"

	query := `
		DELETE FROM invitations i
		WHERE NOT EXISTS (SELECT 1 FROM teams t WHERE t.id = i.team_id);
	`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query)
	if err != nil {
		return 0, lib.Err(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, lib.Err(op, err)
	}

	return n, nil
}

func (r *InvitationRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const op = "invitation_repo.DeleteOlderThan"

	query := `DELETE FROM invitations WHERE created_at < $1;`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, lib.Err(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, lib.Err(op, err)
	}

	return n, nil
}

// TokenTaken is the allocator scope over invitation tokens.
func (r *InvitationRepo) TokenTaken(ctx context.Context, token string) (bool, error) {
	const op = "invitation_repo.TokenTaken"

	query := `SELECT EXISTS (SELECT 1 FROM invitations WHERE token = $1);`

	var taken bool
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &taken, query, token)
	if err != nil {
		return false, lib.Err(op, err)
	}

	return taken, nil
}
