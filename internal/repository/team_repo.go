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

type TeamRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewTeamRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *TeamRepo {
	return &TeamRepo{
		db:     db,
		getter: c,
	}
}

func (r *TeamRepo) Create(ctx context.Context, team *models.Team) (string, error) {
	const op = "team_repo.Create"

	query := `
		INSERT INTO teams (id, leader_id, name, avatar_url, slug, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id;
	`

	var teamID string
	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(
		ctx,
		query,
		team.ID,
		team.LeaderID,
		team.Name,
		team.AvatarURL,
		team.Slug,
	).Scan(&teamID)
	if err != nil {
		if translated := translateWrite(err); errors.Is(translated, apperr.ErrConflict) {
			return "", translated
		}
		return "", lib.Err(op, err)
	}

	return teamID, nil
}

func (r *TeamRepo) GetByID(ctx context.Context, teamID string) (*models.Team, error) {
	const op = "team_repo.GetByID"

	query := `
		SELECT id, leader_id, name, avatar_url, slug, created_at
		FROM teams
		WHERE id = $1;
	`

	var team models.Team
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &team, query, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	return &team, nil
}

func (r *TeamRepo) GetBySlug(ctx context.Context, slug string) (*models.Team, error) {
	const op = "team_repo.GetBySlug"

	query := `
		SELECT id, leader_id, name, avatar_url, slug, created_at
		FROM teams
		WHERE slug = $1;
	`

	var team models.Team
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &team, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	return &team, nil
}

func (r *TeamRepo) Update(ctx context.Context, teamID, name, avatarURL string) error {
	const op = "team_repo.Update"

	query := `UPDATE teams SET name = $1, avatar_url = $2 WHERE id = $3;`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, name, avatarURL, teamID)
	if err != nil {
		return lib.Err(op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return lib.Err(op, err)
	}

	if rowsAffected == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

// AddMember is an idempotent set-insert: inserting an already-present member
// is silently absorbed, so two concurrent redemptions of the same token can
// not produce duplicate memberships or fail one of the callers.
func (r *TeamRepo) AddMember(ctx context.Context, teamID, userID string) error {
	const op = "team_repo.AddMember"

	query := `
		INSERT INTO team_members (team_id, user_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (team_id, user_id) DO NOTHING;
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

// RemoveMember deletes a membership row; deleting an absent member is a no-op.
func (r *TeamRepo) RemoveMember(ctx context.Context, teamID, userID string) error {
	const op = "team_repo.RemoveMember"

	query := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2;`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

func (r *TeamRepo) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	const op = "team_repo.IsMember"

	query := `SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2);`

	var member bool
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &member, query, teamID, userID)
	if err != nil {
		return false, lib.Err(op, err)
	}

	return member, nil
}

func (r *TeamRepo) Members(ctx context.Context, teamID string) ([]*models.User, error) {
	const op = "team_repo.Members"

	query := `
		SELECT u.id, u.name, u.email, u.avatar_url, u.slug, u.is_admin, u.created_at
		FROM users u
		JOIN team_members m ON m.user_id = u.id
		WHERE m.team_id = $1
		ORDER BY m.created_at;
	`

	var users []*models.User
	err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &users, query, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*models.User{}, nil
		}
		return nil, lib.Err(op, err)
	}

	return users, nil
}

// Delete removes a team row; an already-deleted team is a no-op so cascade
// pipelines stay safe to re-run.
func (r *TeamRepo) Delete(ctx context.Context, teamID string) error {
	const op = "team_repo.Delete"

	query := `DELETE FROM teams WHERE id = $1;`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, teamID)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

func (r *TeamRepo) DeleteMembers(ctx context.Context, teamID string) error {
	const op = "team_repo.DeleteMembers"

	query := `DELETE FROM team_members WHERE team_id = $1;`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, teamID)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

// ListCreatedBefore feeds the admin remove-old-data sweep.
func (r *TeamRepo) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	const op = "team_repo.ListCreatedBefore"

	query := `SELECT id FROM teams WHERE created_at < $1;`

	var ids []string
	err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &ids, query, cutoff)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []string{}, nil
		}
		return nil, lib.Err(op, err)
	}

	return ids, nil
}

// SlugTaken is the allocator scope over the teams collection.
func (r *TeamRepo) SlugTaken(ctx context.Context, slug string) (bool, error) {
	const op = "team_repo.SlugTaken"

	query := `SELECT EXISTS (SELECT 1 FROM teams WHERE slug = $1);`

	var taken bool
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &taken, query, slug)
	if err != nil {
		return false, lib.Err(op, err)
	}

	return taken, nil
}
