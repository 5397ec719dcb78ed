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

type SessionRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewSessionRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *SessionRepo {
	return &SessionRepo{
		db:     db,
		getter: c,
	}
}

func (r *SessionRepo) Create(ctx context.Context, session *models.Session) error {
	const op = "session_repo.Create"

	query := `
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES ($1, $2, now(), $3);
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.ExpiresAt,
	)
	if err != nil {
		if translated := translateWrite(err); errors.Is(translated, apperr.ErrConflict) {
			return translated
		}
		return lib.Err(op, err)
	}

	return nil
}

func (r *SessionRepo) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	const op = "session_repo.Get"

	query := `
		SELECT id, user_id, created_at, expires_at
		FROM sessions
		WHERE id = $1;
	`

	var session models.Session
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &session, query, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	return &session, nil
}

// Delete is the logout path; deleting an unknown session is a no-op.
func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	const op = "session_repo.Delete"

	query := `DELETE FROM sessions WHERE id = $1;`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, sessionID)
	if err != nil {
		return lib.Err(op, err)
	}

	return nil
}

func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "session_repo.DeleteExpired"

	query := `DELETE FROM sessions WHERE expires_at <= $1;`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, now)
	if err != nil {
		return 0, lib.Err(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, lib.Err(op, err)
	}

	return n, nil
}
