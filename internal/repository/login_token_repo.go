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

type LoginTokenRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewLoginTokenRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *LoginTokenRepo {
	return &LoginTokenRepo{
		db:     db,
		getter: c,
	}
}

func (r *LoginTokenRepo) Create(ctx context.Context, token *models.LoginToken) error {
	const op = "login_token_repo.Create"

	query := `
		INSERT INTO login_tokens (token, email, expires_at, created_at)
		VALUES ($1, $2, $3, now());
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(
		ctx,
		query,
		token.Token,
		token.Email,
		token.ExpiresAt,
	)
	if err != nil {
		if translated := translateWrite(err); errors.Is(translated, apperr.ErrConflict) {
			return translated
		}
		return lib.Err(op, err)
	}

	return nil
}

// Consume marks a token used and returns its email in one statement, so two
// concurrent redemptions cannot both win. Expired, consumed, and unknown
// tokens are indistinguishable to the caller.
func (r *LoginTokenRepo) Consume(ctx context.Context, token string, now time.Time) (string, error) {
	const op = "login_token_repo.Consume"

	query := `
		UPDATE login_tokens
		SET consumed_at = $2
		WHERE token = $1 AND consumed_at IS NULL AND expires_at > $2
		RETURNING email;
	`

	var email string
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &email, query, token, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.ErrNotFound
		}
		return "", lib.Err(op, err)
	}

	return email, nil
}

func (r *LoginTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "login_token_repo.DeleteExpired"

	query := `DELETE FROM login_tokens WHERE expires_at <= $1 OR consumed_at IS NOT NULL;`

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
