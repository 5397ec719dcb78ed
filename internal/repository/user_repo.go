package repo

import (
	"context"
	"database/sql"
	"errors"

	"teamgate/internal/apperr"
	"teamgate/internal/lib"
	"teamgate/internal/models"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"
)

type UserRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewUserRepo(db *sqlx.DB, c *trmsqlx.CtxGetter) *UserRepo {
	return &UserRepo{
		db:     db,
		getter: c,
	}
}

// Create inserts a new user. A concurrent first login for the same email
// surfaces as apperr.ErrConflict; callers re-fetch by email.
func (r *UserRepo) Create(ctx context.Context, user *models.User) (string, error) {
	const op = "user_repo.Create"

	query := `
		INSERT INTO users (id, name, email, avatar_url, slug, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id;
	`

	var userID string
	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.AvatarURL,
		user.Slug,
		user.IsAdmin,
	).Scan(&userID)
	if err != nil {
		if translated := translateWrite(err); errors.Is(translated, apperr.ErrConflict) {
			return "", translated
		}
		return "", lib.Err(op, err)
	}

	return userID, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	const op = "user_repo.GetByID"

	query := `
		SELECT id, name, email, avatar_url, slug, is_admin, created_at
		FROM users
		WHERE id = $1;
	`

	var user models.User
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "user_repo.GetByEmail"

	query := `
		SELECT id, name, email, avatar_url, slug, is_admin, created_at
		FROM users
		WHERE email = $1;
	`

	var user models.User
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, lib.Err(op, err)
	}

	return &user, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID, name, avatarURL string) error {
	const op = "user_repo.UpdateProfile"

	query := `UPDATE users SET name = $1, avatar_url = $2 WHERE id = $3;`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, name, avatarURL, userID)
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

// SlugTaken is the allocator scope over the users collection.
func (r *UserRepo) SlugTaken(ctx context.Context, slug string) (bool, error) {
	const op = "user_repo.SlugTaken"

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE slug = $1);`

	var taken bool
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &taken, query, slug)
	if err != nil {
		return false, lib.Err(op, err)
	}

	return taken, nil
}
