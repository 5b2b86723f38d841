package userinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/sift/pkg/errx"
	"github.com/Abraxas-365/sift/pkg/iam/user"
	"github.com/Abraxas-365/sift/pkg/kernel"
)

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, status, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	u := &user.User{}
	err := r.db.GetContext(ctx, u,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound().
				WithDetail("user_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	u := &user.User{}
	err := r.db.GetContext(ctx, u,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound().
				WithDetail("email", email.String())
		}
		return nil, errx.Wrap(err, "failed to get user by email", errx.TypeInternal)
	}
	return u, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, u *user.User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = $1, name = $2, password_hash = $3, status = $4, updated_at = NOW()
		WHERE id = $5`,
		u.Email, u.Name, u.PasswordHash, u.Status, u.ID,
	)
	if err != nil {
		return errx.Wrap(err, "failed to update user", errx.TypeInternal)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return user.ErrUserNotFound().
			WithDetail("user_id", u.ID.String())
	}
	return nil
}
