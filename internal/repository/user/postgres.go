package user

import (
	"context"
	"errors"

	"timepiece-store/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUsernameTaken is returned when the unique username constraint fires.
var ErrUsernameTaken = errors.New("username already taken")

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	const q = `
INSERT INTO users (username, phone, password_hash)
VALUES ($1, $2, $3)
RETURNING id, username, phone, location, password_hash, created_at
`
	u, err := scanUser(r.pool.QueryRow(ctx, q, in.Username, in.Phone, in.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
SELECT id, username, phone, location, password_hash, created_at
FROM users
WHERE username = $1
`
	return r.get(ctx, q, username)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `
SELECT id, username, phone, location, password_hash, created_at
FROM users
WHERE id = $1
`
	return r.get(ctx, q, id)
}

func (r *postgresRepo) UpdateContact(ctx context.Context, id int64, location, phone string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE users
SET location = $1, phone = $2
WHERE id = $3
`, location, phone, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) get(ctx context.Context, q string, arg interface{}) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Phone,
		&u.Location,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
