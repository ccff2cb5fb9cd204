package watch

import (
	"context"
	"errors"
	"log"

	"timepiece-store/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const watchColumns = `id, name, tag, description, price, currency, badge, image, is_active, is_hero, is_featured, sort_order, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Hero(ctx context.Context) (*domain.Watch, error) {
	const q = `
SELECT ` + watchColumns + `
FROM watches
WHERE is_active AND is_hero
ORDER BY sort_order, id
LIMIT 1
`
	row := r.pool.QueryRow(ctx, q)
	w, err := scanWatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *postgresRepo) Featured(ctx context.Context) ([]domain.Watch, error) {
	const q = `
SELECT ` + watchColumns + `
FROM watches
WHERE is_active AND is_featured
ORDER BY sort_order, id
LIMIT 3
`
	return r.list(ctx, q)
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Watch, error) {
	const q = `
SELECT ` + watchColumns + `
FROM watches
WHERE is_active
ORDER BY sort_order, id
`
	return r.list(ctx, q)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Watch, error) {
	const q = `
SELECT ` + watchColumns + `
FROM watches
WHERE id = $1
`
	row := r.pool.QueryRow(ctx, q, id)
	w, err := scanWatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Watch, error) {
	if len(ids) == 0 {
		return map[int64]domain.Watch{}, nil
	}
	const q = `
SELECT ` + watchColumns + `
FROM watches
WHERE id = ANY($1)
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]domain.Watch, len(ids))
	for rows.Next() {
		w, err := scanWatch(rows)
		if err != nil {
			return nil, err
		}
		out[w.ID] = *w
	}
	return out, rows.Err()
}

func (r *postgresRepo) list(ctx context.Context, q string) ([]domain.Watch, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Watch
	for rows.Next() {
		w, err := scanWatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func scanWatch(row pgx.Row) (*domain.Watch, error) {
	var w domain.Watch
	if err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Tag,
		&w.Description,
		&w.Price,
		&w.Currency,
		&w.Badge,
		&w.Image,
		&w.IsActive,
		&w.IsHero,
		&w.IsFeatured,
		&w.SortOrder,
		&w.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &w, nil
}
