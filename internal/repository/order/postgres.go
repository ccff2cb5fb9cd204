package order

import (
	"context"
	"errors"
	"time"

	"timepiece-store/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	currency := in.Currency
	if currency == "" {
		currency = "UZS"
	}

	var ord domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, location, phone, latitude, longitude, status, currency)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, location, phone, latitude, longitude, status, total_amount, currency, created_at
`, in.UserID, in.Location, in.Phone, in.Latitude, in.Longitude, domain.StatusWaiting, currency).Scan(
		&ord.ID,
		&ord.UserID,
		&ord.Location,
		&ord.Phone,
		&ord.Latitude,
		&ord.Longitude,
		&ord.Status,
		&ord.TotalAmount,
		&ord.Currency,
		&ord.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, line := range in.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, watch_id, quantity, price)
VALUES ($1, $2, $3, $4)
`, ord.ID, line.WatchID, line.Quantity, line.Price); err != nil {
			return nil, err
		}
	}

	if err := tx.QueryRow(ctx, `
UPDATE orders
SET total_amount = (
    SELECT COALESCE(SUM(quantity * price), 0)
    FROM order_items
    WHERE order_id = $1
)
WHERE id = $1
RETURNING total_amount
`, ord.ID).Scan(&ord.TotalAmount); err != nil {
		return nil, err
	}

	items, err := fetchItems(ctx, tx, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	ord.Items = items[ord.ID]

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT id, user_id, location, phone, latitude, longitude, status, total_amount, currency, created_at
FROM orders
WHERE id = $1
`
	ord, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	items, err := fetchItems(ctx, r.pool, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	ord.Items = items[ord.ID]
	return ord, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE id = $2
`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListSince(ctx context.Context, since time.Time, limit int) ([]domain.Order, error) {
	const q = `
SELECT id, user_id, location, phone, latitude, longitude, status, total_amount, currency, created_at
FROM orders
WHERE created_at >= $1
ORDER BY created_at DESC
LIMIT $2
`
	return r.listWithItems(ctx, q, since, limit)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	const q = `
SELECT id, user_id, location, phone, latitude, longitude, status, total_amount, currency, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	return r.listWithItems(ctx, q, userID)
}

func (r *postgresRepo) listWithItems(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *ord)
		ids = append(ids, ord.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := fetchItems(ctx, r.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

func fetchItems(ctx context.Context, q querier, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	out := make(map[int64][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	const itemsQuery = `
SELECT oi.id, oi.order_id, oi.watch_id, w.name, w.image, oi.quantity, oi.price
FROM order_items oi
JOIN watches w ON w.id = oi.watch_id
WHERE oi.order_id = ANY($1)
ORDER BY oi.id
`
	rows, err := q.Query(ctx, itemsQuery, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.WatchID,
			&it.WatchName,
			&it.WatchImage,
			&it.Quantity,
			&it.Price,
		); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var ord domain.Order
	if err := row.Scan(
		&ord.ID,
		&ord.UserID,
		&ord.Location,
		&ord.Phone,
		&ord.Latitude,
		&ord.Longitude,
		&ord.Status,
		&ord.TotalAmount,
		&ord.Currency,
		&ord.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ord, nil
}
