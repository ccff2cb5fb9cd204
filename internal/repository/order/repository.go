package order

import (
	"context"
	"time"

	"timepiece-store/internal/domain"
)

// CreateInput carries everything needed to persist an order with its items.
// Item prices are stored verbatim; the total is aggregated from them inside
// the creating transaction.
type CreateInput struct {
	UserID    *int64
	Location  string
	Phone     string
	Latitude  *float64
	Longitude *float64
	Currency  string
	Items     []domain.CartLine
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// UpdateStatus persists only the status column.
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	// ListSince returns orders created at or after the given time, newest
	// first, items included, capped at limit.
	ListSince(ctx context.Context, since time.Time, limit int) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}
