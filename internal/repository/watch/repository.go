package watch

import (
	"context"

	"timepiece-store/internal/domain"
)

// Repository exposes read access to the watch catalog. Records are created
// and edited out-of-band; the storefront only ever reads them.
type Repository interface {
	Hero(ctx context.Context) (*domain.Watch, error)
	Featured(ctx context.Context) ([]domain.Watch, error)
	ListActive(ctx context.Context) ([]domain.Watch, error)
	GetByID(ctx context.Context, id int64) (*domain.Watch, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Watch, error)
}
