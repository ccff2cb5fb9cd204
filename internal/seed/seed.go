package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type watchSeed struct {
	Name        string
	Tag         string
	Description string
	Price       int64
	Currency    string
	Badge       string
	IsHero      bool
	IsFeatured  bool
	SortOrder   int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	watches := []watchSeed{
		{
			Name:        "Meridian Chrono 42",
			Tag:         "chronograph",
			Description: "Stainless chronograph with a sapphire crystal and 100m water resistance",
			Price:       4_800_000,
			Currency:    "UZS",
			Badge:       "new",
			IsHero:      true,
			IsFeatured:  true,
			SortOrder:   10,
		},
		{
			Name:        "Altiplano Field 38",
			Tag:         "field",
			Description: "Matte field watch with luminous dial and canvas strap",
			Price:       2_350_000,
			Currency:    "UZS",
			IsFeatured:  true,
			SortOrder:   20,
		},
		{
			Name:        "Nocturne GMT",
			Tag:         "travel",
			Description: "Dual time zone watch with a 48-hour power reserve",
			Price:       6_150_000,
			Currency:    "UZS",
			Badge:       "limited",
			IsFeatured:  true,
			SortOrder:   30,
		},
		{
			Name:        "Cadence Classic 36",
			Tag:         "dress",
			Description: "Slim dress watch on a leather strap",
			Price:       1_900_000,
			Currency:    "UZS",
			SortOrder:   40,
		},
	}

	for _, w := range watches {
		if err := upsertWatch(ctx, pool, w); err != nil {
			return fmt.Errorf("upsert watch %s: %w", w.Name, err)
		}
	}

	return nil
}

func upsertWatch(ctx context.Context, pool *pgxpool.Pool, w watchSeed) error {
	const q = `
INSERT INTO watches (name, tag, description, price, currency, badge, is_active, is_hero, is_featured, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8, $9)
ON CONFLICT (name) DO UPDATE SET
    tag         = EXCLUDED.tag,
    description = EXCLUDED.description,
    price       = EXCLUDED.price,
    currency    = EXCLUDED.currency,
    badge       = EXCLUDED.badge,
    is_hero     = EXCLUDED.is_hero,
    is_featured = EXCLUDED.is_featured,
    sort_order  = EXCLUDED.sort_order
`
	_, err := pool.Exec(ctx, q, w.Name, w.Tag, w.Description, w.Price, w.Currency, w.Badge, w.IsHero, w.IsFeatured, w.SortOrder)
	return err
}
