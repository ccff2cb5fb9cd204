package user

import (
	"context"

	"timepiece-store/internal/domain"
)

type CreateInput struct {
	Username     string
	Phone        string
	PasswordHash string
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateContact stores the delivery details last submitted at checkout so
	// the cart form can be prefilled next time.
	UpdateContact(ctx context.Context, id int64, location, phone string) error
}
