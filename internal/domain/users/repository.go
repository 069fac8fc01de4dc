package users

import (
	"context"

	"zoo-care-service/internal/ports/auth"
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListByRole(ctx context.Context, role auth.Role) ([]User, error)
	CountByRole(ctx context.Context, role auth.Role) (int, error)
}
