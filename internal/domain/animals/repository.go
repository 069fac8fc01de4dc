package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context) ([]Animal, error)
	ListByVet(ctx context.Context, vetID string) ([]Animal, error)
	Count(ctx context.Context) (int, error)
}
