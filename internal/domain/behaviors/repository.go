package behaviors

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, b BehaviorLog) error
	ListByAnimal(ctx context.Context, animalID string) ([]BehaviorLog, error)
	ListAll(ctx context.Context) ([]BehaviorLog, error)
	List(ctx context.Context, filter ListFilter) ([]BehaviorLog, int, error)
}

// ListFilter pagina y filtra logs; List devuelve (página, total sin paginar).
type ListFilter struct {
	AnimalID string
	Eating   Eating
	Movement Movement
	Mood     Mood
	From     *time.Time
	To       *time.Time

	Page  int
	Limit int
}
