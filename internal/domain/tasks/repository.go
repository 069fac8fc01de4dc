package tasks

import "context"

type Repository interface {
	Create(ctx context.Context, t Task) error
	Update(ctx context.Context, t Task) error
	GetByID(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}

type ListFilter struct {
	Status     Status
	AnimalID   string
	AssignedTo string
}
