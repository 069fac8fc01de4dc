package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"zoo-care-service/internal/domain/tasks"
)

type taskRepo struct {
	mu   sync.RWMutex
	byID map[string]tasks.Task
}

func NewTaskRepo() tasks.Repository {
	return &taskRepo{
		byID: make(map[string]tasks.Task),
	}
}

func (r *taskRepo) Create(ctx context.Context, t tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		return errors.New("task id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("task already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *taskRepo) Update(ctx context.Context, t tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (tasks.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return tasks.Task{}, ErrNotFound
	}
	return t, nil
}

func (r *taskRepo) List(ctx context.Context, filter tasks.ListFilter) ([]tasks.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tasks.Task, 0)
	for _, t := range r.byID {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.AnimalID != "" && t.AnimalID != filter.AnimalID {
			continue
		}
		if filter.AssignedTo != "" && t.AssignedTo != filter.AssignedTo {
			continue
		}
		out = append(out, t)
	}

	// Orden por fecha agendada asc; empata por created_at
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduleDate.Equal(out[j].ScheduleDate) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ScheduleDate.Before(out[j].ScheduleDate)
	})
	return out, nil
}

func (r *taskRepo) CountByStatus(ctx context.Context, status tasks.Status) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, t := range r.byID {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}
