package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"zoo-care-service/internal/domain/behaviors"
)

type behaviorRepo struct {
	mu   sync.RWMutex
	byID map[string]behaviors.BehaviorLog
}

func NewBehaviorRepo() behaviors.Repository {
	return &behaviorRepo{
		byID: make(map[string]behaviors.BehaviorLog),
	}
}

func (r *behaviorRepo) Create(ctx context.Context, b behaviors.BehaviorLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		return errors.New("behavior id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("behavior already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *behaviorRepo) ListByAnimal(ctx context.Context, animalID string) ([]behaviors.BehaviorLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]behaviors.BehaviorLog, 0)
	for _, b := range r.byID {
		if b.AnimalID == animalID {
			out = append(out, b)
		}
	}

	sortNewestFirst(out)
	return out, nil
}

func (r *behaviorRepo) ListAll(ctx context.Context) ([]behaviors.BehaviorLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]behaviors.BehaviorLog, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}

	sortNewestFirst(out)
	return out, nil
}

func (r *behaviorRepo) List(ctx context.Context, filter behaviors.ListFilter) ([]behaviors.BehaviorLog, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]behaviors.BehaviorLog, 0)
	for _, b := range r.byID {
		if filter.AnimalID != "" && b.AnimalID != filter.AnimalID {
			continue
		}
		if filter.Eating != "" && b.Eating != filter.Eating {
			continue
		}
		if filter.Movement != "" && b.Movement != filter.Movement {
			continue
		}
		if filter.Mood != "" && b.Mood != filter.Mood {
			continue
		}
		if filter.From != nil && b.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && b.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, b)
	}

	sortNewestFirst(matched)
	total := len(matched)

	// Paginación sobre la lista ya ordenada
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	start := (page - 1) * limit
	if start >= total {
		return []behaviors.BehaviorLog{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func sortNewestFirst(items []behaviors.BehaviorLog) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
