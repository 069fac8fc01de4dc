package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"zoo-care-service/internal/domain/medrecords"
)

type medRecordRepo struct {
	mu   sync.RWMutex
	byID map[string]medrecords.MedicalRecord
}

func NewMedRecordRepo() medrecords.Repository {
	return &medRecordRepo{
		byID: make(map[string]medrecords.MedicalRecord),
	}
}

func (r *medRecordRepo) Create(ctx context.Context, rec medrecords.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("medical record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("medical record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *medRecordRepo) Update(ctx context.Context, rec medrecords.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *medRecordRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *medRecordRepo) GetByID(ctx context.Context, id string) (medrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return medrecords.MedicalRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *medRecordRepo) List(ctx context.Context, filter medrecords.ListFilter) ([]medrecords.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medrecords.MedicalRecord, 0)
	for _, rec := range r.byID {
		if filter.RecordType != "" && rec.RecordType != filter.RecordType {
			continue
		}
		if filter.AnimalID != "" && rec.AnimalID != filter.AnimalID {
			continue
		}
		if filter.VeterinarianID != "" && rec.VeterinarianID != filter.VeterinarianID {
			continue
		}
		out = append(out, rec)
	}

	// Más recientes primero (la pantalla de checkups los muestra así)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
