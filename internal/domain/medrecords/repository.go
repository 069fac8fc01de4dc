package medrecords

import "context"

type Repository interface {
	Create(ctx context.Context, rec MedicalRecord) error
	Update(ctx context.Context, rec MedicalRecord) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (MedicalRecord, error)
	List(ctx context.Context, filter ListFilter) ([]MedicalRecord, error)
}

type ListFilter struct {
	RecordType     RecordType
	AnimalID       string
	VeterinarianID string
}
