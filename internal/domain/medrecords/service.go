package medrecords

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medical record not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RecordInput struct {
	AnimalID       string
	VeterinarianID string
	RecordType     RecordType

	Diagnosis    string
	Treatment    string
	Vitals       Vitals
	Notes        string
	FollowUpDate *time.Time
}

func (in RecordInput) validate() error {
	if strings.TrimSpace(in.AnimalID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.VeterinarianID) == "" {
		return ErrInvalidInput
	}
	if !ValidRecordType(in.RecordType) {
		return ErrInvalidInput
	}
	if in.Vitals.WeightKg != nil && *in.Vitals.WeightKg <= 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in RecordInput) (MedicalRecord, error) {
	if err := in.validate(); err != nil {
		return MedicalRecord{}, err
	}

	now := s.now()
	rec := MedicalRecord{
		ID:             uuid.NewString(),
		AnimalID:       strings.TrimSpace(in.AnimalID),
		VeterinarianID: strings.TrimSpace(in.VeterinarianID),
		RecordType:     in.RecordType,
		Diagnosis:      strings.TrimSpace(in.Diagnosis),
		Treatment:      strings.TrimSpace(in.Treatment),
		Vitals:         in.Vitals,
		Notes:          strings.TrimSpace(in.Notes),
		FollowUpDate:   in.FollowUpDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return MedicalRecord{}, err
	}
	return rec, nil
}

func (s *Service) Update(ctx context.Context, id string, in RecordInput) (MedicalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MedicalRecord{}, ErrNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return MedicalRecord{}, ErrNotFound
	}

	if err := in.validate(); err != nil {
		return MedicalRecord{}, err
	}

	current.AnimalID = strings.TrimSpace(in.AnimalID)
	current.VeterinarianID = strings.TrimSpace(in.VeterinarianID)
	current.RecordType = in.RecordType
	current.Diagnosis = strings.TrimSpace(in.Diagnosis)
	current.Treatment = strings.TrimSpace(in.Treatment)
	current.Vitals = in.Vitals
	current.Notes = strings.TrimSpace(in.Notes)
	current.FollowUpDate = in.FollowUpDate
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return MedicalRecord{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (MedicalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MedicalRecord{}, ErrNotFound
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return MedicalRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]MedicalRecord, error) {
	return s.repo.List(ctx, filter)
}
