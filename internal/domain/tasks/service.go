package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zoo-care-service/internal/platform/validate"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("task not found")
)

// ValidationError lleva el campo que falló para responder con mensaje
// a nivel de campo (en vez de un "invalid input" genérico).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldErr(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

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

// Spec describe una tarea a crear o a reemplazar por completo (el edit
// del cliente reenvía el formulario entero, así que Update re-valida todo).
type Spec struct {
	Type          Type
	AnimalID      string
	AssignedTo    string
	ScheduleDate  time.Time
	ScheduleTimes []string
	Status        Status

	IsRecurring       bool
	RecurrencePattern Recurrence
	EndDate           *time.Time
}

// validateSpec aplica las reglas en orden fijo:
// requeridos -> al menos un horario -> formato HH:MM -> fechas de recurrencia.
// Devuelve la primera violación; nada se persiste si algo falla.
func validateSpec(in *Spec) error {
	if !ValidType(in.Type) {
		if in.Type == "" {
			return fieldErr("type", "is required")
		}
		return fieldErr("type", "unknown task type")
	}
	if strings.TrimSpace(in.AnimalID) == "" {
		return fieldErr("animalId", "is required")
	}
	if strings.TrimSpace(in.AssignedTo) == "" {
		return fieldErr("assignedTo", "is required")
	}
	if in.ScheduleDate.IsZero() {
		return fieldErr("scheduleDate", "is required")
	}

	times := make([]string, 0, len(in.ScheduleTimes))
	for _, t := range in.ScheduleTimes {
		if strings.TrimSpace(t) != "" {
			times = append(times, strings.TrimSpace(t))
		}
	}
	if len(times) == 0 {
		return fieldErr("scheduleTimes", "at least one time is required")
	}
	for _, t := range times {
		if !validate.IsHHMM(t) {
			return fieldErr("scheduleTimes", fmt.Sprintf("%q is not a valid HH:MM time", t))
		}
	}
	in.ScheduleTimes = times

	if in.IsRecurring {
		if !ValidRecurrence(in.RecurrencePattern) {
			return fieldErr("recurrencePattern", "must be Daily, Weekly or Monthly")
		}
		if in.EndDate == nil {
			return fieldErr("endDate", "is required for recurring tasks")
		}
		if !in.EndDate.After(in.ScheduleDate) {
			return fieldErr("endDate", "must be after scheduleDate")
		}
	} else {
		in.RecurrencePattern = ""
		in.EndDate = nil
	}

	if in.Status == "" {
		in.Status = StatusPending
	}
	if !ValidStatus(in.Status) {
		return fieldErr("status", "must be Pending or Completed")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, in Spec) (Task, error) {
	if err := validateSpec(&in); err != nil {
		return Task{}, err
	}

	now := s.now()
	t := Task{
		ID:                uuid.NewString(),
		Type:              in.Type,
		AnimalID:          strings.TrimSpace(in.AnimalID),
		AssignedTo:        strings.TrimSpace(in.AssignedTo),
		ScheduleDate:      in.ScheduleDate,
		ScheduleTimes:     in.ScheduleTimes,
		Status:            in.Status,
		IsRecurring:       in.IsRecurring,
		RecurrencePattern: in.RecurrencePattern,
		EndDate:           in.EndDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id string, in Spec) (Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Task{}, ErrNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Task{}, ErrNotFound
	}

	if err := validateSpec(&in); err != nil {
		return Task{}, err
	}

	current.Type = in.Type
	current.AnimalID = strings.TrimSpace(in.AnimalID)
	current.AssignedTo = strings.TrimSpace(in.AssignedTo)
	current.ScheduleDate = in.ScheduleDate
	current.ScheduleTimes = in.ScheduleTimes
	current.Status = in.Status
	current.IsRecurring = in.IsRecurring
	current.RecurrencePattern = in.RecurrencePattern
	current.EndDate = in.EndDate
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Task{}, err
	}
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Task{}, ErrNotFound
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Task, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) CountByStatus(ctx context.Context, status Status) (int, error) {
	if !ValidStatus(status) {
		return 0, fieldErr("status", "must be Pending or Completed")
	}
	return s.repo.CountByStatus(ctx, status)
}

// Complete marca la tarea como Completed. completedAt es opcional
// (default: ahora); imageProof es la URI de la foto de evidencia.
// CompletionVerified queda en false hasta que alguien la verifique aparte.
func (s *Service) Complete(ctx context.Context, id string, completedAt *time.Time, imageProof string) (Task, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}

	now := s.now()
	when := now
	if completedAt != nil {
		when = *completedAt
	}

	t.Status = StatusCompleted
	t.CompletedAt = &when
	t.CompletionVerified = false
	if proof := strings.TrimSpace(imageProof); proof != "" {
		t.ImageProof = proof
	}
	t.UpdatedAt = now

	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// VerifyCompletion confirma la evidencia de una tarea ya completada.
func (s *Service) VerifyCompletion(ctx context.Context, id string) (Task, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}

	if t.Status != StatusCompleted {
		return Task{}, fieldErr("status", "task is not completed yet")
	}

	t.CompletionVerified = true
	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}
