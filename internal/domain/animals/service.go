package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("animal not found")
	ErrVetNotFound     = errors.New("veterinarian not found or invalid user type")
	ErrAlreadyAssigned = errors.New("veterinarian already assigned to this animal")
)

// VetDirectory es la vista mínima del módulo users que necesita este módulo.
// Se usa para validar asignaciones sin crear un ciclo de imports (users <-> animals).
type VetDirectory interface {
	IsVet(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	repo Repository
	vets VetDirectory
	now  func() time.Time
}

func NewService(repo Repository, vets VetDirectory) *Service {
	return &Service{
		repo: repo,
		vets: vets,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name     string
	Species  string
	Breed    string
	Age      int
	Status   string
	PhotoURL string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Animal{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Animal{}, ErrInvalidInput
	}

	status := Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = StatusHealthy
	}
	if !ValidStatus(status) {
		return Animal{}, ErrInvalidInput
	}

	now := s.now()
	a := Animal{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Species:   strings.TrimSpace(in.Species),
		Breed:     strings.TrimSpace(in.Breed),
		Age:       in.Age,
		Status:    status,
		PhotoURL:  strings.TrimSpace(in.PhotoURL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// UpdateInput usa punteros para updates parciales: nil = no tocar.
type UpdateInput struct {
	Name     *string
	Species  *string
	Breed    *string
	Age      *int
	Status   *string
	PhotoURL *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Animal{}, ErrInvalidInput
		}
		current.Name = name
	}
	if in.Species != nil {
		sp := strings.TrimSpace(*in.Species)
		if sp == "" {
			return Animal{}, ErrInvalidInput
		}
		current.Species = sp
	}
	if in.Breed != nil {
		current.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Animal{}, ErrInvalidInput
		}
		current.Age = *in.Age
	}
	if in.Status != nil {
		// Edición manual de estado: única vía para volver de needs_attention
		// a healthy (no existe auto-clear).
		status := Status(strings.TrimSpace(*in.Status))
		if !ValidStatus(status) {
			return Animal{}, ErrInvalidInput
		}
		current.Status = status
	}
	if in.PhotoURL != nil {
		current.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}

	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Animal{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// FlagNeedsAttention marca el animal como needs_attention.
// Transición automática de una sola vía: nada la revierte automáticamente.
func (s *Service) FlagNeedsAttention(ctx context.Context, animalID string) error {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, animalID)
	if err != nil {
		return ErrNotFound
	}

	if a.Status == StatusNeedsAttention {
		return nil
	}

	a.Status = StatusNeedsAttention
	a.UpdatedAt = s.now()
	return s.repo.Update(ctx, a)
}

// AssignVet asigna un veterinario al animal.
// Precondiciones: el animal existe, el user existe con rol vet, y no es
// el mismo vet ya asignado (re-asignar el mismo vet se rechaza).
func (s *Service) AssignVet(ctx context.Context, animalID, vetID, reason string) (Assignment, error) {
	animalID = strings.TrimSpace(animalID)
	vetID = strings.TrimSpace(vetID)

	if animalID == "" || vetID == "" {
		return Assignment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, animalID)
	if err != nil {
		return Assignment{}, ErrNotFound
	}

	isVet, err := s.vets.IsVet(ctx, vetID)
	if err != nil {
		// Fallo del directorio, no un vet inexistente: se propaga tal cual.
		return Assignment{}, err
	}
	if !isVet {
		return Assignment{}, ErrVetNotFound
	}

	if a.VetID == vetID {
		return Assignment{}, ErrAlreadyAssigned
	}

	now := s.now()
	a.VetID = vetID
	a.AssignmentReason = strings.TrimSpace(reason)
	a.AssignedAt = &now
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return Assignment{}, err
	}

	return Assignment{
		AnimalID:   a.ID,
		VetID:      a.VetID,
		Reason:     a.AssignmentReason,
		AssignedAt: a.AssignedAt,
	}, nil
}

// AssignedVet devuelve la asignación vigente del animal (o ErrNotFound si no hay vet).
func (s *Service) AssignedVet(ctx context.Context, animalID string) (Assignment, error) {
	a, err := s.GetByID(ctx, animalID)
	if err != nil {
		return Assignment{}, err
	}
	if strings.TrimSpace(a.VetID) == "" {
		return Assignment{}, ErrNotFound
	}
	return Assignment{
		AnimalID:   a.ID,
		VetID:      a.VetID,
		Reason:     a.AssignmentReason,
		AssignedAt: a.AssignedAt,
	}, nil
}

// AssignedAnimals lista los animales asignados a un veterinario.
func (s *Service) AssignedAnimals(ctx context.Context, vetID string) ([]Animal, error) {
	vetID = strings.TrimSpace(vetID)
	if vetID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByVet(ctx, vetID)
}
