package behaviors

import (
	"context"
	"errors"
	"strings"
	"time"

	"zoo-care-service/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// AnimalFlagger es la vista mínima del módulo animals que necesita este
// módulo (evita el ciclo animals <-> behaviors).
type AnimalFlagger interface {
	FlagNeedsAttention(ctx context.Context, animalID string) error
}

type Service struct {
	repo    Repository
	flagger AnimalFlagger
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, flagger AnimalFlagger, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		flagger: flagger,
		log:     log,
		now:     time.Now,
	}
}

type RecordInput struct {
	AnimalID   string
	Eating     Eating
	Movement   Movement
	Mood       Mood
	Notes      string
	RecordedBy string
}

// Record persiste la observación y, si el comportamiento es crítico,
// marca el animal como needs_attention.
//
// El flag es best-effort a propósito: si falla, el log de comportamiento
// ya quedó guardado y la llamada igual tiene éxito. La observación vale
// más que la bandera (semántica del sistema original).
func (s *Service) Record(ctx context.Context, in RecordInput) (BehaviorLog, error) {
	if strings.TrimSpace(in.AnimalID) == "" {
		return BehaviorLog{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.RecordedBy) == "" {
		return BehaviorLog{}, ErrInvalidInput
	}
	if !ValidEating(in.Eating) || !ValidMovement(in.Movement) || !ValidMood(in.Mood) {
		return BehaviorLog{}, ErrInvalidInput
	}

	b := BehaviorLog{
		ID:         uuid.NewString(),
		AnimalID:   strings.TrimSpace(in.AnimalID),
		Eating:     in.Eating,
		Movement:   in.Movement,
		Mood:       in.Mood,
		Notes:      strings.TrimSpace(in.Notes),
		RecordedBy: strings.TrimSpace(in.RecordedBy),
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return BehaviorLog{}, err
	}

	if NeedsAttention(b.Eating, b.Movement, b.Mood) {
		if err := s.flagger.FlagNeedsAttention(ctx, b.AnimalID); err != nil {
			// No se propaga: el log ya está persistido.
			s.log.Warn("needs-attention flag failed", map[string]any{
				"animal_id": b.AnimalID,
				"error":     err.Error(),
			})
		} else {
			s.log.Info("animal flagged for attention", map[string]any{
				"animal_id": b.AnimalID,
			})
		}
	}

	return b, nil
}

// ListByAnimal devuelve los logs de un animal, más recientes primero.
func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]BehaviorLog, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

// ListAll devuelve todos los logs sin paginar, más recientes primero.
func (s *Service) ListAll(ctx context.Context) ([]BehaviorLog, error) {
	return s.repo.ListAll(ctx)
}

// ListFiltered devuelve una página de logs más el total sin paginar.
func (s *Service) ListFiltered(ctx context.Context, filter ListFilter) ([]BehaviorLog, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	return s.repo.List(ctx, filter)
}
