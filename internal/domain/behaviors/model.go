package behaviors

import "time"

// BehaviorLog es una observación puntual sobre un animal.
// Append-only: una vez creada no se edita ni se borra.
type BehaviorLog struct {
	ID       string
	AnimalID string

	Eating   Eating
	Movement Movement
	Mood     Mood

	Notes      string
	RecordedBy string

	CreatedAt time.Time
}
