package animals

import "time"

// Status define el estado de salud del animal.
// @Enum healthy, needs_attention, under_treatment, recovering
type Status string

const (
	StatusHealthy        Status = "healthy"
	StatusNeedsAttention Status = "needs_attention"
	StatusUnderTreatment Status = "under_treatment"
	StatusRecovering     Status = "recovering"
)

// ValidStatus indica si el valor pertenece al vocabulario cerrado.
func ValidStatus(s Status) bool {
	switch s {
	case StatusHealthy, StatusNeedsAttention, StatusUnderTreatment, StatusRecovering:
		return true
	default:
		return false
	}
}

// Animal representa un animal bajo cuidado del zoológico.
//
// La asignación de veterinario no es una entidad aparte: vive como
// campos del animal (VetID + AssignmentReason + AssignedAt).
type Animal struct {
	ID string

	Name    string
	Species string
	Breed   string
	Age     int

	Status Status

	// PhotoURL referencia una imagen almacenada externamente.
	PhotoURL string

	// Asignación de veterinario (vacío = sin asignar).
	VetID            string
	AssignmentReason string
	AssignedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assignment es la vista de la asignación actual de un animal.
type Assignment struct {
	AnimalID   string
	VetID      string
	Reason     string
	AssignedAt *time.Time
}
