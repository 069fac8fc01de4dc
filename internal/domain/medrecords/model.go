package medrecords

import "time"

// RecordType define los tipos de registro médico.
// @Enum checkup, vaccination, treatment
type RecordType string

const (
	RecordTypeCheckup     RecordType = "checkup"
	RecordTypeVaccination RecordType = "vaccination"
	RecordTypeTreatment   RecordType = "treatment"
)

func ValidRecordType(t RecordType) bool {
	switch t {
	case RecordTypeCheckup, RecordTypeVaccination, RecordTypeTreatment:
		return true
	default:
		return false
	}
}

// Vitals son las mediciones tomadas durante el registro.
// Punteros porque no toda consulta las registra.
type Vitals struct {
	WeightKg     *float64
	TemperatureC *float64
}

// MedicalRecord es una entrada de historia clínica de un animal,
// escrita por el veterinario asignado.
type MedicalRecord struct {
	ID string

	AnimalID       string
	VeterinarianID string

	RecordType RecordType

	Diagnosis string
	Treatment string
	Vitals    Vitals
	Notes     string

	FollowUpDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
