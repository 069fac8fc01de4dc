package tasks

import "time"

// Type define los tipos de tarea de cuidado.
// @Enum Feeding, Cleaning, Health Check, Medication, Observation, Weight Monitoring
type Type string

const (
	TypeFeeding          Type = "Feeding"
	TypeCleaning         Type = "Cleaning"
	TypeHealthCheck      Type = "Health Check"
	TypeMedication       Type = "Medication"
	TypeObservation      Type = "Observation"
	TypeWeightMonitoring Type = "Weight Monitoring"
)

func ValidType(t Type) bool {
	switch t {
	case TypeFeeding, TypeCleaning, TypeHealthCheck, TypeMedication, TypeObservation, TypeWeightMonitoring:
		return true
	default:
		return false
	}
}

// Status de la tarea. No hay expiración automática: una tarea Pending
// queda Pending hasta que alguien la complete.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusCompleted
}

// Recurrence es metadata descriptiva: nadie expande ocurrencias ni
// dispara jobs. La expansión sería una feature aparte.
type Recurrence string

const (
	RecurrenceDaily   Recurrence = "Daily"
	RecurrenceWeekly  Recurrence = "Weekly"
	RecurrenceMonthly Recurrence = "Monthly"
)

func ValidRecurrence(r Recurrence) bool {
	return r == RecurrenceDaily || r == RecurrenceWeekly || r == RecurrenceMonthly
}

// Task es una actividad de cuidado agendada para un animal.
type Task struct {
	ID string

	Type       Type
	AnimalID   string
	AssignedTo string

	ScheduleDate  time.Time // solo fecha
	ScheduleTimes []string  // "HH:MM", al menos una

	Status Status

	IsRecurring       bool
	RecurrencePattern Recurrence // solo si IsRecurring
	EndDate           *time.Time // solo si IsRecurring; > ScheduleDate

	CompletedAt        *time.Time
	CompletionVerified bool
	ImageProof         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
