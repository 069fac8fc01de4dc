package behaviors

// Eating define el vocabulario cerrado de alimentación observada.
type Eating string

const (
	EatingNormal     Eating = "Normal"
	EatingReduced    Eating = "Reduced"
	EatingNone       Eating = "None"
	EatingOvereating Eating = "Overeating"
)

// Movement define el vocabulario cerrado de movimiento observado.
type Movement string

const (
	MovementNormal      Movement = "Normal"
	MovementLimping     Movement = "Limping"
	MovementLethargic   Movement = "Lethargic"
	MovementHyperactive Movement = "Hyperactive"
)

// Mood define el vocabulario cerrado de ánimo observado.
type Mood string

const (
	MoodCalm       Mood = "Calm"
	MoodRestless   Mood = "Restless"
	MoodAggressive Mood = "Aggressive"
	MoodDepressed  Mood = "Depressed"
)

func ValidEating(e Eating) bool {
	switch e {
	case EatingNormal, EatingReduced, EatingNone, EatingOvereating:
		return true
	default:
		return false
	}
}

func ValidMovement(m Movement) bool {
	switch m {
	case MovementNormal, MovementLimping, MovementLethargic, MovementHyperactive:
		return true
	default:
		return false
	}
}

func ValidMood(m Mood) bool {
	switch m {
	case MoodCalm, MoodRestless, MoodAggressive, MoodDepressed:
		return true
	default:
		return false
	}
}

// NeedsAttention evalúa el predicado de comportamiento crítico.
// Un OR de tres igualdades; cualquier otra combinación no dispara nada.
func NeedsAttention(e Eating, mv Movement, md Mood) bool {
	return e == EatingNone || mv == MovementLimping || md == MoodAggressive
}
