package users

import (
	"time"

	"zoo-care-service/internal/ports/auth"
)

// User es una cuenta del sistema: admin, veterinario o cuidador (user).
// Los campos de perfil veterinario solo aplican cuando Role == vet.
type User struct {
	ID    string
	Name  string
	Email string

	// PasswordHash es un hash bcrypt; nunca sale por el API.
	PasswordHash string

	Role auth.Role

	// Perfil veterinario
	Specialization string
	Location       string
	Experience     int // años
	Phone          string

	CreatedAt time.Time
	UpdatedAt time.Time
}
