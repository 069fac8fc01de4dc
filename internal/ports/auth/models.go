package auth

// Role es el tipo de usuario dentro del sistema del zoológico.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleVet   Role = "vet"
	RoleUser  Role = "user"
)

// ParseRole normaliza un rol; devuelve RoleUser si no reconoce el valor.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleVet, RoleUser:
		return Role(s)
	default:
		return RoleUser
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
