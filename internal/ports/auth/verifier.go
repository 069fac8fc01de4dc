package auth

import "context"

// AuthVerifier valida el token de sesión de una request y extrae sus claims.
// En producción lo implementa el adaptador jwtauth; si el router no recibe
// un verifier, el middleware cae en modo dev con headers de debug.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
