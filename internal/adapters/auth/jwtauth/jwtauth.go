package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zoo-care-service/internal/ports/auth"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrNotConfigured = errors.New("jwt auth not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrTokenInvalid  = errors.New("token is invalid")
)

// tokenClaims es el payload que firmamos/verificamos.
type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Config para firmar/verificar tokens HS256.
// Secret normalmente viene de env (JWT_SECRET).
type Config struct {
	Secret string
	TTL    time.Duration
}

// Issuer firma tokens para el login de usuarios.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(cfg Config) *Issuer {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		secret: []byte(strings.TrimSpace(cfg.Secret)),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *Issuer) IsConfigured() bool {
	return i != nil && len(i.secret) > 0
}

// Issue emite un token firmado para el usuario.
func (i *Issuer) Issue(userID, email string, role auth.Role) (string, error) {
	if !i.IsConfigured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id required")
	}

	now := i.now()
	claims := tokenClaims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verifier implementa auth.AuthVerifier verificando tokens propios (HS256).
// Se instancia desde main/router; si no hay secret, el middleware queda en modo dev.
type Verifier struct {
	secret []byte
}

func NewVerifier(cfg Config) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(cfg.Secret))}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return auth.Claims{}, errors.New("token missing subject")
	}

	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(claims.Email),
		Role:   auth.ParseRole(claims.Role),
	}, nil
}
