package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"zoo-care-service/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)

// TokenIssuer firma el token de sesión en el login.
// nil => modo dev: login sin token (los tests usan X-Debug-User-ID).
type TokenIssuer interface {
	Issue(userID, email string, role auth.Role) (string, error)
}

type Service struct {
	repo   Repository
	issuer TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, issuer TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string

	Specialization string
	Location       string
	Experience     int
	Phone          string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" {
		return User{}, ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return User{}, ErrInvalidInput
	}
	if in.Experience < 0 {
		return User{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           auth.ParseRole(strings.TrimSpace(in.Role)),
		Specialization: strings.TrimSpace(in.Specialization),
		Location:       strings.TrimSpace(in.Location),
		Experience:     in.Experience,
		Phone:          strings.TrimSpace(in.Phone),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login valida credenciales y devuelve el user más un token firmado
// (token vacío si no hay issuer configurado: modo dev).
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, "", ErrBadCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, "", ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrBadCredentials
	}

	token := ""
	if s.issuer != nil {
		token, err = s.issuer.Issue(u.ID, u.Email, u.Role)
		if err != nil {
			return User{}, "", err
		}
	}

	return u, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// ListVets devuelve solo cuentas con rol vet.
func (s *Service) ListVets(ctx context.Context) ([]User, error) {
	return s.repo.ListByRole(ctx, auth.RoleVet)
}

// ListUsers devuelve solo cuentas con rol user (cuidadores).
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListByRole(ctx, auth.RoleUser)
}

func (s *Service) CountUsers(ctx context.Context) (int, error) {
	return s.repo.CountByRole(ctx, auth.RoleUser)
}

// IsVet implementa el VetDirectory que usa el módulo animals.
func (s *Service) IsVet(ctx context.Context, userID string) (bool, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return false, nil
	}
	return u.Role == auth.RoleVet, nil
}
