package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"zoo-care-service/internal/domain/animals"
	"zoo-care-service/internal/middleware"
	"zoo-care-service/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service) {
	r.Route("/user", func(ur chi.Router) {
		ur.Post("/register", registerHandler(svc))
		ur.Post("/login", loginHandler(svc))
		ur.Get("/profile", profileHandler(svc))

		ur.Get("/getAll", listAllHandler(svc))
		ur.Get("/getAllVetsOnly", listVetsHandler(svc))
		ur.Get("/getAllUsersOnly", listUsersHandler(svc))
		ur.Get("/countUsersOnly", countUsersHandler(svc))

		// Alias que consume la pantalla de checkups del vet.
		ur.Get("/vet/{vetID}/assigned-animals", animals.AssignedAnimalsHandler(animalsSvc))
	})
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	UserType string `json:"userType"`

	Specialization string `json:"specialization"`
	Location       string `json:"location"`
	Experience     int    `json:"experience" validate:"gte=0"`
	Phone          string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	UserType       string    `json:"userType"`
	Specialization string    `json:"specialization,omitempty"`
	Location       string    `json:"location,omitempty"`
	Experience     int       `json:"experience,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Alta de cuenta (admin, vet o user). Los campos de perfil veterinario aplican solo a rol vet.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Cuenta"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /user/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:           req.Name,
			Email:          req.Email,
			Password:       req.Password,
			Role:           req.UserType,
			Specialization: req.Specialization,
			Location:       req.Location,
			Experience:     req.Experience,
			Phone:          req.Phone,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				writeError(w, http.StatusBadRequest, "Email already registered.")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "Invalid user data.")
			default:
				writeError(w, http.StatusInternalServerError, "Server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"user":    toUserResponse(u),
		})
	}
}

// loginHandler godoc
// @Summary Login
// @Description Valida credenciales y devuelve un bearer token (vacío en modo dev sin JWT_SECRET).
// @Tags users
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /user/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		u, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrBadCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid email or password.")
				return
			}
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   token,
			"user":    toUserResponse(u),
		})
	}
}

// profileHandler godoc
// @Summary Perfil del usuario autenticado
// @Tags users
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /user/profile [get]
func profileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    toUserResponse(u),
		})
	}
}

func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vets, err := svc.ListVets(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		caretakers, err := svc.ListUsers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		all := append(vets, caretakers...)
		writeUserList(w, all)
	}
}

// listVetsHandler godoc
// @Summary Listar veterinarios
// @Tags users
// @Produce json
// @Success 200 {object} map[string]any
// @Router /user/getAllVetsOnly [get]
func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListVets(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		writeUserList(w, items)
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListUsers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		writeUserList(w, items)
	}
}

func countUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.CountUsers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": n})
	}
}

func writeUserList(w http.ResponseWriter, items []User) {
	out := make([]userResponse, 0, len(items))
	for _, u := range items {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(out),
		"users":   out,
	})
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		UserType:       string(u.Role),
		Specialization: u.Specialization,
		Location:       u.Location,
		Experience:     u.Experience,
		Phone:          u.Phone,
		CreatedAt:      u.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}
