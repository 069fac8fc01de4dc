package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"zoo-care-service/internal/middleware"
	"zoo-care-service/internal/platform/validate"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// CRUD de animales (rutas heredadas del cliente móvil)
	r.Route("/animal", func(ar chi.Router) {
		ar.Post("/add", createAnimalHandler(svc))
		ar.Get("/getAll", listAnimalsHandler(svc))
		ar.Get("/count", countAnimalsHandler(svc))
		ar.Put("/update/{animalID}", updateAnimalHandler(svc))
		ar.Delete("/delete/{animalID}", RequireAdmin(deleteAnimalHandler(svc)))
		ar.Get("/{animalID}", getAnimalHandler(svc))
	})

	// Asignación de veterinario sobre el recurso animal
	r.Post("/animals/{animalID}/assign-vet", AssignVetHandler(svc, false))
}

type createAnimalRequest struct {
	Name     string `json:"name" validate:"required"`
	Species  string `json:"species" validate:"required"`
	Breed    string `json:"breed"`
	Age      int    `json:"age" validate:"gte=0"`
	Status   string `json:"status"`
	PhotoURL string `json:"photo"`
}

type updateAnimalRequest struct {
	// Punteros para update parcial: nil = no tocar.
	Name     *string `json:"name"`
	Species  *string `json:"species"`
	Breed    *string `json:"breed"`
	Age      *int    `json:"age"`
	Status   *string `json:"status"`
	PhotoURL *string `json:"photo"`
}

type animalResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Species          string     `json:"species"`
	Breed            string     `json:"breed,omitempty"`
	Age              int        `json:"age"`
	Status           string     `json:"status"`
	PhotoURL         string     `json:"photo,omitempty"`
	VetID            string     `json:"vetId,omitempty"`
	AssignmentReason string     `json:"assignmentReason,omitempty"`
	AssignedAt       *time.Time `json:"assignedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type assignVetRequest struct {
	AnimalID string `json:"animalId"` // solo en la variante /behavior/assign-vet
	VetID    string `json:"vetId" validate:"required"`
	Reason   string `json:"reason"`
}

type assignmentResponse struct {
	AnimalID   string     `json:"animalId"`
	VetID      string     `json:"vetId"`
	Reason     string     `json:"reason,omitempty"`
	AssignedAt *time.Time `json:"assignedAt,omitempty"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Crea un animal nuevo. El estado por defecto es healthy. La foto se referencia por URI (el almacenamiento es externo).
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /animal/add [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			Age:      req.Age,
			Status:   req.Status,
			PhotoURL: req.PhotoURL,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"animal":  toAnimalResponse(a),
		})
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Tags animals
// @Produce json
// @Success 200 {object} map[string]any
// @Router /animal/getAll [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"count":   len(out),
			"animals": out,
		})
	}
}

// countAnimalsHandler godoc
// @Summary Contar animales
// @Tags animals
// @Produce json
// @Success 200 {object} map[string]any
// @Router /animal/count [get]
func countAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Count(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": n})
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "animalID"))
		if !ok {
			return
		}

		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Animal not found.")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"animal":  toAnimalResponse(a),
		})
	}
}

// updateAnimalHandler godoc
// @Summary Actualizar animal
// @Description Update parcial: los campos ausentes no se tocan. Incluye la edición manual de status (única forma de limpiar needs_attention).
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a actualizar"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /animal/update/{animalID} [put]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "animalID"))
		if !ok {
			return
		}

		var req updateAnimalRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Update(r.Context(), id, UpdateInput{
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			Age:      req.Age,
			Status:   req.Status,
			PhotoURL: req.PhotoURL,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"animal":  toAnimalResponse(a),
		})
	}
}

func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "animalID"))
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Animal deleted successfully.",
		})
	}
}

// AssignVetHandler godoc
// @Summary Asignar veterinario
// @Description Asigna un veterinario al animal. Rechaza si el user no tiene rol vet o si ese mismo vet ya está asignado. Se expone en dos rutas (legado del cliente móvil): POST /animals/{animalID}/assign-vet y POST /behavior/assign-vet con animalId en el body.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body assignVetRequest true "vetId y reason; animalId solo en la variante por body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /behavior/assign-vet [post]
func AssignVetHandler(svc *Service, animalIDInBody bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignVetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		animalID := strings.TrimSpace(req.AnimalID)
		if !animalIDInBody {
			animalID = chi.URLParam(r, "animalID")
		}
		animalID, ok := parseID(w, animalID)
		if !ok {
			return
		}

		asg, err := svc.AssignVet(r.Context(), animalID, req.VetID, req.Reason)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"assignment": toAssignmentResponse(asg),
		})
	}
}

// AssignedVetHandler atiende GET /behavior/assigned-vet/{animalID}.
func AssignedVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "animalID"))
		if !ok {
			return
		}

		asg, err := svc.AssignedVet(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"assignment": toAssignmentResponse(asg),
		})
	}
}

// AssignedAnimalsHandler atiende GET /behavior/vet/{vetID}/assigned-animals
// y su alias GET /user/vet/{vetID}/assigned-animals.
// El filtro por needs_attention lo hace el cliente sobre esta respuesta.
func AssignedAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vetID, ok := parseID(w, chi.URLParam(r, "vetID"))
		if !ok {
			return
		}

		items, err := svc.AssignedAnimals(r.Context(), vetID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"count":   len(out),
			"animals": out,
		})
	}
}

// RequireAdmin envuelve un handler exigiendo claims con rol admin.
// Solo se aplica donde el cliente original lo exigía (delete).
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if claims.Role != "admin" {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next(w, r)
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:               a.ID,
		Name:             a.Name,
		Species:          a.Species,
		Breed:            a.Breed,
		Age:              a.Age,
		Status:           string(a.Status),
		PhotoURL:         a.PhotoURL,
		VetID:            a.VetID,
		AssignmentReason: a.AssignmentReason,
		AssignedAt:       a.AssignedAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toAssignmentResponse(asg Assignment) assignmentResponse {
	return assignmentResponse{
		AnimalID:   asg.AnimalID,
		VetID:      asg.VetID,
		Reason:     asg.Reason,
		AssignedAt: asg.AssignedAt,
	}
}

// parseID valida que el id tenga forma de UUID.
// Un id malformado se responde como 400 (no llega al repo).
func parseID(w http.ResponseWriter, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if _, err := uuid.Parse(raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id format.")
		return "", false
	}
	return raw, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrVetNotFound):
		writeError(w, http.StatusNotFound, "Veterinarian not found or invalid user type.")
	case errors.Is(err, ErrAlreadyAssigned):
		writeError(w, http.StatusBadRequest, "This veterinarian is already assigned to this animal.")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Animal not found.")
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Server error")
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
