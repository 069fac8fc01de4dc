package behaviors

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zoo-care-service/internal/domain/animals"
	"zoo-care-service/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service) {
	r.Route("/behavior", func(br chi.Router) {
		br.Post("/add", recordBehaviorHandler(svc))
		br.Get("/singlebehavior/{animalID}", listByAnimalHandler(svc))
		br.Get("/getAll", listAllHandler(svc))
		br.Get("/getAll/filtered", listFilteredHandler(svc))

		// La asignación de vets vive en el módulo animals; estas rutas
		// existen porque el cliente móvil las consume bajo /behavior.
		br.Post("/assign-vet", animals.AssignVetHandler(animalsSvc, true))
		br.Get("/assigned-vet/{animalID}", animals.AssignedVetHandler(animalsSvc))
		br.Get("/vet/{vetID}/assigned-animals", animals.AssignedAnimalsHandler(animalsSvc))
	})
}

type recordBehaviorRequest struct {
	AnimalID   string `json:"animalId" validate:"required"`
	Eating     string `json:"eating" validate:"required"`
	Movement   string `json:"movement" validate:"required"`
	Mood       string `json:"mood" validate:"required"`
	Notes      string `json:"notes"`
	RecordedBy string `json:"recordedBy" validate:"required"`
}

type behaviorResponse struct {
	ID         string    `json:"id"`
	AnimalID   string    `json:"animalId"`
	Eating     string    `json:"eating"`
	Movement   string    `json:"movement"`
	Mood       string    `json:"mood"`
	Notes      string    `json:"notes,omitempty"`
	RecordedBy string    `json:"recordedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// recordBehaviorHandler godoc
// @Summary Registrar observación de comportamiento
// @Description Guarda el log y, si eating=None, movement=Limping o mood=Aggressive, marca el animal como needs_attention (best-effort: el log se guarda aunque el flag falle).
// @Tags behaviors
// @Accept json
// @Produce json
// @Param payload body recordBehaviorRequest true "Observación"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /behavior/add [post]
func recordBehaviorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordBehaviorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		_, err := svc.Record(r.Context(), RecordInput{
			AnimalID:   req.AnimalID,
			Eating:     Eating(req.Eating),
			Movement:   Movement(req.Movement),
			Mood:       Mood(req.Mood),
			Notes:      req.Notes,
			RecordedBy: req.RecordedBy,
		})
		if err != nil {
			if err == ErrInvalidInput {
				writeError(w, http.StatusBadRequest, "Invalid behavior values.")
				return
			}
			writeError(w, http.StatusInternalServerError, "Error saving behavior log.")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Behavior log saved successfully.",
		})
	}
}

// listByAnimalHandler godoc
// @Summary Logs de comportamiento de un animal
// @Tags behaviors
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} map[string]any
// @Router /behavior/singlebehavior/{animalID} [get]
func listByAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := chi.URLParam(r, "animalID")

		items, err := svc.ListByAnimal(r.Context(), animalID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"count":     len(items),
			"behaviors": toBehaviorResponses(items),
		})
	}
}

func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Sin filtros ni paginación: el cliente espera el historial completo.
		items, err := svc.ListAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"count":     len(items),
			"behaviors": toBehaviorResponses(items),
		})
	}
}

// listFilteredHandler godoc
// @Summary Logs con filtros y paginación
// @Tags behaviors
// @Produce json
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 10)"
// @Param animalId query string false "Filtrar por animal"
// @Param eating query string false "Filtrar por eating"
// @Param movement query string false "Filtrar por movement"
// @Param mood query string false "Filtrar por mood"
// @Param startDate query string false "Desde (RFC3339 o YYYY-MM-DD)"
// @Param endDate query string false "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success 200 {object} map[string]any
// @Router /behavior/getAll/filtered [get]
func listFilteredHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := ListFilter{
			AnimalID: strings.TrimSpace(q.Get("animalId")),
			Eating:   Eating(strings.TrimSpace(q.Get("eating"))),
			Movement: Movement(strings.TrimSpace(q.Get("movement"))),
			Mood:     Mood(strings.TrimSpace(q.Get("mood"))),
			Page:     atoiDefault(q.Get("page"), 1),
			Limit:    atoiDefault(q.Get("limit"), 10),
		}

		if v := strings.TrimSpace(q.Get("startDate")); v != "" {
			t, err := parseDate(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "startDate must be RFC3339 or YYYY-MM-DD")
				return
			}
			filter.From = &t
		}
		if v := strings.TrimSpace(q.Get("endDate")); v != "" {
			t, err := parseDate(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "endDate must be RFC3339 or YYYY-MM-DD")
				return
			}
			// endDate como fecha pelada incluye el día completo
			if len(v) == len("2006-01-02") {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			filter.To = &t
		}

		items, total, err := svc.ListFiltered(r.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		totalPages := 0
		if filter.Limit > 0 {
			totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"count":       len(items),
			"total":       total,
			"totalPages":  totalPages,
			"currentPage": filter.Page,
			"behaviors":   toBehaviorResponses(items),
		})
	}
}

func toBehaviorResponses(items []BehaviorLog) []behaviorResponse {
	out := make([]behaviorResponse, 0, len(items))
	for _, b := range items {
		out = append(out, behaviorResponse{
			ID:         b.ID,
			AnimalID:   b.AnimalID,
			Eating:     string(b.Eating),
			Movement:   string(b.Movement),
			Mood:       string(b.Mood),
			Notes:      b.Notes,
			RecordedBy: b.RecordedBy,
			CreatedAt:  b.CreatedAt,
		})
	}
	return out
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
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
