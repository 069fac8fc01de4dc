package tasks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/tasks", func(tr chi.Router) {
		// GET /tasks: el dashboard del vet consume la colección pelada.
		tr.Get("/", listTasksHandler(svc))
		tr.Post("/add", createTaskHandler(svc))
		tr.Put("/edit/{taskID}", updateTaskHandler(svc))
		tr.Get("/getAll", listTasksHandler(svc))
		tr.Get("/count/pending", countHandler(svc, StatusPending))
		tr.Get("/count/completed", countHandler(svc, StatusCompleted))
		tr.Get("/{taskID}", getTaskHandler(svc))
		tr.Post("/{taskID}/complete", completeTaskHandler(svc))
		tr.Post("/{taskID}/verify", verifyTaskHandler(svc))
	})
}

type taskSpecRequest struct {
	Type          string   `json:"type"`
	AnimalID      string   `json:"animalId"`
	AssignedTo    string   `json:"assignedTo"`
	ScheduleDate  string   `json:"scheduleDate"` // YYYY-MM-DD
	ScheduleTimes []string `json:"scheduleTimes"`
	Status        string   `json:"status"`

	IsRecurring       bool   `json:"isRecurring"`
	RecurrencePattern string `json:"recurrencePattern"`
	EndDate           string `json:"endDate"` // YYYY-MM-DD, requerido si isRecurring
}

type completeTaskRequest struct {
	CompletedAt string `json:"completedAt"` // RFC3339 opcional
	ImageProof  string `json:"imageProof"`  // URI opcional
}

type taskResponse struct {
	ID                 string     `json:"id"`
	Type               string     `json:"type"`
	AnimalID           string     `json:"animalId"`
	AssignedTo         string     `json:"assignedTo"`
	ScheduleDate       string     `json:"scheduleDate"`
	ScheduleTimes      []string   `json:"scheduleTimes"`
	Status             string     `json:"status"`
	IsRecurring        bool       `json:"isRecurring"`
	RecurrencePattern  string     `json:"recurrencePattern,omitempty"`
	EndDate            string     `json:"endDate,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CompletionVerified bool       `json:"completionVerified"`
	ImageProof         string     `json:"imageProof,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

const dateLayout = "2006-01-02"

func (req taskSpecRequest) toSpec() (Spec, error) {
	spec := Spec{
		Type:              Type(strings.TrimSpace(req.Type)),
		AnimalID:          req.AnimalID,
		AssignedTo:        req.AssignedTo,
		ScheduleTimes:     req.ScheduleTimes,
		Status:            Status(strings.TrimSpace(req.Status)),
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: Recurrence(strings.TrimSpace(req.RecurrencePattern)),
	}

	if v := strings.TrimSpace(req.ScheduleDate); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return Spec{}, fieldErr("scheduleDate", "must be YYYY-MM-DD")
		}
		spec.ScheduleDate = t
	}
	if v := strings.TrimSpace(req.EndDate); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return Spec{}, fieldErr("endDate", "must be YYYY-MM-DD")
		}
		spec.EndDate = &t
	}

	return spec, nil
}

// createTaskHandler godoc
// @Summary Crear tarea de cuidado
// @Description Valida en orden: requeridos, al menos un horario, formato HH:MM, y endDate > scheduleDate si es recurrente. La recurrencia es metadata: no se expanden ocurrencias.
// @Tags tasks
// @Accept json
// @Produce json
// @Param payload body taskSpecRequest true "Tarea"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /tasks/add [post]
func createTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req taskSpecRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		spec, err := req.toSpec()
		if err != nil {
			writeTaskError(w, err)
			return
		}

		t, err := svc.Create(r.Context(), spec)
		if err != nil {
			writeTaskError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"task":    toTaskResponse(t),
		})
	}
}

// updateTaskHandler godoc
// @Summary Editar tarea
// @Description Reemplazo completo: el payload se re-valida con las mismas reglas del alta.
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskID path string true "ID de la tarea"
// @Param payload body taskSpecRequest true "Tarea"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /tasks/edit/{taskID} [put]
func updateTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "taskID"))
		if !ok {
			return
		}

		var req taskSpecRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		spec, err := req.toSpec()
		if err != nil {
			writeTaskError(w, err)
			return
		}

		t, err := svc.Update(r.Context(), id, spec)
		if err != nil {
			writeTaskError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"task":    toTaskResponse(t),
		})
	}
}

// listTasksHandler devuelve el array pelado (shape que espera el cliente).
func listTasksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := ListFilter{
			Status:     Status(strings.TrimSpace(q.Get("status"))),
			AnimalID:   strings.TrimSpace(q.Get("animalId")),
			AssignedTo: strings.TrimSpace(q.Get("assignedTo")),
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		out := make([]taskResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTaskResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "taskID"))
		if !ok {
			return
		}

		t, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Task not found.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "task": toTaskResponse(t)})
	}
}

// countHandler godoc
// @Summary Contar tareas por estado
// @Tags tasks
// @Produce json
// @Success 200 {object} map[string]any
// @Router /tasks/count/pending [get]
func countHandler(svc *Service, status Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.CountByStatus(r.Context(), status)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": n})
	}
}

// completeTaskHandler godoc
// @Summary Completar tarea
// @Description Marca la tarea como Completed, con timestamp y foto de evidencia opcionales. La verificación (completionVerified) es un paso aparte.
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskID path string true "ID de la tarea"
// @Param payload body completeTaskRequest false "Evidencia"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /tasks/{taskID}/complete [post]
func completeTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "taskID"))
		if !ok {
			return
		}

		var req completeTaskRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		var completedAt *time.Time
		if v := strings.TrimSpace(req.CompletedAt); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "completedAt must be RFC3339")
				return
			}
			completedAt = &t
		}

		t, err := svc.Complete(r.Context(), id, completedAt, req.ImageProof)
		if err != nil {
			writeTaskError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "task": toTaskResponse(t)})
	}
}

func verifyTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "taskID"))
		if !ok {
			return
		}

		t, err := svc.VerifyCompletion(r.Context(), id)
		if err != nil {
			writeTaskError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "task": toTaskResponse(t)})
	}
}

func toTaskResponse(t Task) taskResponse {
	resp := taskResponse{
		ID:                 t.ID,
		Type:               string(t.Type),
		AnimalID:           t.AnimalID,
		AssignedTo:         t.AssignedTo,
		ScheduleDate:       t.ScheduleDate.Format(dateLayout),
		ScheduleTimes:      t.ScheduleTimes,
		Status:             string(t.Status),
		IsRecurring:        t.IsRecurring,
		RecurrencePattern:  string(t.RecurrencePattern),
		CompletedAt:        t.CompletedAt,
		CompletionVerified: t.CompletionVerified,
		ImageProof:         t.ImageProof,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
	if t.EndDate != nil {
		resp.EndDate = t.EndDate.Format(dateLayout)
	}
	return resp
}

func parseID(w http.ResponseWriter, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if _, err := uuid.Parse(raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id format.")
		return "", false
	}
	return raw, true
}

func writeTaskError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Task not found.")
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
