package medrecords

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"zoo-care-service/internal/platform/validate"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medical-records", func(mr chi.Router) {
		mr.Get("/", listRecordsHandler(svc))
		mr.Post("/", createRecordHandler(svc))
		mr.Get("/{recordID}", getRecordHandler(svc))
		mr.Put("/{recordID}", updateRecordHandler(svc))
		mr.Delete("/{recordID}", deleteRecordHandler(svc))
	})
}

type recordRequest struct {
	AnimalID       string `json:"animal" validate:"required"`
	VeterinarianID string `json:"veterinarian" validate:"required"`
	RecordType     string `json:"recordType" validate:"required"`

	Diagnosis    string   `json:"diagnosis"`
	Treatment    string   `json:"treatment"`
	Weight       *float64 `json:"weight"`
	Temperature  *float64 `json:"temperature"`
	Notes        string   `json:"notes"`
	FollowUpDate string   `json:"followUpDate"` // YYYY-MM-DD opcional
}

type recordResponse struct {
	ID             string     `json:"id"`
	AnimalID       string     `json:"animal"`
	VeterinarianID string     `json:"veterinarian"`
	RecordType     string     `json:"recordType"`
	Diagnosis      string     `json:"diagnosis,omitempty"`
	Treatment      string     `json:"treatment,omitempty"`
	Weight         *float64   `json:"weight,omitempty"`
	Temperature    *float64   `json:"temperature,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	FollowUpDate   *time.Time `json:"followUpDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (req recordRequest) toInput() (RecordInput, error) {
	in := RecordInput{
		AnimalID:       req.AnimalID,
		VeterinarianID: req.VeterinarianID,
		RecordType:     RecordType(strings.TrimSpace(req.RecordType)),
		Diagnosis:      req.Diagnosis,
		Treatment:      req.Treatment,
		Vitals: Vitals{
			WeightKg:     req.Weight,
			TemperatureC: req.Temperature,
		},
		Notes: req.Notes,
	}

	if v := strings.TrimSpace(req.FollowUpDate); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return RecordInput{}, errors.New("followUpDate must be YYYY-MM-DD")
		}
		in.FollowUpDate = &t
	}
	return in, nil
}

// createRecordHandler godoc
// @Summary Crear registro médico
// @Description El veterinario asignado registra un checkup, vacunación o tratamiento del animal.
// @Tags medical-records
// @Accept json
// @Produce json
// @Param payload body recordRequest true "Registro"
// @Success 201 {object} recordResponse
// @Failure 400 {object} map[string]any
// @Router /medical-records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		in, err := req.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := svc.Create(r.Context(), in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "Invalid medical record data.")
				return
			}
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros médicos
// @Description Devuelve el array pelado (shape que espera la pantalla de checkups); filtros por recordType, animal y veterinarian.
// @Tags medical-records
// @Produce json
// @Param recordType query string false "checkup | vaccination | treatment"
// @Param animal query string false "ID del animal"
// @Param veterinarian query string false "ID del veterinario"
// @Success 200 {array} recordResponse
// @Router /medical-records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			RecordType:     RecordType(strings.TrimSpace(q.Get("recordType"))),
			AnimalID:       strings.TrimSpace(q.Get("animal")),
			VeterinarianID: strings.TrimSpace(q.Get("veterinarian")),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "recordID"))
		if !ok {
			return
		}

		rec, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Medical record not found.")
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "recordID"))
		if !ok {
			return
		}

		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		in, err := req.toInput()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := svc.Update(r.Context(), id, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "Medical record not found.")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "Invalid medical record data.")
			default:
				writeError(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, chi.URLParam(r, "recordID"))
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, "Medical record not found.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Medical record deleted successfully.",
		})
	}
}

func toRecordResponse(rec MedicalRecord) recordResponse {
	return recordResponse{
		ID:             rec.ID,
		AnimalID:       rec.AnimalID,
		VeterinarianID: rec.VeterinarianID,
		RecordType:     string(rec.RecordType),
		Diagnosis:      rec.Diagnosis,
		Treatment:      rec.Treatment,
		Weight:         rec.Vitals.WeightKg,
		Temperature:    rec.Vitals.TemperatureC,
		Notes:          rec.Notes,
		FollowUpDate:   rec.FollowUpDate,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func parseID(w http.ResponseWriter, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if _, err := uuid.Parse(raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id format.")
		return "", false
	}
	return raw, true
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
