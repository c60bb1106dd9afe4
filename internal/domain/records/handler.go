package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-tracker/internal/middleware"
	"pet-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Route("/pets/{petID}/records", func(rr chi.Router) {
		rr.Post("/", appendRecordHandler(svc, log))
		rr.Get("/", listRecordsHandler(svc, log))
	})
}

// appendRecordRequest: value es número para weight/walk y texto para health/note.
type appendRecordRequest struct {
	Kind        string          `json:"kind" enums:"weight,walk,health,note"`
	Value       json.RawMessage `json:"value" swaggertype:"string"`
	DurationMin int             `json:"duration_min"` // solo walk
	Note        string          `json:"note"`
}

type recordResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Kind        Kind      `json:"kind"`
	Value       any       `json:"value"`
	DurationMin int       `json:"duration_min,omitempty"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

// appendRecordHandler godoc
// @Summary Agregar registro
// @Description Agrega un registro append-only (peso, paseo, salud o nota) a la mascota del usuario.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param petID path string true "ID de la mascota"
// @Param payload body appendRecordRequest true "Registro"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / kind / value"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "could not save record"
// @Router /pets/{petID}/records [post]
func appendRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req appendRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		kind, err := ParseKind(req.Kind)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := FromValue(kind, req.Value, req.DurationMin)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rec, err := svc.Append(r.Context(), userID, chi.URLParam(r, "petID"), data, req.Note)
		if err != nil {
			writeServiceError(w, log, "save record", err)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros
// @Tags records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param kind query string false "weight|walk|health|note"
// @Param limit query int false "1-200, por defecto 50"
// @Success 200 {array} recordResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/records [get]
func listRecordsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var kind Kind
		if v := strings.TrimSpace(r.URL.Query().Get("kind")); v != "" {
			k, err := ParseKind(v)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			kind = k
		}

		limit := DefaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxLimit {
				limit = n
			}
		}

		items, err := svc.ListRecent(r.Context(), userID, chi.URLParam(r, "petID"), kind, limit)
		if err != nil {
			writeServiceError(w, log, "load records", err)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toRecordResponse(r Record) recordResponse {
	out := recordResponse{
		ID:        r.ID,
		PetID:     r.PetID,
		Kind:      r.Kind(),
		Value:     Value(r.Data),
		Note:      r.Note,
		CreatedAt: r.CreatedAt,
	}
	if walk, ok := r.Data.(Walk); ok {
		out.DurationMin = walk.DurationMin
	}
	return out
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		log.Error(op+" failed", map[string]any{"err": err})
		http.Error(w, "could not "+op, http.StatusInternalServerError)
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
