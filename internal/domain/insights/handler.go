package insights

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-tracker/internal/middleware"
	"pet-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Get("/pets/{petID}/insights", insightsHandler(svc, log))
}

// insightsHandler godoc
// @Summary Indicadores de la mascota
// @Description Tendencia de peso, actividad semanal, estado de salud y próximo control sugerido, derivados de los últimos registros.
// @Tags insights
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} Insights
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "could not load insights"
// @Router /pets/{petID}/insights [get]
func insightsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		out, err := svc.ForPet(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			log.Error("load insights failed", map[string]any{"err": err})
			http.Error(w, "could not load insights", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
