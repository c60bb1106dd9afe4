package pets

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/middleware"
	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/platform/sse"
	"pet-tracker/internal/ports/photos"
	"pet-tracker/internal/ports/realtime"

	"github.com/go-chi/chi/v5"
)

const maxPhotoBytes = 10 << 20

type RouteOptions struct {
	Uploader photos.Uploader // nil = subida de fotos deshabilitada
	Hub      realtime.Hub
	Log      logger.Logger

	// UploadLimit se aplica a la ruta de foto (rate limit por usuario). Opcional.
	UploadLimit func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, opts RouteOptions) {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	limit := opts.UploadLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, opts))
		pr.Get("/", listPetsHandler(svc, opts.Log))

		// Lista en tiempo real (SSE): snapshot al conectar y en cada cambio
		pr.Get("/stream", streamPetsHandler(svc, opts))

		pr.Get("/{petID}", getPetHandler(svc, opts.Log))
		pr.Patch("/{petID}", updatePetHandler(svc, opts.Log))
		pr.Delete("/{petID}", deletePetHandler(svc, opts.Log))

		pr.With(limit).Post("/{petID}/photo", uploadPetPhotoHandler(svc, opts))

		pr.Post("/{petID}/collar", linkCollarHandler(svc, opts.Log))
		pr.Delete("/{petID}/collar", unlinkCollarHandler(svc, opts.Log))
	})
}

type createPetRequest struct {
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed"`
	AgeYears *int   `json:"age_years"`
	Color    string `json:"color"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string `json:"name"`
	Species  *string `json:"species"`
	Breed    *string `json:"breed"`
	AgeYears *int    `json:"age_years"`
	Color    *string `json:"color"`
}

type linkCollarRequest struct {
	Code string `json:"code"`
}

type collarResponse struct {
	Code     string     `json:"code,omitempty"`
	LinkedAt *time.Time `json:"linked_at,omitempty"`
	Active   bool       `json:"active"`
}

type petResponse struct {
	ID          string         `json:"id"`
	OwnerUserID string         `json:"owner_user_id"`
	Name        string         `json:"name"`
	Species     Species        `json:"species"`
	Breed       string         `json:"breed"`
	AgeYears    *int           `json:"age_years,omitempty"`
	PhotoURL    string         `json:"photo_url,omitempty"`
	Color       string         `json:"color"`
	Collar      collarResponse `json:"collar"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Acepta JSON o multipart/form-data (campos + archivo `photo`). Si se intentó subir foto y falla, la mascota no se crea.
// @Tags pets
// @Accept json,mpfd
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body createPetRequest false "Datos de la mascota (JSON)"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / name is required"
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "could not upload photo"
// @Router /pets [post]
func createPetHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var in CreateInput
		if isMultipart(r) {
			if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
				http.Error(w, "invalid multipart form", http.StatusBadRequest)
				return
			}
			in = CreateInput{
				Name:    r.FormValue("name"),
				Species: r.FormValue("species"),
				Breed:   r.FormValue("breed"),
				Color:   r.FormValue("color"),
			}
			if v := strings.TrimSpace(r.FormValue("age_years")); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil {
					http.Error(w, "age_years must be an integer", http.StatusBadRequest)
					return
				}
				in.AgeYears = &n
			}

			// Validamos antes de subir para no dejar fotos huérfanas.
			if err := ValidateCreate(in); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			url, attempted, err := uploadFormPhoto(r, opts.Uploader)
			if attempted && err != nil {
				writeUploadError(w, opts.Log, err)
				return
			}
			in.PhotoURL = url
		} else {
			var req createPetRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			in = CreateInput{
				Name:     req.Name,
				Species:  req.Species,
				Breed:    req.Breed,
				AgeYears: req.AgeYears,
				Color:    req.Color,
			}
		}

		p, err := svc.Create(r.Context(), userID, in)
		if err != nil {
			writeServiceError(w, opts.Log, "save pet", err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			writeServiceError(w, log, "load pets", err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func streamPetsHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		sse.Stream(w, r, opts.Hub, realtime.PetsTopic(userID), func(ctx context.Context) (any, error) {
			items, err := svc.ListByOwner(ctx, userID)
			if err != nil {
				return nil, err
			}
			return toPetResponses(items), nil
		}, opts.Log)
	}
}

func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		p, err := svc.OwnedBy(r.Context(), chi.URLParam(r, "petID"), userID)
		if err != nil {
			writeServiceError(w, log, "load pet", err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), userID, UpdateInput{
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			AgeYears: req.AgeYears,
			Color:    req.Color,
		})
		if err != nil {
			writeServiceError(w, log, "save pet", err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Requiere confirmación explícita (`?confirm=delete`). Borra en cascada recordatorios y registros de la mascota.
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Param confirm query string true "delete"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 428 {string} string "confirmation required"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), userID, confirm.FromRequest(r)); err != nil {
			writeServiceError(w, log, "delete pet", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func uploadPetPhotoHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		petID := chi.URLParam(r, "petID")
		// Chequeo de ownership antes de subir nada.
		if _, err := svc.OwnedBy(r.Context(), petID, userID); err != nil {
			writeServiceError(w, opts.Log, "save pet", err)
			return
		}

		if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		url, attempted, err := uploadFormPhoto(r, opts.Uploader)
		if !attempted {
			http.Error(w, "photo is required", http.StatusBadRequest)
			return
		}
		if err != nil {
			writeUploadError(w, opts.Log, err)
			return
		}

		p, err := svc.Update(r.Context(), petID, userID, UpdateInput{PhotoURL: &url})
		if err != nil {
			writeServiceError(w, opts.Log, "save pet", err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func linkCollarHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req linkCollarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.LinkCollar(r.Context(), chi.URLParam(r, "petID"), userID, req.Code)
		if err != nil {
			writeServiceError(w, log, "save pet", err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func unlinkCollarHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		p, err := svc.UnlinkCollar(r.Context(), chi.URLParam(r, "petID"), userID)
		if err != nil {
			writeServiceError(w, log, "save pet", err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// uploadFormPhoto sube el archivo "photo" si vino en el form.
// attempted=false cuando no hay archivo (no es error).
func uploadFormPhoto(r *http.Request, uploader photos.Uploader) (url string, attempted bool, err error) {
	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return "", false, nil
	}
	if err != nil {
		return "", true, err
	}
	defer file.Close()

	if uploader == nil {
		return "", true, errors.New("photo upload not configured")
	}

	url, err = uploader.UploadPhoto(r.Context(), header.Filename, file)
	if err != nil {
		return "", true, err
	}
	return url, true, nil
}

func writeUploadError(w http.ResponseWriter, log logger.Logger, err error) {
	log.Error("photo upload failed", map[string]any{"err": err})
	http.Error(w, ErrPhotoUpload.Error(), http.StatusBadGateway)
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, confirm.ErrRequired):
		confirm.WriteRequired(w)
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

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		AgeYears:    p.AgeYears,
		PhotoURL:    p.PhotoURL,
		Color:       p.Color,
		Collar: collarResponse{
			Code:     p.Collar.Code,
			LinkedAt: p.Collar.LinkedAt,
			Active:   p.Collar.Active,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// writeJSON se repite en cada módulo de handlers.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
