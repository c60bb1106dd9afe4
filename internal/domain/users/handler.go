package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-tracker/internal/middleware"
	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/ports/auth"
	"pet-tracker/internal/ports/photos"

	"github.com/go-chi/chi/v5"
)

const maxPhotoBytes = 10 << 20

type RouteOptions struct {
	Uploader    photos.Uploader
	Log         logger.Logger
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

	r.Get("/me", meHandler(svc, opts.Log))
	r.Patch("/me", updateMeHandler(svc, opts.Log))
	r.With(limit).Post("/me/photo", uploadMePhotoHandler(svc, opts))
}

type updateMeRequest struct {
	DisplayName *string `json:"display_name"`
}

type profileResponse struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// meHandler godoc
// @Summary Perfil del usuario autenticado
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		p, err := svc.Me(r.Context(), claims)
		if err != nil {
			writeServiceError(w, log, "load profile", err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func updateMeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateMeRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), claims, UpdateInput{DisplayName: req.DisplayName})
		if err != nil {
			writeServiceError(w, log, "save profile", err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// uploadMePhotoHandler godoc
// @Summary Subir foto de perfil
// @Description multipart/form-data con archivo `photo`. Si la subida falla el perfil no cambia.
// @Tags users
// @Accept mpfd
// @Produce json
// @Success 200 {object} profileResponse
// @Failure 400 {string} string "photo is required"
// @Failure 429 {string} string "too many requests"
// @Failure 502 {string} string "could not upload photo"
// @Router /me/photo [post]
func uploadMePhotoHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			http.Error(w, "photo is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if opts.Uploader == nil {
			opts.Log.Error("photo upload failed", map[string]any{"err": "photo upload not configured"})
			http.Error(w, "could not upload photo", http.StatusBadGateway)
			return
		}

		url, err := opts.Uploader.UploadPhoto(r.Context(), header.Filename, file)
		if err != nil {
			opts.Log.Error("photo upload failed", map[string]any{"err": err})
			http.Error(w, "could not upload photo", http.StatusBadGateway)
			return
		}

		p, err := svc.Update(r.Context(), claims, UpdateInput{PhotoURL: &url})
		if err != nil {
			writeServiceError(w, opts.Log, "save profile", err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Error(op+" failed", map[string]any{"err": err})
	http.Error(w, "could not "+op, http.StatusInternalServerError)
}

func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	return claims, true
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
