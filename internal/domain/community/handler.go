package community

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

const maxImageBytes = 10 << 20

type RouteOptions struct {
	Uploader    photos.Uploader
	Hub         realtime.Hub
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

	r.Route("/posts", func(pr chi.Router) {
		pr.Get("/", listPostsHandler(svc, opts.Log))
		pr.With(limit).Post("/", createPostHandler(svc, opts))

		pr.Get("/{postID}", getPostHandler(svc, opts.Log))
		pr.Delete("/{postID}", deletePostHandler(svc, opts.Log))

		pr.Get("/{postID}/comments", listCommentsHandler(svc, opts.Log))
		pr.Post("/{postID}/comments", addCommentHandler(svc, opts.Log))
		pr.Get("/{postID}/comments/stream", streamCommentsHandler(svc, opts))
	})
}

type createPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type addCommentRequest struct {
	Body string `json:"body"`
}

type postResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// listPostsHandler godoc
// @Summary Listar posts
// @Tags community
// @Produce json
// @Param limit query int false "1-100, por defecto 20"
// @Success 200 {array} postResponse
// @Router /posts [get]
func listPostsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireUser(w, r); !ok {
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		items, err := svc.ListPosts(r.Context(), limit)
		if err != nil {
			writeServiceError(w, log, "load posts", err)
			return
		}

		out := make([]postResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPostResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPostHandler godoc
// @Summary Crear post
// @Description JSON o multipart con archivo `image`. Si la imagen falla, el post no se crea.
// @Tags community
// @Accept json,mpfd
// @Produce json
// @Param payload body createPostRequest false "Post"
// @Success 201 {object} postResponse
// @Failure 400 {string} string "title is required / body is required"
// @Failure 502 {string} string "could not upload photo"
// @Router /posts [post]
func createPostHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var in CreatePostInput
		if isMultipart(r) {
			if err := r.ParseMultipartForm(maxImageBytes); err != nil {
				http.Error(w, "invalid multipart form", http.StatusBadRequest)
				return
			}
			in = CreatePostInput{Title: r.FormValue("title"), Body: r.FormValue("body")}
			if err := ValidatePost(in); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			url, attempted, err := uploadFormImage(r, opts.Uploader)
			if attempted && err != nil {
				opts.Log.Error("post image upload failed", map[string]any{"err": err})
				http.Error(w, "could not upload photo", http.StatusBadGateway)
				return
			}
			in.ImageURL = url
		} else {
			var req createPostRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			in = CreatePostInput{Title: req.Title, Body: req.Body}
		}

		p, err := svc.CreatePost(r.Context(), userID, in)
		if err != nil {
			writeServiceError(w, opts.Log, "save post", err)
			return
		}

		writeJSON(w, http.StatusCreated, toPostResponse(p))
	}
}

func getPostHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireUser(w, r); !ok {
			return
		}

		p, err := svc.GetPost(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			writeServiceError(w, log, "load post", err)
			return
		}
		writeJSON(w, http.StatusOK, toPostResponse(p))
	}
}

// deletePostHandler godoc
// @Summary Borrar post
// @Description Solo el autor. Requiere `?confirm=delete`; borra también los comentarios.
// @Tags community
// @Param postID path string true "ID del post"
// @Param confirm query string true "delete"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "post not found"
// @Failure 428 {string} string "confirmation required"
// @Router /posts/{postID} [delete]
func deletePostHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		if err := svc.DeletePost(r.Context(), userID, chi.URLParam(r, "postID"), confirm.FromRequest(r)); err != nil {
			writeServiceError(w, log, "delete post", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listCommentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireUser(w, r); !ok {
			return
		}

		items, err := svc.ListComments(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			writeServiceError(w, log, "load comments", err)
			return
		}
		writeJSON(w, http.StatusOK, toCommentResponses(items))
	}
}

// addCommentHandler godoc
// @Summary Comentar un post
// @Tags community
// @Accept json
// @Produce json
// @Param postID path string true "ID del post"
// @Param payload body addCommentRequest true "Comentario"
// @Success 201 {object} commentResponse
// @Failure 404 {string} string "post not found"
// @Router /posts/{postID}/comments [post]
func addCommentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req addCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.AddComment(r.Context(), userID, chi.URLParam(r, "postID"), req.Body)
		if err != nil {
			writeServiceError(w, log, "save comment", err)
			return
		}
		writeJSON(w, http.StatusCreated, toCommentResponse(c))
	}
}

func streamCommentsHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireUser(w, r); !ok {
			return
		}

		postID := chi.URLParam(r, "postID")
		if _, err := svc.GetPost(r.Context(), postID); err != nil {
			writeServiceError(w, opts.Log, "load comments", err)
			return
		}

		sse.Stream(w, r, opts.Hub, realtime.CommentsTopic(postID), func(ctx context.Context) (any, error) {
			items, err := svc.ListComments(ctx, postID)
			if err != nil {
				return nil, err
			}
			return toCommentResponses(items), nil
		}, opts.Log)
	}
}

func uploadFormImage(r *http.Request, uploader photos.Uploader) (string, bool, error) {
	file, header, err := r.FormFile("image")
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
	url, err := uploader.UploadPhoto(r.Context(), header.Filename, file)
	return url, true, err
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "post not found", http.StatusNotFound)
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

func toPostResponse(p Post) postResponse {
	return postResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Body:      p.Body,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

func toCommentResponses(items []Comment) []commentResponse {
	out := make([]commentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCommentResponse(c))
	}
	return out
}

func toCommentResponse(c Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
