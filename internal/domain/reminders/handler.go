package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-tracker/internal/domain/calendar"
	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/middleware"
	"pet-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ColorSource da la tabla petID -> color del owner. Lo implementa *pets.Service.
type ColorSource interface {
	Colors(ctx context.Context, ownerUserID string) (map[string]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, colors ColorSource, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Route("/reminders", func(rr chi.Router) {
		rr.Get("/", listMonthHandler(svc, log))
		rr.Get("/day", listDayHandler(svc, log))
		rr.Post("/", saveReminderHandler(svc, log))

		rr.Get("/{reminderID}", getReminderHandler(svc, log))
		rr.Patch("/{reminderID}", saveReminderHandler(svc, log))
		rr.Delete("/{reminderID}", deleteReminderHandler(svc, log))
		rr.Post("/{reminderID}/completed", toggleCompletedHandler(svc, log))
	})

	// Vista completa de la pantalla de calendario: mes + día + marcas
	r.Get("/agenda", agendaHandler(svc, colors, log))
}

// saveReminderRequest: en PATCH o con id, solo se tocan los campos presentes.
type saveReminderRequest struct {
	ID          string  `json:"id"`
	PetID       *string `json:"pet_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category" enums:"consultation,medication,bath,other"`
	ScheduledAt *string `json:"scheduled_at"` // RFC3339 o "YYYY-MM-DDTHH:MM[:SS]" en la zona del servicio
}

type toggleCompletedRequest struct {
	Completed bool `json:"completed"`
}

type reminderResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Date        string    `json:"date"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type agendaResponse struct {
	Date  string             `json:"date"`
	From  time.Time          `json:"from"`
	To    time.Time          `json:"to"`
	Month []reminderResponse `json:"month"`
	Day   []reminderResponse `json:"day"`
	Marks calendar.Marks     `json:"marks"`
}

// listMonthHandler godoc
// @Summary Recordatorios del mes
// @Description Devuelve los recordatorios del mes que contiene `date`, filtrados por mascotas y categorías. Filtros vacíos = sin filtro.
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param date query string false "YYYY-MM-DD (default hoy)"
// @Param pets query string false "CSV de petIDs"
// @Param categories query string false "CSV: consultation,medication,bath,other"
// @Success 200 {array} reminderResponse
// @Failure 400 {string} string "date / categories inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "could not load reminders"
// @Router /reminders [get]
func listMonthHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		selected, filter, err := parseMonthQuery(r, svc.Location(), svc.now)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.FetchMonth(r.Context(), userID, selected, filter)
		if err != nil {
			writeServiceError(w, log, "load reminders", err)
			return
		}

		writeJSON(w, http.StatusOK, toReminderResponses(items, svc.Location()))
	}
}

// listDayHandler godoc
// @Summary Recordatorios del día
// @Description Filtra en memoria, del mes de `date`, los recordatorios de ese día.
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param date query string false "YYYY-MM-DD (default hoy)"
// @Param pets query string false "CSV de petIDs"
// @Param categories query string false "CSV: consultation,medication,bath,other"
// @Success 200 {array} reminderResponse
// @Failure 400 {string} string "date / categories inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "could not load reminders"
// @Router /reminders/day [get]
func listDayHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		selected, filter, err := parseMonthQuery(r, svc.Location(), svc.now)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		month, err := svc.FetchMonth(r.Context(), userID, selected, filter)
		if err != nil {
			writeServiceError(w, log, "load reminders", err)
			return
		}

		day := DayView(month, DateString(selected, svc.Location()), svc.Location())
		writeJSON(w, http.StatusOK, toReminderResponses(day, svc.Location()))
	}
}

// agendaHandler godoc
// @Summary Agenda (mes + día + marcas)
// @Description Una consulta por rango del mes; el día seleccionado y las marcas de calendario se derivan en memoria.
// @Tags reminders
// @Produce json
// @Param date query string false "YYYY-MM-DD (default hoy)"
// @Param pets query string false "CSV de petIDs"
// @Param categories query string false "CSV de categorías"
// @Success 200 {object} agendaResponse
// @Router /agenda [get]
func agendaHandler(svc *Service, colors ColorSource, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		selected, filter, err := parseMonthQuery(r, svc.Location(), svc.now)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		month, err := svc.FetchMonth(r.Context(), userID, selected, filter)
		if err != nil {
			writeServiceError(w, log, "load reminders", err)
			return
		}

		table := map[string]string{}
		if colors != nil {
			table, err = colors.Colors(r.Context(), userID)
			if err != nil {
				writeServiceError(w, log, "load pets", err)
				return
			}
		}

		loc := svc.Location()
		date := DateString(selected, loc)
		from, to := MonthWindow(selected, loc)

		writeJSON(w, http.StatusOK, agendaResponse{
			Date:  date,
			From:  from,
			To:    to,
			Month: toReminderResponses(month, loc),
			Day:   toReminderResponses(DayView(month, date, loc), loc),
			Marks: calendar.BuildMarks(CalendarEvents(month, loc), table, date),
		})
	}
}

// getReminderHandler godoc
// @Summary Obtener recordatorio
// @Tags reminders
// @Produce json
// @Param reminderID path string true "ID del recordatorio"
// @Success 200 {object} reminderResponse
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID} [get]
func getReminderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		rem, err := svc.GetOwned(r.Context(), chi.URLParam(r, "reminderID"), userID)
		if err != nil {
			writeServiceError(w, log, "load reminder", err)
			return
		}

		writeJSON(w, http.StatusOK, toReminderResponse(rem, svc.Location()))
	}
}

// saveReminderHandler godoc
// @Summary Guardar recordatorio
// @Description Sin id crea (completed=false, created_at del servidor). Con id (body o path) actualiza solo los campos enviados.
// @Tags reminders
// @Accept json
// @Produce json
// @Param payload body saveReminderRequest true "Recordatorio"
// @Success 200 {object} reminderResponse
// @Success 201 {object} reminderResponse
// @Failure 400 {string} string "title is required / pet is required"
// @Failure 404 {string} string "reminder not found"
// @Failure 500 {string} string "could not save reminder"
// @Router /reminders [post]
// @Router /reminders/{reminderID} [patch]
func saveReminderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req saveReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if id := chi.URLParam(r, "reminderID"); id != "" {
			req.ID = id
		}

		in, err := req.toSaveInput(svc.Location())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rem, err := svc.Save(r.Context(), userID, in)
		if err != nil {
			writeServiceError(w, log, "save reminder", err)
			return
		}

		status := http.StatusOK
		if strings.TrimSpace(in.ID) == "" {
			status = http.StatusCreated
		}
		writeJSON(w, status, toReminderResponse(rem, svc.Location()))
	}
}

// toggleCompletedHandler godoc
// @Summary Marcar completado
// @Description Solo cambia `completed`. Repetir el mismo valor no es error.
// @Tags reminders
// @Accept json
// @Produce json
// @Param reminderID path string true "ID del recordatorio"
// @Param payload body toggleCompletedRequest true "Estado"
// @Success 200 {object} reminderResponse
// @Failure 404 {string} string "reminder not found"
// @Failure 500 {string} string "could not save reminder"
// @Router /reminders/{reminderID}/completed [post]
func toggleCompletedHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req toggleCompletedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rem, err := svc.ToggleCompleted(r.Context(), userID, chi.URLParam(r, "reminderID"), req.Completed)
		if err != nil {
			writeServiceError(w, log, "save reminder", err)
			return
		}

		writeJSON(w, http.StatusOK, toReminderResponse(rem, svc.Location()))
	}
}

// deleteReminderHandler godoc
// @Summary Borrar recordatorio
// @Description Sin `confirm=delete` responde 428 con las opciones Cancel/Delete y no borra.
// @Tags reminders
// @Param reminderID path string true "ID del recordatorio"
// @Param confirm query string true "delete"
// @Success 204
// @Failure 404 {string} string "reminder not found"
// @Failure 428 {string} string "confirmation required"
// @Router /reminders/{reminderID} [delete]
func deleteReminderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		if err := svc.Remove(r.Context(), userID, chi.URLParam(r, "reminderID"), confirm.FromRequest(r)); err != nil {
			writeServiceError(w, log, "delete reminder", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (req saveReminderRequest) toSaveInput(loc *time.Location) (SaveInput, error) {
	in := SaveInput{
		ID:          strings.TrimSpace(req.ID),
		PetID:       req.PetID,
		Title:       req.Title,
		Description: req.Description,
	}

	if req.Category != nil {
		c, err := ParseCategory(*req.Category)
		if err != nil {
			return SaveInput{}, err
		}
		in.Category = &c
	}

	if req.ScheduledAt != nil {
		t, err := ParseScheduled(*req.ScheduledAt, loc)
		if err != nil {
			return SaveInput{}, err
		}
		in.ScheduledAt = &t
	}

	return in, nil
}

// ParseScheduled acepta RFC3339 o fecha-hora sin zona (se interpreta en loc).
func ParseScheduled(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: scheduled_at must be RFC3339 or YYYY-MM-DDTHH:MM", ErrInvalidInput)
}

func parseMonthQuery(r *http.Request, loc *time.Location, now func() time.Time) (time.Time, Filter, error) {
	q := r.URL.Query()

	selected := now().In(loc)
	if v := strings.TrimSpace(q.Get("date")); v != "" {
		t, err := ParseDate(v, loc)
		if err != nil {
			return time.Time{}, Filter{}, errors.New("date must be YYYY-MM-DD")
		}
		selected = t
	}

	var f Filter
	for _, id := range splitCSV(q.Get("pets")) {
		f.PetIDs = append(f.PetIDs, id)
	}
	for _, raw := range splitCSV(q.Get("categories")) {
		c, err := ParseCategory(raw)
		if err != nil {
			return time.Time{}, Filter{}, err
		}
		f.Categories = append(f.Categories, c)
	}

	return selected, f, nil
}

func splitCSV(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "reminder not found", http.StatusNotFound)
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

func toReminderResponses(items []Reminder, loc *time.Location) []reminderResponse {
	out := make([]reminderResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toReminderResponse(r, loc))
	}
	return out
}

func toReminderResponse(r Reminder, loc *time.Location) reminderResponse {
	return reminderResponse{
		ID:          r.ID,
		PetID:       r.PetID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		ScheduledAt: r.ScheduledAt.In(loc),
		Date:        DateString(r.ScheduledAt, loc),
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
