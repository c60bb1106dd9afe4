// Package client habla con la API HTTP de pet-tracker. Lo usan petctl y la agenda.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/domain/insights"
	"pet-tracker/internal/domain/reminders"
	"pet-tracker/internal/platform/httpclient"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Options struct {
	BaseURL string
	Timeout time.Duration

	// Token va como Bearer. Sin token y con DebugUserID se usa el header de modo dev.
	Token       string
	DebugUserID string
}

type Client struct {
	http *httpclient.Client
}

func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("client: base url is required")
	}
	hc, err := httpclient.NewWithBaseURL(opts.BaseURL, opts.Timeout)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.TrimSpace(opts.Token) != "":
		hc.Headers["Authorization"] = "Bearer " + strings.TrimSpace(opts.Token)
	case strings.TrimSpace(opts.DebugUserID) != "":
		hc.Headers["X-Debug-User-ID"] = strings.TrimSpace(opts.DebugUserID)
	}

	return &Client{http: hc}, nil
}

type Pet struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Color   string `json:"color"`
}

type reminderDTO struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func (d reminderDTO) toDomain() reminders.Reminder {
	return reminders.Reminder{
		ID:          d.ID,
		PetID:       d.PetID,
		Title:       d.Title,
		Description: d.Description,
		Category:    reminders.Category(d.Category),
		ScheduledAt: d.ScheduledAt,
		Completed:   d.Completed,
		CreatedAt:   d.CreatedAt,
	}
}

type saveRequest struct {
	PetID       *string `json:"pet_id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	ScheduledAt *string `json:"scheduled_at,omitempty"`
}

func (c *Client) Pets(ctx context.Context) ([]Pet, error) {
	var out []Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pets", nil, nil, &out); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Month trae los recordatorios del mes de date y la tabla de colores de las mascotas.
func (c *Client) Month(ctx context.Context, date string) ([]reminders.Reminder, map[string]string, error) {
	var items []reminderDTO
	path := "/reminders?" + url.Values{"date": {date}}.Encode()
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &items); err != nil {
		return nil, nil, mapError(err)
	}

	pets, err := c.Pets(ctx)
	if err != nil {
		return nil, nil, err
	}

	colors := make(map[string]string, len(pets))
	for _, p := range pets {
		if p.Color != "" {
			colors[p.ID] = p.Color
		}
	}

	out := make([]reminders.Reminder, 0, len(items))
	for _, it := range items {
		out = append(out, it.toDomain())
	}
	return out, colors, nil
}

// Save hace POST sin id y PATCH con id.
func (c *Client) Save(ctx context.Context, in reminders.SaveInput) (reminders.Reminder, error) {
	body := saveRequest{
		PetID:       in.PetID,
		Title:       in.Title,
		Description: in.Description,
	}
	if in.Category != nil {
		cat := string(*in.Category)
		body.Category = &cat
	}
	if in.ScheduledAt != nil {
		at := in.ScheduledAt.Format(time.RFC3339)
		body.ScheduledAt = &at
	}

	method, path := http.MethodPost, "/reminders"
	if id := strings.TrimSpace(in.ID); id != "" {
		method, path = http.MethodPatch, "/reminders/"+url.PathEscape(id)
	}

	var out reminderDTO
	if err := c.http.DoJSON(ctx, method, path, nil, body, &out); err != nil {
		return reminders.Reminder{}, mapError(err)
	}
	return out.toDomain(), nil
}

func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) (reminders.Reminder, error) {
	var out reminderDTO
	body := map[string]bool{"completed": completed}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/reminders/"+url.PathEscape(id)+"/completed", nil, body, &out); err != nil {
		return reminders.Reminder{}, mapError(err)
	}
	return out.toDomain(), nil
}

// Remove manda la confirmación explícita; quien llama ya preguntó al usuario.
func (c *Client) Remove(ctx context.Context, id string) error {
	path := "/reminders/" + url.PathEscape(id) + "?" + url.Values{"confirm": {string(confirm.Delete)}}.Encode()
	if err := c.http.DoJSON(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *Client) Insights(ctx context.Context, petID string) (insights.Insights, error) {
	var out insights.Insights
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pets/"+url.PathEscape(petID)+"/insights", nil, nil, &out); err != nil {
		return insights.Insights{}, mapError(err)
	}
	return out, nil
}

func mapError(err error) error {
	switch httpclient.StatusCode(err) {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case http.StatusPreconditionRequired:
		return fmt.Errorf("%w: %v", confirm.ErrRequired, err)
	default:
		return err
	}
}
