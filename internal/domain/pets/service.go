package pets

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/ports/realtime"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
	ErrPhotoUpload  = errors.New("could not upload photo")
)

var colorRx = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type Service struct {
	repo       Repository
	hub        realtime.Hub
	dependents []Dependent
	now        func() time.Time
}

// NewService acepta hub nil (sin tiempo real).
func NewService(repo Repository, hub realtime.Hub) *Service {
	return &Service{
		repo: repo,
		hub:  hub,
		now:  time.Now,
	}
}

// OnDelete registra módulos que se limpian antes de borrar una mascota.
func (s *Service) OnDelete(deps ...Dependent) {
	s.dependents = append(s.dependents, deps...)
}

type CreateInput struct {
	Name     string
	Species  string
	Breed    string
	AgeYears *int
	PhotoURL string
	Color    string
}

// ValidateCreate aplica las reglas del alta sin tocar el store.
// El handler multipart la llama antes de subir la foto.
func ValidateCreate(in CreateInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.AgeYears != nil && *in.AgeYears < 0 {
		return fmt.Errorf("%w: age must be >= 0", ErrInvalidInput)
	}
	if c := strings.TrimSpace(in.Color); c != "" && !colorRx.MatchString(c) {
		return fmt.Errorf("%w: color must be #rgb or #rrggbb", ErrInvalidInput)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	if err := ValidateCreate(in); err != nil {
		return Pet{}, err
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		existing, err := s.repo.ListByOwner(ctx, ownerUserID)
		if err != nil {
			return Pet{}, err
		}
		color = Palette[len(existing)%len(Palette)]
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     Species(strings.ToLower(strings.TrimSpace(in.Species))),
		Breed:       strings.TrimSpace(in.Breed),
		AgeYears:    in.AgeYears,
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	s.publish(ctx, p.OwnerUserID, realtime.OpCreated, p.ID)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Colors arma la tabla petID -> color que consume el calendario.
func (s *Service) Colors(ctx context.Context, ownerUserID string) (map[string]string, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(items))
	for _, p := range items {
		if p.Color != "" {
			out[p.ID] = p.Color
		}
	}
	return out, nil
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	Name     *string
	Species  *string
	Breed    *string
	AgeYears *int
	Color    *string
	PhotoURL *string
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Pet, error) {
	p, err := s.OwnedBy(ctx, id, ownerUserID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Species != nil {
		p.Species = Species(strings.ToLower(strings.TrimSpace(*in.Species)))
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.AgeYears != nil {
		if *in.AgeYears < 0 {
			return Pet{}, fmt.Errorf("%w: age must be >= 0", ErrInvalidInput)
		}
		age := *in.AgeYears
		p.AgeYears = &age
	}
	if in.Color != nil {
		c := strings.TrimSpace(*in.Color)
		if !colorRx.MatchString(c) {
			return Pet{}, fmt.Errorf("%w: color must be #rgb or #rrggbb", ErrInvalidInput)
		}
		p.Color = c
	}
	if in.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	s.publish(ctx, p.OwnerUserID, realtime.OpUpdated, p.ID)
	return p, nil
}

// LinkCollar asocia un código de collar y lo deja activo.
func (s *Service) LinkCollar(ctx context.Context, id, ownerUserID, code string) (Pet, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Pet{}, fmt.Errorf("%w: collar code is required", ErrInvalidInput)
	}

	p, err := s.OwnedBy(ctx, id, ownerUserID)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	p.Collar = Collar{Code: code, LinkedAt: &now, Active: true}
	p.UpdatedAt = now

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	s.publish(ctx, p.OwnerUserID, realtime.OpUpdated, p.ID)
	return p, nil
}

// UnlinkCollar desactiva el collar pero conserva código y fecha como histórico.
func (s *Service) UnlinkCollar(ctx context.Context, id, ownerUserID string) (Pet, error) {
	p, err := s.OwnedBy(ctx, id, ownerUserID)
	if err != nil {
		return Pet{}, err
	}

	// Idempotente
	if !p.Collar.Active {
		return p, nil
	}

	p.Collar.Active = false
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	s.publish(ctx, p.OwnerUserID, realtime.OpUpdated, p.ID)
	return p, nil
}

// Delete borra en cascada: primero recordatorios y registros, después la mascota.
// Si falla algún dependiente se corta antes de tocar la mascota.
func (s *Service) Delete(ctx context.Context, id, ownerUserID string, choice confirm.Choice) error {
	if err := confirm.Require(choice); err != nil {
		return err
	}

	p, err := s.OwnedBy(ctx, id, ownerUserID)
	if err != nil {
		return err
	}

	for _, d := range s.dependents {
		if err := d.DeleteByPet(ctx, p.ID); err != nil {
			return fmt.Errorf("cascade delete pet %s: %w", p.ID, err)
		}
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	s.publish(ctx, p.OwnerUserID, realtime.OpDeleted, p.ID)
	return nil
}

func (s *Service) publish(ctx context.Context, ownerUserID string, op realtime.Op, id string) {
	if s.hub == nil {
		return
	}
	// best-effort: los listeners son eventualmente consistentes
	_ = s.hub.Publish(ctx, realtime.Event{
		Topic: realtime.PetsTopic(ownerUserID),
		Op:    op,
		ID:    id,
	})
}
