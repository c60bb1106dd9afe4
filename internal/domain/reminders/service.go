package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("reminder not found")
)

// PetOwnership valida que el petID exista y sea del usuario. Lo implementa *pets.Service.
type PetOwnership interface {
	OwnedBy(ctx context.Context, petID, userID string) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetOwnership
	loc  *time.Location
	now  func() time.Time
}

// NewService acepta petsLookup nil (sin validar mascota) y loc nil (UTC).
func NewService(repo Repository, petsLookup PetOwnership, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo: repo,
		pets: petsLookup,
		loc:  loc,
		now:  time.Now,
	}
}

func (s *Service) Location() *time.Location { return s.loc }

// FetchMonth hace una sola consulta por rango para el mes de selected
// y después filtra en memoria (conjunción de mascota y categoría).
func (s *Service) FetchMonth(ctx context.Context, ownerUserID string, selected time.Time, f Filter) ([]Reminder, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}

	from, to := MonthWindow(selected, s.loc)
	items, err := s.repo.ListInRange(ctx, ownerUserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list reminders %s..%s: %w", from.Format(time.RFC3339), to.Format(time.RFC3339), err)
	}
	return f.Apply(items), nil
}

// SaveInput: con ID es update parcial (solo campos no-nil), sin ID es alta.
type SaveInput struct {
	ID string

	PetID       *string
	Title       *string
	Description *string
	Category    *Category
	ScheduledAt *time.Time
}

// Validate aplica las reglas que no necesitan el store, así el cliente
// puede rechazar el formulario antes de ir a la red.
// Alta: title, pet y scheduled_at obligatorios. Update: los campos presentes no pueden quedar vacíos.
func (in SaveInput) Validate() error {
	creating := strings.TrimSpace(in.ID) == ""

	if (creating || in.Title != nil) && deref(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if (creating || in.PetID != nil) && deref(in.PetID) == "" {
		return fmt.Errorf("%w: pet is required", ErrInvalidInput)
	}
	if (creating || in.ScheduledAt != nil) && (in.ScheduledAt == nil || in.ScheduledAt.IsZero()) {
		return fmt.Errorf("%w: scheduled_at is required", ErrInvalidInput)
	}
	if in.Category != nil && !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *in.Category)
	}
	return nil
}

// Save valida antes de tocar el store. Si el store falla no queda nada aplicado.
func (s *Service) Save(ctx context.Context, ownerUserID string, in SaveInput) (Reminder, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Reminder{}, ErrInvalidInput
	}

	if strings.TrimSpace(in.ID) != "" {
		return s.update(ctx, ownerUserID, in)
	}
	return s.create(ctx, ownerUserID, in)
}

func (s *Service) create(ctx context.Context, ownerUserID string, in SaveInput) (Reminder, error) {
	if err := in.Validate(); err != nil {
		return Reminder{}, err
	}

	petID := deref(in.PetID)
	cat := CategoryOther
	if in.Category != nil {
		cat = *in.Category
	}

	if err := s.checkPet(ctx, petID, ownerUserID); err != nil {
		return Reminder{}, err
	}

	r := Reminder{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		PetID:       petID,
		Title:       deref(in.Title),
		Description: deref(in.Description),
		Category:    cat,
		ScheduledAt: in.ScheduledAt.Truncate(time.Second),
		Completed:   false,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (s *Service) update(ctx context.Context, ownerUserID string, in SaveInput) (Reminder, error) {
	if err := in.Validate(); err != nil {
		return Reminder{}, err
	}
	if _, err := s.GetOwned(ctx, in.ID, ownerUserID); err != nil {
		return Reminder{}, err
	}

	var p Patch
	if in.Title != nil {
		title := deref(in.Title)
		p.Title = &title
	}
	if in.PetID != nil {
		petID := deref(in.PetID)
		if err := s.checkPet(ctx, petID, ownerUserID); err != nil {
			return Reminder{}, err
		}
		p.PetID = &petID
	}
	if in.Description != nil {
		d := deref(in.Description)
		p.Description = &d
	}
	if in.Category != nil {
		c := *in.Category
		p.Category = &c
	}
	if in.ScheduledAt != nil {
		t := in.ScheduledAt.Truncate(time.Second)
		p.ScheduledAt = &t
	}

	if !p.Empty() {
		if err := s.repo.Update(ctx, in.ID, p); err != nil {
			return Reminder{}, err
		}
	}
	return s.repo.GetByID(ctx, in.ID)
}

// ToggleCompleted solo toca el flag. Repetir con el mismo valor no es error.
func (s *Service) ToggleCompleted(ctx context.Context, ownerUserID, id string, completed bool) (Reminder, error) {
	r, err := s.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return Reminder{}, err
	}

	if err := s.repo.Update(ctx, r.ID, Patch{Completed: &completed}); err != nil {
		return Reminder{}, err
	}
	r.Completed = completed
	return r, nil
}

// Remove exige la confirmación explícita del usuario; sin ella no borra nada.
func (s *Service) Remove(ctx context.Context, ownerUserID, id string, choice confirm.Choice) error {
	if err := confirm.Require(choice); err != nil {
		return err
	}

	r, err := s.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, r.ID)
}

// GetOwned oculta como not found los recordatorios de otros usuarios.
func (s *Service) GetOwned(ctx context.Context, id, ownerUserID string) (Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Reminder{}, ErrNotFound
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Reminder{}, err
	}
	if r.OwnerUserID != ownerUserID {
		return Reminder{}, ErrNotFound
	}
	return r, nil
}

// DeleteByPet implementa pets.Dependent (cascada al borrar mascota).
func (s *Service) DeleteByPet(ctx context.Context, petID string) error {
	return s.repo.DeleteByPet(ctx, petID)
}

// DueBetween alimenta el barrido de notificaciones.
func (s *Service) DueBetween(ctx context.Context, from, to time.Time) ([]Reminder, error) {
	if !to.After(from) {
		return nil, nil
	}
	return s.repo.ListDueBetween(ctx, from, to)
}

func (s *Service) checkPet(ctx context.Context, petID, ownerUserID string) error {
	if s.pets == nil {
		return nil
	}
	if _, err := s.pets.OwnedBy(ctx, petID, ownerUserID); err != nil {
		if errors.Is(err, pets.ErrNotFound) || errors.Is(err, pets.ErrForbidden) {
			return fmt.Errorf("%w: pet %s not found", ErrInvalidInput, petID)
		}
		return err
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
