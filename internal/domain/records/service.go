package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-tracker/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type PetOwnership interface {
	OwnedBy(ctx context.Context, petID, userID string) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetOwnership
	now  func() time.Time
}

func NewService(repo Repository, petsLookup PetOwnership) *Service {
	return &Service{
		repo: repo,
		pets: petsLookup,
		now:  time.Now,
	}
}

// Append agrega un registro. No hay update ni delete individual.
func (s *Service) Append(ctx context.Context, ownerUserID, petID string, data Data, note string) (Record, error) {
	if data == nil {
		return Record{}, fmt.Errorf("%w: record data is required", ErrInvalidInput)
	}
	if err := data.validate(); err != nil {
		return Record{}, err
	}
	if err := s.checkPet(ctx, petID, ownerUserID); err != nil {
		return Record{}, err
	}

	r := Record{
		ID:        uuid.NewString(),
		PetID:     petID,
		CreatedAt: s.now(),
		Note:      strings.TrimSpace(note),
		Data:      data,
	}
	if err := s.repo.Append(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *Service) ListRecent(ctx context.Context, ownerUserID, petID string, kind Kind, limit int) ([]Record, error) {
	if err := s.checkPet(ctx, petID, ownerUserID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return s.repo.ListRecent(ctx, petID, kind, limit)
}

// RecentByKind trae los últimos n registros de cada tipo.
// No valida dueño: lo hace quien llama.
func (s *Service) RecentByKind(ctx context.Context, petID string, n int) (map[Kind][]Record, error) {
	out := make(map[Kind][]Record, len(Kinds))
	for _, k := range Kinds {
		items, err := s.repo.ListRecent(ctx, petID, k, n)
		if err != nil {
			return nil, fmt.Errorf("list %s records: %w", k, err)
		}
		out[k] = items
	}
	return out, nil
}

// DeleteByPet implementa pets.Dependent.
func (s *Service) DeleteByPet(ctx context.Context, petID string) error {
	return s.repo.DeleteByPet(ctx, petID)
}

func (s *Service) checkPet(ctx context.Context, petID, ownerUserID string) error {
	if strings.TrimSpace(petID) == "" {
		return ErrNotFound
	}
	if s.pets == nil {
		return nil
	}
	if _, err := s.pets.OwnedBy(ctx, petID, ownerUserID); err != nil {
		if errors.Is(err, pets.ErrNotFound) || errors.Is(err, pets.ErrForbidden) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
