package insights

import (
	"context"
	"errors"
	"time"

	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/domain/records"
)

// RecentPerKind es cuántos registros de cada tipo se leen para derivar.
const RecentPerKind = 10

var ErrNotFound = errors.New("pet not found")

type PetOwnership interface {
	OwnedBy(ctx context.Context, petID, userID string) (pets.Pet, error)
}

type RecordSource interface {
	RecentByKind(ctx context.Context, petID string, n int) (map[records.Kind][]records.Record, error)
}

type Service struct {
	pets    PetOwnership
	records RecordSource
	now     func() time.Time
}

func NewService(petsLookup PetOwnership, src RecordSource) *Service {
	return &Service{
		pets:    petsLookup,
		records: src,
		now:     time.Now,
	}
}

func (s *Service) ForPet(ctx context.Context, ownerUserID, petID string) (Insights, error) {
	if _, err := s.pets.OwnedBy(ctx, petID, ownerUserID); err != nil {
		if errors.Is(err, pets.ErrNotFound) || errors.Is(err, pets.ErrForbidden) {
			return Insights{}, ErrNotFound
		}
		return Insights{}, err
	}

	byKind, err := s.records.RecentByKind(ctx, petID, RecentPerKind)
	if err != nil {
		return Insights{}, err
	}
	return Derive(byKind, s.now()), nil
}
