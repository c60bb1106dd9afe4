package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-tracker/internal/domain/records"
)

// recordRepo es append-only: no expone update ni delete individual.
type recordRepo struct {
	mu    sync.RWMutex
	byPet map[string][]records.Record
}

func NewRecordRepo() records.Repository {
	return &recordRepo{
		byPet: make(map[string][]records.Record),
	}
}

func (r *recordRepo) Append(ctx context.Context, rec records.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	r.byPet[rec.PetID] = append(r.byPet[rec.PetID], rec)
	return nil
}

func (r *recordRepo) ListRecent(ctx context.Context, petID string, kind records.Kind, limit int) ([]records.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Record, 0)
	for _, rec := range r.byPet[petID] {
		if kind != "" && rec.Kind() != kind {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *recordRepo) DeleteByPet(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byPet, petID)
	return nil
}
