package records

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"pet-tracker/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items []Record
}

func (r *testRepo) Append(ctx context.Context, rec Record) error {
	r.items = append(r.items, rec)
	return nil
}

func (r *testRepo) ListRecent(ctx context.Context, petID string, kind Kind, limit int) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.items {
		if rec.PetID == petID && (kind == "" || rec.Kind() == kind) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *testRepo) DeleteByPet(ctx context.Context, petID string) error {
	kept := r.items[:0]
	for _, rec := range r.items {
		if rec.PetID != petID {
			kept = append(kept, rec)
		}
	}
	r.items = kept
	return nil
}

type testPets map[string]string

func (p testPets) OwnedBy(ctx context.Context, petID, userID string) (pets.Pet, error) {
	owner, ok := p[petID]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	if owner != userID {
		return pets.Pet{}, pets.ErrForbidden
	}
	return pets.Pet{ID: petID, OwnerUserID: owner}, nil
}

func newTestService() (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo, testPets{"p1": "u1", "p2": "u2"})
	base := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}
	return svc, repo
}

func TestAppend_ValidatesVariant(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	cases := map[string]Data{
		"nil data":       nil,
		"zero weight":    Weight{Kg: 0},
		"negative walk":  Walk{DistanceKm: -1},
		"unknown health": Health{Event: "spa"},
		"empty note":     Note{Text: "  "},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Append(ctx, "u1", "p1", d, "")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, repo.items)
}

func TestAppend_OtherOwnersPetIsNotFound(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Append(context.Background(), "u1", "p2", Weight{Kg: 4}, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, repo.items)
}

func TestListRecent_NewestFirstByKind(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Append(ctx, "u1", "p1", Weight{Kg: 9}, "")
	require.NoError(t, err)
	_, err = svc.Append(ctx, "u1", "p1", Walk{DistanceKm: 3, DurationMin: 40}, "parque")
	require.NoError(t, err)
	last, err := svc.Append(ctx, "u1", "p1", Weight{Kg: 10}, "")
	require.NoError(t, err)

	got, err := svc.ListRecent(ctx, "u1", "p1", KindWeight, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, last.ID, got[0].ID)
	assert.Equal(t, Weight{Kg: 10}, got[0].Data)

	all, err := svc.ListRecent(ctx, "u1", "p1", "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byKind, err := svc.RecentByKind(ctx, "p1", 1)
	require.NoError(t, err)
	assert.Len(t, byKind[KindWeight], 1)
	assert.Len(t, byKind[KindWalk], 1)
	assert.Empty(t, byKind[KindHealth])
}

func TestFromValue(t *testing.T) {
	d, err := FromValue(KindWalk, json.RawMessage(`4.5`), 30)
	require.NoError(t, err)
	assert.Equal(t, Walk{DistanceKm: 4.5, DurationMin: 30}, d)

	d, err = FromValue(KindHealth, json.RawMessage(`" Visit "`), 0)
	require.NoError(t, err)
	assert.Equal(t, Health{Event: HealthVisit}, d)

	_, err = FromValue(KindWeight, json.RawMessage(`"heavy"`), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FromValue(KindNote, json.RawMessage(`12`), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeData_Stored(t *testing.T) {
	raw, err := EncodeData(Walk{DistanceKm: 2.5, DurationMin: 20})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":2.5,"duration_min":20}`, string(raw))

	d, err := DecodeData(KindWalk, raw)
	require.NoError(t, err)
	assert.Equal(t, Walk{DistanceKm: 2.5, DurationMin: 20}, d)
}
