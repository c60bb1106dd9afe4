package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/domain/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePets struct{ owner string }

func (f fakePets) OwnedBy(ctx context.Context, petID, userID string) (pets.Pet, error) {
	if petID != "p1" {
		return pets.Pet{}, pets.ErrNotFound
	}
	if userID != f.owner {
		return pets.Pet{}, pets.ErrForbidden
	}
	return pets.Pet{ID: petID, OwnerUserID: f.owner}, nil
}

type fakeSource struct {
	asked int
	data  map[records.Kind][]records.Record
	err   error
}

func (f *fakeSource) RecentByKind(ctx context.Context, petID string, n int) (map[records.Kind][]records.Record, error) {
	f.asked = n
	return f.data, f.err
}

func TestForPet(t *testing.T) {
	src := &fakeSource{data: map[records.Kind][]records.Record{
		records.KindHealth: {rec(daysAgo(20), records.Health{Event: records.HealthVisit})},
	}}
	svc := NewService(fakePets{owner: "u1"}, src)
	svc.now = func() time.Time { return asOf }

	got, err := svc.ForPet(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, RecentPerKind, src.asked)
	assert.Equal(t, HealthExcellent, got.HealthStatus)

	_, err = svc.ForPet(context.Background(), "u2", "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	src.err = errors.New("db down")
	_, err = svc.ForPet(context.Background(), "u1", "p1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
