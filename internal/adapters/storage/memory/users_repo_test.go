package memory

import (
	"context"
	"testing"

	"pet-tracker/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_GetAndUpsert(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, users.ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, users.Profile{UserID: "u1", DisplayName: "Ana"}))
	require.NoError(t, repo.Upsert(ctx, users.Profile{UserID: "u1", DisplayName: "Ana María"}))

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", p.DisplayName)
}
