package users

import "context"

type Repository interface {
	// Get devuelve ErrNotFound si el usuario todavía no tiene perfil.
	Get(ctx context.Context, userID string) (Profile, error)
	Upsert(ctx context.Context, p Profile) error
}
