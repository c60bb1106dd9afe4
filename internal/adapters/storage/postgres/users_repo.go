package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-tracker/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Get(ctx context.Context, userID string) (users.Profile, error) {
	var p users.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, email, photo_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.DisplayName, &p.Email, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return users.Profile{}, users.ErrNotFound
	}
	return p, err
}

func (r *UsersRepo) Upsert(ctx context.Context, p users.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, email, photo_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			photo_url = EXCLUDED.photo_url,
			updated_at = EXCLUDED.updated_at
	`, p.UserID, p.DisplayName, p.Email, p.PhotoURL, p.CreatedAt, p.UpdatedAt)
	return err
}
