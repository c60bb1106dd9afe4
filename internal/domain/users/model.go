package users

import "time"

// Profile se crea la primera vez que el usuario autenticado pide /me.
type Profile struct {
	UserID      string
	DisplayName string
	Email       string
	PhotoURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
