package reminders

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Reminder) error
	// Update aplica solo los campos presentes en el patch.
	Update(ctx context.Context, id string, p Patch) error
	Delete(ctx context.Context, id string) error
	DeleteByPet(ctx context.Context, petID string) error
	GetByID(ctx context.Context, id string) (Reminder, error)

	// ListInRange devuelve los recordatorios del owner con from <= scheduled_at <= to,
	// ordenados por scheduled_at asc.
	ListInRange(ctx context.Context, ownerUserID string, from, to time.Time) ([]Reminder, error)

	// ListDueBetween devuelve recordatorios no completados de todos los owners
	// con from < scheduled_at <= to. Lo usa el barrido de notificaciones.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]Reminder, error)
}
