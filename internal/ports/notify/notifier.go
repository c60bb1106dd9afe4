package notify

import (
	"context"
	"time"
)

// Due es lo mínimo que necesita quien entrega la notificación (push/local queda fuera de este repo).
type Due struct {
	ReminderID  string
	OwnerUserID string
	PetID       string
	Title       string
	Category    string
	ScheduledAt time.Time
}

type Notifier interface {
	Notify(ctx context.Context, d Due) error
}
