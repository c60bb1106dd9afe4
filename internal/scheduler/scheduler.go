// Package scheduler corre el barrido periódico de recordatorios vencidos.
package scheduler

import (
	"context"
	"sync"
	"time"

	"pet-tracker/internal/domain/reminders"
	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/ports/notify"

	"github.com/go-co-op/gocron/v2"
)

// DueSource lo implementa *reminders.Service.
type DueSource interface {
	DueBetween(ctx context.Context, from, to time.Time) ([]reminders.Reminder, error)
}

// Sweeper recuerda hasta dónde barrió. Cada pasada cubre (last, now].
type Sweeper struct {
	src      DueSource
	notifier notify.Notifier
	log      logger.Logger

	mu   sync.Mutex
	last time.Time
}

// NewSweeper arranca en start: lo vencido antes no se notifica.
func NewSweeper(src DueSource, n notify.Notifier, log logger.Logger, start time.Time) *Sweeper {
	if log == nil {
		log = logger.Nop()
	}
	return &Sweeper{src: src, notifier: n, log: log, last: start}
}

// Sweep notifica lo vencido hasta now y devuelve cuántos se entregaron.
// Si la consulta falla la ventana no avanza y se reintenta en la próxima pasada.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !now.After(s.last) {
		return 0, nil
	}

	due, err := s.src.DueBetween(ctx, s.last, now)
	if err != nil {
		s.log.Error("notify sweep failed", map[string]any{
			"from":  s.last,
			"to":    now,
			"error": err.Error(),
		})
		return 0, err
	}

	sent := 0
	for _, r := range due {
		err := s.notifier.Notify(ctx, notify.Due{
			ReminderID:  r.ID,
			OwnerUserID: r.OwnerUserID,
			PetID:       r.PetID,
			Title:       r.Title,
			Category:    string(r.Category),
			ScheduledAt: r.ScheduledAt,
		})
		if err != nil {
			s.log.Warn("notify failed", map[string]any{
				"reminder_id": r.ID,
				"error":       err.Error(),
			})
			continue
		}
		sent++
	}

	s.last = now
	return sent, nil
}

// Start registra el barrido cada `every` y arranca el scheduler. Quien llama hace Shutdown.
func Start(sw *Sweeper, every time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), every)
			defer cancel()
			_, _ = sw.Sweep(ctx, time.Now())
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	return s, nil
}

// LogNotifier deja la notificación en el log. La entrega push vive fuera de este servicio.
type LogNotifier struct {
	Log logger.Logger
}

func (n LogNotifier) Notify(_ context.Context, d notify.Due) error {
	n.Log.Info("reminder due", map[string]any{
		"reminder_id":  d.ReminderID,
		"user_id":      d.OwnerUserID,
		"pet_id":       d.PetID,
		"title":        d.Title,
		"category":     d.Category,
		"scheduled_at": d.ScheduledAt,
	})
	return nil
}
