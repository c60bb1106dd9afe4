// Package sse expone una suscripción realtime.Hub como server-sent events.
// Cada cambio dispara una relectura completa: el cliente siempre recibe un snapshot, nunca un diff.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/ports/realtime"
)

const heartbeatEvery = 25 * time.Second

// SnapshotFunc lee el estado actual de la colección suscrita.
type SnapshotFunc func(ctx context.Context) (any, error)

func Stream(w http.ResponseWriter, r *http.Request, hub realtime.Hub, topic realtime.Topic, snapshot SnapshotFunc, log logger.Logger) {
	if hub == nil {
		http.Error(w, "realtime not configured", http.StatusServiceUnavailable)
		return
	}
	if log == nil {
		log = logger.Nop()
	}

	ctx := r.Context()
	rc := http.NewResponseController(w)

	// Un aviso pendiente alcanza: el snapshot siguiente ya incluye todos los cambios.
	changed := make(chan struct{}, 1)
	unsubscribe, err := hub.Subscribe(ctx, topic, func(realtime.Event) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		log.Error("realtime subscribe failed", map[string]any{"topic": string(topic), "err": err})
		http.Error(w, "could not subscribe", http.StatusInternalServerError)
		return
	}
	defer unsubscribe()

	// El stream vive más que el WriteTimeout del server.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func() error {
		v, err := snapshot(ctx)
		if err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", b); err != nil {
			return err
		}
		return rc.Flush()
	}

	if err := send(); err != nil {
		log.Error("realtime snapshot failed", map[string]any{"topic": string(topic), "err": err})
		return
	}

	ticker := time.NewTicker(heartbeatEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-changed:
			if err := send(); err != nil {
				log.Warn("realtime snapshot failed", map[string]any{"topic": string(topic), "err": err})
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
