package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/ports/realtime"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "pettracker:"

// RedisHub reparte eventos entre instancias usando Redis pub/sub.
type RedisHub struct {
	client *redis.Client
	log    logger.Logger
}

func NewRedisHub(client *redis.Client, log logger.Logger) *RedisHub {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisHub{client: client, log: log}
}

// NewRedisClient conecta y hace ping.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func channel(t realtime.Topic) string { return channelPrefix + string(t) }

func (h *RedisHub) Publish(ctx context.Context, ev realtime.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return h.client.Publish(ctx, channel(ev.Topic), b).Err()
}

func (h *RedisHub) Subscribe(ctx context.Context, topic realtime.Topic, fn func(realtime.Event)) (func(), error) {
	ps := h.client.Subscribe(ctx, channel(topic))

	// Esperamos la confirmación para no perder eventos publicados justo después.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() { _ = ps.Close() })
	}

	go func() {
		defer unsubscribe()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev realtime.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					h.log.Warn("realtime: bad payload", map[string]any{"channel": msg.Channel, "err": err})
					continue
				}
				fn(ev)
			}
		}
	}()

	return unsubscribe, nil
}
