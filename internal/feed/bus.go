package feed

import (
	"context"
	"encoding/json"
	"time"

	"artistcollab/internal/domain"
	"artistcollab/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Envelope is the wire form on the redis channel: the event plus the
// project id it should fan out under.
type Envelope struct {
	ProjectID string       `json:"project_id"`
	Event     domain.Event `json:"event"`
}

// Bus routes feed events from API writes to the hub. With redis configured
// the event crosses a pub/sub channel first, so every app instance sees
// writes made on any of them. Without redis the bus degrades to in-process
// delivery, which keeps single-instance deployments and tests working.
type Bus struct {
	hub     *Hub
	rdb     *redis.Client
	channel string
}

func NewBus(hub *Hub, rdb *redis.Client, channel string) *Bus {
	return &Bus{hub: hub, rdb: rdb, channel: channel}
}

// Publish emits one event for a project. Errors are logged, not returned:
// the write already committed, and feed delivery gaps are recovered by the
// next full reload on the client.
func (b *Bus) Publish(ctx context.Context, projectID string, ev domain.Event) {
	EventsPublished.WithLabelValues(ev.Table, string(ev.Kind)).Inc()

	if b.rdb == nil {
		b.hub.Dispatch(projectID, ev)
		return
	}

	data, err := json.Marshal(Envelope{ProjectID: projectID, Event: ev})
	if err != nil {
		logger.Error("feed envelope marshal failed", "error", err)
		return
	}
	if err := b.rdb.Publish(ctx, b.channel, data).Err(); err != nil {
		logger.Error("feed publish failed", "error", err, "channel", b.channel)
	}
}

// Run bridges the redis channel into the hub until ctx is canceled.
// No-op when redis is not configured.
func (b *Bus) Run(ctx context.Context) {
	if b.rdb == nil {
		return
	}

	for {
		sub := b.rdb.Subscribe(ctx, b.channel)
		ch := sub.Channel()

	recv:
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					break recv
				}
				var env Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					logger.Error("feed envelope decode failed", "error", err)
					continue
				}
				b.hub.Dispatch(env.ProjectID, env.Event)
			}
		}

		_ = sub.Close()
		if ctx.Err() != nil {
			return
		}
		logger.Warn("feed pubsub channel closed, reconnecting")
		time.Sleep(time.Second)
	}
}
