package relay

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"jobboard-backend/internal/shared/telemetry"
)

// RedisRelay bridges writers and connections through Redis pub/sub, so a tool
// call handled by one process reaches a browser connected to another. Redis
// pub/sub keeps no backlog, which is exactly the delivery contract here.
type RedisRelay struct {
	Client *redis.Client
}

func NewRedisRelay(client *redis.Client) *RedisRelay {
	return &RedisRelay{Client: client}
}

func (r *RedisRelay) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return r.Client.Publish(ctx, channelFor(ev.SessionID), payload).Err()
}

func (r *RedisRelay) Subscribe(ctx context.Context, sessionID string) (*Subscription, error) {
	ps := r.Client.Subscribe(ctx, channelFor(sessionID))

	// Confirm the subscription before handing the stream out, so events
	// published after Subscribe returns are not missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := newSubscription(func() {
		_ = ps.Close()
	})

	go func() {
		defer close(sub.events)
		for msg := range ps.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				telemetry.Error("relay.decode_failed", map[string]any{
					"session_id": sessionID,
					"error":      err.Error(),
				})
				continue
			}
			select {
			case sub.events <- ev:
			default:
				// Subscriber buffer full; best-effort delivery drops the event.
			}
		}
	}()

	return sub, nil
}
