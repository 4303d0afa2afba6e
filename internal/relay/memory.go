package relay

import (
	"context"
	"sync"

	"jobboard-backend/internal/shared/metrics"
)

// MemoryRelay is an in-process relay. It backs tests and single-process runs
// where no shared store is available; cross-process writers cannot reach it.
type MemoryRelay struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewMemoryRelay() *MemoryRelay {
	return &MemoryRelay{subs: make(map[string]map[*Subscription]struct{})}
}

func (r *MemoryRelay) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subs[ev.SessionID]
	if len(subs) == 0 {
		metrics.IncEventsDropped()
		return nil
	}
	for sub := range subs {
		select {
		case sub.events <- ev:
		default:
			// Subscriber buffer full; best-effort delivery drops the event.
			metrics.IncEventsDropped()
		}
	}
	return nil
}

func (r *MemoryRelay) Subscribe(ctx context.Context, sessionID string) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var sub *Subscription
	sub = newSubscription(func() {
		r.mu.Lock()
		if set, ok := r.subs[sessionID]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(r.subs, sessionID)
			}
		}
		r.mu.Unlock()
		close(sub.events)
	})

	if r.subs[sessionID] == nil {
		r.subs[sessionID] = make(map[*Subscription]struct{})
	}
	r.subs[sessionID][sub] = struct{}{}
	return sub, nil
}

// SubscriberCount reports how many subscriptions are open for a session.
func (r *MemoryRelay) SubscriberCount(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[sessionID])
}
