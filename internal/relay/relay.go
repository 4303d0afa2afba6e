// Package relay is the publish/subscribe bridge between writers (the manual
// form, chat, tool calls) and the live browser connections. Delivery is
// at-most-once: an event published while no subscription is open for its
// session is dropped and never redelivered.
package relay

import (
	"context"
	"sync"
	"time"
)

// EventTypeFieldUpdate is the only event type the relay currently carries.
const EventTypeFieldUpdate = "field_update"

// subscriptionBuffer bounds how many undelivered events a slow connection may
// hold before further events are dropped for it.
const subscriptionBuffer = 16

// Event is the transient field-update message. It is not persisted beyond the
// session's stored fields; it exists only as a pub/sub payload.
type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	FieldName string `json:"field_name"`
	Value     string `json:"value"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewFieldUpdate builds a field_update event for the given session.
func NewFieldUpdate(sessionID, fieldName, value string) Event {
	return Event{
		Type:      EventTypeFieldUpdate,
		SessionID: sessionID,
		FieldName: fieldName,
		Value:     value,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Relay fans field-update events out to every live subscription for a session.
type Relay interface {
	// Publish broadcasts the event on its session's channel. Publishing with
	// no subscribers is not an error; the event is silently dropped.
	Publish(ctx context.Context, ev Event) error
	// Subscribe opens a live, single-consumer stream of this session's events.
	// Closing it never disturbs other sessions' channels.
	Subscribe(ctx context.Context, sessionID string) (*Subscription, error)
}

// Subscription is one consumer's live event stream. The Events channel is
// closed after Close, or when the underlying transport drops.
type Subscription struct {
	events  chan Event
	closeFn func()
	once    sync.Once
}

func newSubscription(closeFn func()) *Subscription {
	return &Subscription{
		events:  make(chan Event, subscriptionBuffer),
		closeFn: closeFn,
	}
}

// Events returns the stream of events published after the subscription opened.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close tears the subscription down. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(s.closeFn)
}

func channelFor(sessionID string) string {
	return "application_updates:" + sessionID
}
