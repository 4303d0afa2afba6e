package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	sessionsCreatedTotal       atomic.Uint64
	fieldUpdatesPublishedTotal atomic.Uint64
	eventsDeliveredTotal       atomic.Uint64
	eventsDroppedTotal         atomic.Uint64
	connectionsOpenedTotal     atomic.Uint64
	connectionsClosedTotal     atomic.Uint64
	applicationsSubmittedTotal atomic.Uint64
	toolCallsTotal             atomic.Uint64

	chatDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncSessionsCreated increments the sessions created counter.
func IncSessionsCreated() {
	sessionsCreatedTotal.Add(1)
}

// IncFieldUpdatesPublished increments the published field updates counter.
func IncFieldUpdatesPublished() {
	fieldUpdatesPublishedTotal.Add(1)
}

// IncEventsDelivered increments the delivered events counter.
func IncEventsDelivered() {
	eventsDeliveredTotal.Add(1)
}

// IncEventsDropped increments the dropped events counter.
func IncEventsDropped() {
	eventsDroppedTotal.Add(1)
}

// IncConnectionsOpened increments the opened connections counter.
func IncConnectionsOpened() {
	connectionsOpenedTotal.Add(1)
}

// IncConnectionsClosed increments the closed connections counter.
func IncConnectionsClosed() {
	connectionsClosedTotal.Add(1)
}

// IncApplicationsSubmitted increments the submitted applications counter.
func IncApplicationsSubmitted() {
	applicationsSubmittedTotal.Add(1)
}

// IncToolCalls increments the tool invocation counter.
func IncToolCalls() {
	toolCallsTotal.Add(1)
}

// ObserveChatDurationMs records a chat completion duration in milliseconds.
func ObserveChatDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	chatDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "sessions_created_total", "Total application sessions created", sessionsCreatedTotal.Load())
	writeCounter(&buf, "field_updates_published_total", "Total field update events published", fieldUpdatesPublishedTotal.Load())
	writeCounter(&buf, "events_delivered_total", "Total events delivered to live connections", eventsDeliveredTotal.Load())
	writeCounter(&buf, "events_dropped_total", "Total events dropped with no live subscriber", eventsDroppedTotal.Load())
	writeCounter(&buf, "ws_connections_opened_total", "Total WebSocket connections opened", connectionsOpenedTotal.Load())
	writeCounter(&buf, "ws_connections_closed_total", "Total WebSocket connections closed", connectionsClosedTotal.Load())
	writeCounter(&buf, "applications_submitted_total", "Total applications submitted", applicationsSubmittedTotal.Load())
	writeCounter(&buf, "tool_calls_total", "Total tool invocations handled", toolCallsTotal.Load())
	writeHistogram(&buf, "chat_completion_duration_ms", "Chat completion duration in milliseconds", chatDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
