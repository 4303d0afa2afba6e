// Package realtime holds one long-lived WebSocket per open browser tab, keyed
// by session id, and forwards relayed field updates to it. A connection that
// drops is discarded with no backlog: a reconnecting client only sees events
// published after the new connection opened.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"jobboard-backend/internal/relay"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/telemetry"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Handler upgrades /ws/{session_id} requests and pumps relay events out.
type Handler struct {
	Relay    relay.Relay
	upgrader websocket.Upgrader
}

// NewHandler constructs a Handler.
func NewHandler(r relay.Relay) *Handler {
	return &Handler{
		Relay: r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Session id knowledge is the only credential on this boundary.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// RegisterRoutes attaches the WebSocket endpoint to the engine root.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws/:session_id", h.serve)
}

func (h *Handler) serve(c *gin.Context) {
	sessionID := c.Param("session_id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		telemetry.Error("ws.upgrade_failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	// The subscription must outlive the request context once the connection
	// is hijacked.
	sub, err := h.Relay.Subscribe(context.Background(), sessionID)
	if err != nil {
		telemetry.Error("ws.subscribe_failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		_ = conn.Close()
		return
	}

	metrics.IncConnectionsOpened()
	telemetry.Info("ws.connected", map[string]any{"session_id": sessionID})

	done := make(chan struct{})
	go readPump(conn, sessionID, done)
	writePump(conn, sub, sessionID, done)

	sub.Close()
	_ = conn.Close()
	metrics.IncConnectionsClosed()
	telemetry.Info("ws.disconnected", map[string]any{"session_id": sessionID})
}

// readPump drains inbound frames to detect the close and keep pong deadlines
// fresh. Inbound payloads are otherwise ignored; the channel is server-push.
func readPump(conn *websocket.Conn, sessionID string, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				telemetry.Warn("ws.read_error", map[string]any{
					"session_id": sessionID,
					"error":      err.Error(),
				})
			}
			return
		}
	}
}

// writePump forwards relay events as JSON frames and pings on a fixed period.
// It returns when the subscription closes, the peer goes away, or a write fails.
func writePump(conn *websocket.Conn, sub *relay.Subscription, sessionID string, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				telemetry.Error("ws.encode_failed", map[string]any{
					"session_id": sessionID,
					"error":      err.Error(),
				})
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
			metrics.IncEventsDelivered()

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
