package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dzakyfr/portfolio-go/internal/domain/events"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/security"
)

const writeWait = 10 * time.Second

// StreamEnvelope is the wire format for mirrored bus messages.
type StreamEnvelope struct {
	Kind     string `json:"kind"`
	EditMode *bool  `json:"editMode,omitempty"`
	Operator string `json:"operator,omitempty"`
	At       string `json:"at"`
}

// StreamHub mirrors the broadcast bus to connected admin dashboards over
// WebSocket so a second open tab observes login, logout, and edit-mode
// toggles as they happen.
type StreamHub struct {
	bus    *Bus
	logger *logging.ChanneledLogger

	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

// NewStreamHub creates a hub subscribed to the given bus.
func NewStreamHub(bus *Bus, logger *logging.ChanneledLogger) *StreamHub {
	h := &StreamHub{
		bus:    bus,
		logger: logger,
		conns:  make(map[string]*websocket.Conn),
	}
	bus.Subscribe("stream-hub", h.forward)
	return h
}

// Attach registers a connection and returns its hub id. The caller owns the
// connection's read loop; the hub only writes.
func (h *StreamHub) Attach(conn *websocket.Conn) string {
	id := security.GenerateULID()

	h.mu.Lock()
	h.conns[id] = conn
	h.mu.Unlock()

	h.logger.Bus().Debug("Stream client attached", "id", id)
	return id
}

// Detach removes and closes a connection. Unknown ids are ignored.
func (h *StreamHub) Detach(id string) {
	h.mu.Lock()
	conn, exists := h.conns[id]
	if exists {
		delete(h.conns, id)
	}
	h.mu.Unlock()

	if exists {
		conn.Close()
		h.logger.Bus().Debug("Stream client detached", "id", id)
	}
}

// ClientCount returns the number of attached dashboard connections.
func (h *StreamHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *StreamHub) forward(msg events.Message) {
	env := StreamEnvelope{
		Kind: string(msg.Kind()),
		At:   time.Now().UTC().Format(time.RFC3339),
	}

	switch m := msg.(type) {
	case events.EditModeChanged:
		env.EditMode = &m.Enabled
	case events.AuthGranted:
		env.Operator = m.Operator.Email
	}

	payload, err := json.Marshal(env)
	if err != nil {
		h.logger.Bus().Error("Failed to marshal stream envelope", "error", err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Bus().Warn("Stream write failed, dropping client", "id", id, "error", err.Error())
			conn.Close()
			delete(h.conns, id)
		}
	}
}
