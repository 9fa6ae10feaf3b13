package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/handycalc/internal/logger"
	"github.com/ayusman/handycalc/internal/session"
)

const (
	writeWait  = 2 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Publisher fans out session snapshots.
type Publisher interface {
	Snapshot() session.Snapshot
	Subscribe() (<-chan session.Snapshot, func())
}

// EventsHandler pushes a JSON snapshot to each WebSocket client after
// every frame cycle and command.
type EventsHandler struct {
	pub Publisher
	log logger.Logger
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(pub Publisher, log logger.Logger) *EventsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &EventsHandler{pub: pub, log: log}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn(r.Context(), "websocket upgrade error", logger.Error(err))
		return
	}
	defer conn.Close()

	snaps, unsubscribe := h.pub.Subscribe()
	defer unsubscribe()

	// The reader notices when the client goes away
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.readLoop(conn, cancel)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := h.send(conn, h.pub.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			if err := h.send(conn, snap); err != nil {
				h.log.Debug(ctx, "websocket write failed", logger.Error(err))
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *EventsHandler) send(conn *websocket.Conn, snap session.Snapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snap)
}

// readLoop discards client messages and cancels on close.
func (h *EventsHandler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
