package events

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	clientQueueSize = 32
	writeTimeout    = 5 * time.Second
)

// Hub fans events out to the websocket connections of their owner.
// Slow clients lose events instead of holding up the bus.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*client]struct{}

	logger *logger.Logger
}

type client struct {
	userID int64
	send   chan models.EntityChanged
}

func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[int64]map[*client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) HandleEvent(ctx context.Context, evt models.EntityChanged) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[evt.UserID] {
		select {
		case c.send <- evt:
		default:
			logger.FromContext(ctx).Warn().
				Str("func", "*Hub.HandleEvent").
				Int64("user_id", evt.UserID).
				Msg("client queue is full, dropping event")
		}
	}
	return nil
}

// Connections returns the number of open streams of a user.
func (h *Hub) Connections(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Serve upgrades the request and streams the user's events as JSON text
// messages until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID int64) {
	log := logger.FromRequest(r)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Hub.Serve").Msg("websocket accept failed")
		return
	}
	defer conn.CloseNow()

	c := &client{userID: userID, send: make(chan models.EntityChanged, clientQueueSize)}
	h.register(c)
	defer h.unregister(c)

	// the stream is one-way; CloseRead handles pings and notices the close
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			log.Debug().Int64("user_id", userID).Msg("event stream closed")
			return
		case evt := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err = wsjson.Write(writeCtx, conn, evt)
			cancel()
			if err != nil {
				log.Err(err).Str("func", "*Hub.Serve").Int64("user_id", userID).Msg("failed to write event")
				return
			}
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*client]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients[c.userID], c)
	if len(h.clients[c.userID]) == 0 {
		delete(h.clients, c.userID)
	}
}
