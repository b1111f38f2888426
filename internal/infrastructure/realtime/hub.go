package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub keeps one room per user; every connection of that user joins it.
type Hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("starting realtime hub")

	defer func() {
		h.closeAll()
		close(h.done)
		h.logger.Info("realtime hub gracefully stopped")
	}()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.room] == nil {
				h.rooms[c.room] = make(map[*Client]struct{})
			}
			h.rooms[c.room][c] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("client joined", zap.String("room", c.room))

		case c := <-h.unregister:
			h.remove(c)

		case <-ctx.Done():
			return
		}
	}
}

// Serve upgrades the request and joins the connection to room. The caller
// has already authenticated the request.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, room string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := newClient(h, conn, room)
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return nil
	}

	go c.writePump()
	go c.readPump()

	return nil
}

// Emit is fire-and-forget: a client whose buffer is full is dropped from
// the room instead of stalling the caller.
func (h *Hub) Emit(room, event string, payload any) {
	if h == nil {
		return
	}

	msg, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("realtime frame encode failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("slow realtime client dropped", zap.String("room", room))
			go h.drop(c)
		}
	}
}

func (h *Hub) RoomSize(room string) int {
	if h == nil {
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok = members[c]; !ok {
		return
	}
	delete(members, c)
	close(c.send)
	if len(members) == 0 {
		delete(h.rooms, c.room)
	}
	h.logger.Debug("client left", zap.String("room", c.room))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room, members := range h.rooms {
		for c := range members {
			close(c.send)
		}
		delete(h.rooms, room)
	}
}
