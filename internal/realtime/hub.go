// Package realtime pushes change notifications to connected browsers.
//
// Clients are grouped into rooms, one per logical front-end page. Every
// client is always a member of the shared default room; joining a page room
// implicitly leaves the previous one. Delivery is best-effort: there is no
// persistence and no replay, a client that is not subscribed at publish time
// simply re-fetches state when it joins.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/acmlab/labsite/internal/domain"
)

// DefaultRoom is the room every connected client belongs to for its whole
// connection lifetime.
const DefaultRoom = "default"

// Hub maintains the room registry and fans events out to room members.
// All registry access is guarded by mu; join/leave/publish may run
// concurrently from request goroutines and connection read loops.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]struct{}
	log   *slog.Logger
}

// NewHub creates an empty Hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
	}
}

// Publish delivers event to every client currently subscribed to topic.
// It is fire-and-forget: a client whose outbound buffer is full is dropped
// rather than allowed to block the caller, and errors are only logged.
// Ordering within one topic matches publish call order.
func (h *Hub) Publish(topic string, event domain.Event) {
	msg, err := json.Marshal(serverMessage{
		Event: "page_refresh",
		Page:  topic,
		Data:  event,
	})
	if err != nil {
		h.log.Error("marshal change event", slog.Any("error", err))
		return
	}

	h.mu.Lock()
	room := h.rooms[topic]
	subscribers := len(room)
	stalled := make([]*Client, 0)
	for c := range room {
		select {
		case c.send <- msg:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.Unlock()

	// Drop clients that cannot keep up; they will reconnect and re-fetch.
	for _, c := range stalled {
		h.log.Warn("dropping slow realtime client", slog.String("topic", topic))
		h.Unregister(c)
		c.closeConn()
	}

	h.log.Debug("published change event",
		slog.String("topic", topic),
		slog.String("action", event.Action),
		slog.Int("subscribers", subscribers),
	)
}

// Register adds a client to the default room.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addToRoom(c, DefaultRoom)
}

// Unregister removes a client from every room and closes its send channel.
// Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.gone {
		return
	}
	c.gone = true

	h.removeFromRoom(c, DefaultRoom)
	if c.page != "" {
		h.removeFromRoom(c, c.page)
		c.page = ""
	}
	close(c.send)
}

// JoinPage subscribes a client to the given page room, leaving its previous
// page room. The default room membership is untouched.
func (h *Hub) JoinPage(c *Client, page string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.gone || page == "" || page == DefaultRoom {
		return
	}
	if c.page == page {
		return
	}
	if c.page != "" {
		h.removeFromRoom(c, c.page)
	}
	c.page = page
	h.addToRoom(c, page)
}

// RoomSize returns the number of clients subscribed to a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

// addToRoom and removeFromRoom require h.mu to be held.

func (h *Hub) addToRoom(c *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
}

func (h *Hub) removeFromRoom(c *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// serverMessage is the wire shape of every server-to-client frame.
type serverMessage struct {
	Event string `json:"event"`
	Page  string `json:"page,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// clientMessage is the wire shape of client-to-server frames.
type clientMessage struct {
	Event string `json:"event"`
	Page  string `json:"page"`
}
