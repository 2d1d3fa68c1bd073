package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

type Event string

const (
	EventMessage        Event = "message"
	EventPrivateMessage Event = "private_message"
	EventHistory        Event = "history"
	EventError          Event = "error"
)

// WireMessage is the frame exchanged over a chat websocket, in both
// directions.
type WireMessage struct {
	Event    Event            `json:"event"`
	From     string           `json:"from,omitempty"`
	To       string           `json:"to,omitempty"`
	Text     string           `json:"text,omitempty"`
	Messages []*types.Message `json:"messages,omitempty"`
	Error    string           `json:"error,omitempty"`
}

type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Outbound chan WireMessage
	done     chan struct{}
	closeOne sync.Once
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) Close() {
	c.closeOne.Do(func() {
		close(c.done)
	})
}

// Hub tracks live websocket clients per user. A user may hold several
// connections; a direct message is delivered to all of them.
type Hub struct {
	mu     sync.RWMutex
	log    *logger.Logger
	byUser map[uuid.UUID]map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:    log.With("component", "ChatHub"),
		byUser: make(map[uuid.UUID]map[*Client]bool),
	}
}

func (h *Hub) NewClient(userID uuid.UUID) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Outbound: make(chan WireMessage, 16),
		done:     make(chan struct{}),
	}
}

func (h *Hub) AddClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.byUser[client.UserID]
	if !exists {
		clients = make(map[*Client]bool)
		h.byUser[client.UserID] = clients
	}
	clients[client] = true
	h.log.Debug("Chat client connected", "clientID", client.ID, "user_id", client.UserID)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.byUser[client.UserID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.byUser, client.UserID)
		}
	}
	client.Close()
	h.log.Debug("Chat client disconnected", "clientID", client.ID, "user_id", client.UserID)
}

// SendToUser delivers to every live connection of one user. Slow clients are
// skipped rather than blocking the sender.
func (h *Hub) SendToUser(userID uuid.UUID, msg WireMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.byUser[userID] {
		select {
		case client.Outbound <- msg:
		default:
			h.log.Warn("Dropping chat message for slow client", "clientID", client.ID)
		}
	}
}

func (h *Hub) Broadcast(msg WireMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.byUser {
		for client := range clients {
			select {
			case client.Outbound <- msg:
			default:
				h.log.Warn("Dropping chat broadcast for slow client", "clientID", client.ID)
			}
		}
	}
}
