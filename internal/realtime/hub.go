package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// LeaderboardChannel carries invalidations for the global leaderboard
// and TV dashboards.
const LeaderboardChannel = "leaderboard"

// SessionChannel names the per-BOF-session channel.
func SessionChannel(sessionID uint) string {
	return fmt.Sprintf("bof_%d", sessionID)
}

// Event tells subscribers that rows in a table changed and the
// aggregation view must be re-queried. Push subscribers and poll-based
// fallbacks consume the same shape; nobody patches incrementally.
type Event struct {
	Type         string `json:"type"`
	Table        string `json:"table"`
	BOFSessionID uint   `json:"bof_session_id,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

// clientAction is a JSON message sent by a connected client.
type clientAction struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
}

// Client is a single websocket connection and its channel subscriptions.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	channels map[string]bool
	mu       sync.Mutex
}

// Hub maintains the set of connected clients and fans invalidation
// events out to channel subscribers.
type Hub struct {
	clients     map[*Client]bool
	channelSubs map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg

	mu sync.RWMutex
}

type broadcastMsg struct {
	channel string
	data    []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		channelSubs: make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan broadcastMsg, 256),
	}
}

// Run starts the hub's event loop. It must be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.dropClient(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.channelSubs[msg.channel] {
				select {
				case client.send <- msg.data:
				default:
					// Client's send buffer is full; drop it.
					h.dropClient(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// dropClient must be called with h.mu held.
func (h *Hub) dropClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	client.mu.Lock()
	for ch := range client.channels {
		if subs, exists := h.channelSubs[ch]; exists {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.channelSubs, ch)
			}
		}
	}
	client.mu.Unlock()
}

// Publish sends an invalidation event to all subscribers of a channel.
func (h *Hub) Publish(channel string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("realtime: failed to marshal event", zap.Error(err))
		return
	}

	h.broadcast <- broadcastMsg{channel: channel, data: data}
}

// VotesChanged, TopicsChanged and LeaderboardChanged satisfy the
// service layer's Notifier.

func (h *Hub) VotesChanged(sessionID uint) {
	h.Publish(SessionChannel(sessionID), Event{Type: "invalidate", Table: "votes", BOFSessionID: sessionID})
	h.Publish(LeaderboardChannel, Event{Type: "invalidate", Table: "votes", BOFSessionID: sessionID})
}

func (h *Hub) TopicsChanged(sessionID uint) {
	h.Publish(SessionChannel(sessionID), Event{Type: "invalidate", Table: "topics", BOFSessionID: sessionID})
	h.Publish(LeaderboardChannel, Event{Type: "invalidate", Table: "topics", BOFSessionID: sessionID})
}

func (h *Hub) LeaderboardChanged() {
	h.Publish(LeaderboardChannel, Event{Type: "invalidate", Table: "participant_achievements"})
}

func (h *Hub) subscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.mu.Lock()
	client.channels[channel] = true
	client.mu.Unlock()

	if h.channelSubs[channel] == nil {
		h.channelSubs[channel] = make(map[*Client]bool)
	}
	h.channelSubs[channel][client] = true
}

func (h *Hub) unsubscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.mu.Lock()
	delete(client.channels, channel)
	client.mu.Unlock()

	if subs, ok := h.channelSubs[channel]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.channelSubs, channel)
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("realtime: unexpected close", zap.Error(err))
			}
			break
		}

		var action clientAction
		if err := json.Unmarshal(message, &action); err != nil {
			zap.L().Warn("realtime: invalid client message", zap.Error(err))
			continue
		}

		switch action.Action {
		case "subscribe":
			if action.Channel != "" {
				c.hub.subscribe(c, action.Channel)
			}
		case "unsubscribe":
			if action.Channel != "" {
				c.hub.unsubscribe(c, action.Channel)
			}
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	// Channel closed; tell the peer we are going away.
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ServeWS upgrades the request and registers the new client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Warn("realtime: upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 256),
		channels: make(map[string]bool),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}
