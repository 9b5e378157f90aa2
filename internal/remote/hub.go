// Package remote drives canvas sessions over websockets. Every connection
// gets its own session; messages of one connection are applied in arrival
// order on its read goroutine.
package remote

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/coder/websocket"

	"github.com/notone/notone-go/internal/canvas"
	"github.com/notone/notone-go/internal/logging"
)

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // clientID -> client
	sessions map[string]*Client // sessionID -> client

	opts canvas.Options

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
}

// NewHub creates a hub whose sessions are built from opts.
func NewHub(opts canvas.Options) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		sessions:   make(map[string]*Client),
		opts:       opts,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// NewSession creates a blank canvas with the hub's options.
func (h *Hub) NewSession() *canvas.Session {
	return canvas.New(h.opts)
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Stop ends Run and closes every open connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.RLock()
		clients := make([]*Client, 0, len(h.clients))
		for _, c := range h.clients {
			clients = append(clients, c)
		}
		h.mu.RUnlock()

		for _, c := range clients {
			if c.conn != nil {
				c.conn.Close(websocket.StatusGoingAway, "server shutting down")
			}
		}
	})
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.sessions[client.SessionID()] = client
	h.mu.Unlock()

	payload, _ := json.Marshal(WelcomePayload{ClientID: client.ClientID, SessionID: client.SessionID()})
	client.Send(&Message{Type: TypeWelcome, Payload: payload})

	logging.Logger().Info("client connected", "client", client.ClientID, "session", client.SessionID())
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ClientID)
	delete(h.sessions, client.SessionID())
	close(client.send)
	h.mu.Unlock()

	logging.Logger().Info("client disconnected", "client", client.ClientID, "session", client.SessionID())
}

// Lookup finds the client owning a session.
func (h *Hub) Lookup(sessionID string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.sessions[sessionID]
	return c, ok
}

// SessionIDs lists the live sessions, sorted.
func (h *Hub) SessionIDs() []string {
	h.mu.RLock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
