package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/notone/notone-go/internal/canvas"
	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/logging"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 1 << 20
)

var errBinaryFrame = errors.New("binary frames are not supported")

// Client is one websocket connection driving its own canvas session.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// mu serialises access to session between the read pump and HTTP
	// handlers.
	mu      sync.Mutex
	session *canvas.Session

	ClientID string
}

func NewClient(hub *Hub, conn *websocket.Conn, session *canvas.Session, clientID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		session:  session,
		ClientID: clientID,
	}
}

// SessionID returns the ID of the client's canvas session.
func (c *Client) SessionID() string {
	return c.session.ID()
}

// Snapshot copies the client's document.
func (c *Client) Snapshot() document.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snapshot()
}

// Handle runs msg against the session and queues the replies.
func (c *Client) Handle(msg *Message) {
	c.mu.Lock()
	replies := Dispatch(c.session, msg)
	c.mu.Unlock()

	for _, r := range replies {
		c.Send(r)
	}
}

// ReadPump applies inbound frames to the session until the connection
// closes. Frames that cannot be decoded are answered with an error message
// instead of being applied.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		typ, data, err := c.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				logging.Logger().Debug("read error", "error", err, "client", c.ClientID)
			}
			return
		}
		if typ != websocket.MessageText {
			c.Send(errorMessage(0, errBinaryFrame))
			continue
		}
		c.handleFrame(data)
	}
}

// handleFrame decodes one text frame and runs it against the session.
func (c *Client) handleFrame(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		logging.Logger().Warn("invalid message", "error", err, "client", c.ClientID)
		c.Send(errorMessage(0, fmt.Errorf("invalid message: %w", err)))
		return
	}

	msg.ClientID = c.ClientID
	msg.SessionID = c.SessionID()
	c.Handle(&msg)
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				logging.Logger().Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Logger().Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		logging.Logger().Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}
