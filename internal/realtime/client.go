package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size; clients only send tiny join frames.
	maxMessageSize = 512

	// Outbound buffer per client. A client this far behind is dropped.
	sendBufferSize = 16
)

// Client is one connected websocket peer.
//
// page and gone are guarded by the hub mutex; send is written by the hub and
// drained by writePump.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	page string
	gone bool
}

// ServeWS returns a gin handler that upgrades the connection and runs the
// client until it disconnects. allowedOrigins follows the CORS allowlist
// semantics ("*" or exact match); an empty list rejects all cross-origin
// upgrades.
func ServeWS(hub *Hub, allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return originAllowed(allowedOrigins, origin)
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error response.
			hub.log.Warn("websocket upgrade failed", slog.Any("error", err))
			return
		}

		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, sendBufferSize),
		}
		hub.Register(client)
		client.enqueue(serverMessage{Event: "connected"})

		go client.writePump()
		go client.readPump()
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// readPump reads client frames until the connection drops. The only
// meaningful inbound frame is join_page; everything else is ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.closeConn()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("websocket read error", slog.Any("error", err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		if msg.Event == "join_page" {
			page := msg.Page
			if page == "" {
				page = "home"
			}
			c.hub.JoinPage(c, page)
			c.enqueue(serverMessage{Event: "joined_page", Page: page})
		}
	}
}

// writePump drains the send channel to the connection and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConn()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue queues a control frame for the client, dropping it if the buffer
// is full. Guarded against the closed-channel race via the hub mutex.
func (c *Client) enqueue(msg serverMessage) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}

	c.hub.mu.Lock()
	defer c.hub.mu.Unlock()
	if c.gone {
		return
	}
	select {
	case c.send <- raw:
	default:
	}
}

// closeConn closes the underlying connection if one exists. Clients built
// directly in tests have no connection.
func (c *Client) closeConn() {
	if c.conn != nil {
		c.conn.Close()
	}
}
