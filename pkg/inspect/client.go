package inspect

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// client is one connected WebSocket consumer. The stream is one-way: the
// server pushes event frames, the read side only services control messages.
type client struct {
	server *Server
	conn   *websocket.Conn

	// send is the per-client frame queue, drained by writePump.
	send chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func newClient(s *Server, conn *websocket.Conn) *client {
	return &client{
		server: s,
		conn:   conn,
		send:   make(chan []byte, s.config.EventBuffer),
		closed: make(chan struct{}),
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}

// writePump sends queued frames and keepalive pings until the client goes
// away.
func (c *client) writePump() {
	ticker := time.NewTicker(c.server.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.close()
		c.server.removeClient(c)
	}()

	for {
		select {
		case <-c.closed:
			return

		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.server.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.server.logger.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.server.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages, keeping the read deadline fresh so
// dead peers are detected. It returns when the connection closes.
func (c *client) readPump() {
	defer c.close()

	deadline := c.server.config.PingInterval + c.server.config.WriteTimeout
	c.conn.SetReadDeadline(time.Now().Add(deadline))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(deadline))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.server.logger.Debug("read error", "error", err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(deadline))
	}
}
