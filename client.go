/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Seednode/wordrooms/rooms"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection. It implements rooms.Conn.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan rooms.Event
	log  zerolog.Logger

	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn, buffer int, logger zerolog.Logger) *Client {
	id := uuid.NewString()

	return &Client{
		id:   id,
		conn: conn,
		send: make(chan rooms.Event, buffer),
		log:  logger.With().Str("conn", id).Logger(),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

// Send queues ev without blocking. A client that cannot keep up is kicked.
func (c *Client) Send(ev rooms.Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- ev:
		return true
	default:
		c.log.Warn().Str("event", ev.Name()).Msg("send buffer full, closing connection")
		c.kick()

		return false
	}
}

// kick stops the write pump, which closes the socket and in turn ends the
// read pump.
func (c *Client) kick() {
	c.once.Do(func() { close(c.done) })
}

func (c *Client) readPump(m *rooms.Manager, hub *rooms.Hub) {
	defer func() {
		m.Leave(c.id)
		hub.Unregister(c.id)
		c.kick()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("read failed")
			}

			return
		}

		cmd, err := rooms.DecodeCommand(raw)
		if err != nil {
			c.log.Debug().Err(err).Msg("rejected message")
			hub.ToConnection(c.id, rooms.BadRequest{Message: err.Error()})

			continue
		}

		m.Dispatch(c.id, cmd)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case ev := <-c.send:
			raw, err := rooms.Encode(ev)
			if err != nil {
				c.log.Error().Err(err).Str("event", ev.Name()).Msg("encode failed")

				continue
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)

			return
		}
	}
}
