package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mathduel/mathduel/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong before the connection is
	// considered dead
	pongWait = 60 * time.Second

	// Time between keepalive pings; must be under pongWait
	pingPeriod = 54 * time.Second

	// Buffer size for outgoing frames
	sendBufferSize = 256
)

// Client is one player's live connection. Reads and writes each run on
// their own goroutine; the send channel is the only path to the wire.
type Client struct {
	hub       *Hub
	events    EventSink
	playerID  model.PlayerID
	conn      *websocket.Conn
	send      chan []byte
	logger    *slog.Logger
	closeOnce sync.Once
}

// EventSink receives decoded inbound events from a client connection
type EventSink interface {
	HandleSearch(ctx context.Context, playerID model.PlayerID) error
	HandleAnswer(ctx context.Context, playerID model.PlayerID, answer int) error
	HandleLeaderboard(ctx context.Context, playerID model.PlayerID) error
	HandleDisconnect(ctx context.Context, playerID model.PlayerID)
}

func newClient(hub *Hub, events EventSink, playerID model.PlayerID, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		hub:      hub,
		events:   events,
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		logger: logger.With(
			slog.String("component", "ws"),
			slog.String("player_id", string(playerID)),
		),
	}
}

// close shuts the send channel exactly once and closes the socket
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// readPump reads frames off the wire until the connection dies, then
// unbinds the client and reports the disconnect to the game layer
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
		c.events.HandleDisconnect(context.Background(), c.playerID)
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("connection read error", slog.String("error", err.Error()))
			}
			return
		}
		c.dispatch(message)
	}
}

// dispatch decodes an inbound frame and routes it. Malformed frames and
// handler errors are logged and the connection stays up; the client is
// told nothing it could act on.
func (c *Client) dispatch(message []byte) {
	var envelope Envelope
	if err := json.Unmarshal(message, &envelope); err != nil {
		c.logger.Warn("malformed frame", slog.String("error", err.Error()))
		return
	}

	ctx := context.Background()
	var err error
	switch envelope.Event {
	case model.EventSearchGame:
		err = c.events.HandleSearch(ctx, c.playerID)

	case model.EventAnswer:
		var payload model.AnswerPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			c.logger.Warn("malformed answer payload", slog.String("error", err.Error()))
			return
		}
		err = c.events.HandleAnswer(ctx, c.playerID, payload.Answer)

	case model.EventLeaderboardRequest:
		err = c.events.HandleLeaderboard(ctx, c.playerID)

	default:
		c.logger.Warn("unknown event", slog.String("event", string(envelope.Event)))
		return
	}

	if err != nil {
		c.logger.Warn("event handling failed",
			slog.String("event", string(envelope.Event)),
			slog.String("error", err.Error()),
		)
	}
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel; say goodbye properly
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
