package term

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"snakearena/game"
	"snakearena/server"
)

// Remote is a client of a snakearena server room. It receives snapshots
// and sends inputs; the server owns the session.
type Remote struct {
	ws    *websocket.Conn
	codec server.Codec
	log   *zap.Logger

	mu  sync.Mutex // serializes writes
	seq int64

	states chan game.Snapshot
	done   chan struct{}
}

// DialRemote connects to addr (host:port) and joins room as player.
// codec is "json" or "msgpack".
func DialRemote(ctx context.Context, addr, room, player, codec string, log *zap.Logger) (*Remote, error) {
	if log == nil {
		log = zap.NewNop()
	}
	q := url.Values{}
	q.Set("room", room)
	q.Set("player", player)
	q.Set("codec", codec)
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws", RawQuery: q.Encode()}

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	c := &Remote{
		ws:     ws,
		codec:  server.CodecByName(codec),
		log:    log,
		states: make(chan game.Snapshot, 1),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// States delivers the latest snapshots; stale ones are dropped. The channel
// is closed when the connection ends.
func (c *Remote) States() <-chan game.Snapshot { return c.states }

// Send forwards an input with the next sequence number
func (c *Remote) Send(in game.Input) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	b, err := c.codec.Marshal(server.NewInputMessage(in, c.seq))
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.ws.WriteMessage(c.codec.MessageType(), b)
}

// Close ends the connection and waits for the reader to stop
func (c *Remote) Close() error {
	c.mu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.mu.Unlock()
	err := c.ws.Close()
	<-c.done
	return err
}

func (c *Remote) readLoop() {
	defer close(c.done)
	defer close(c.states)
	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn("remote read", zap.Error(err))
			}
			return
		}
		var msg server.StateMessage
		if err := c.codec.Unmarshal(payload, &msg); err != nil {
			c.log.Debug("decode state", zap.Error(err))
			continue
		}
		// keep only the newest snapshot
		select {
		case <-c.states:
		default:
		}
		c.states <- msg.State
	}
}
