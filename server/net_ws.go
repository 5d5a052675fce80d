package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// ClientConn wraps the outbound side of a connection
type ClientConn struct {
	ws    *websocket.Conn
	codec Codec
	send  chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func NewClientConn(ws *websocket.Conn, codec Codec) *ClientConn {
	return &ClientConn{
		ws:     ws,
		codec:  codec,
		send:   make(chan []byte, 64),
		closed: make(chan struct{}),
	}
}

// Enqueue queues a frame without blocking; when the queue is full the frame
// is dropped, the next snapshot supersedes it anyway.
func (c *ClientConn) Enqueue(b []byte) {
	select {
	case <-c.closed:
	case c.send <- b:
	default:
	}
}

// Close stops the write pump and closes the socket. Safe to call repeatedly.
func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.ws.Close()
	})
}

// writePump drains the send queue to the socket and keeps it alive with pings
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(c.codec.MessageType(), msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

// readPump decodes client messages and hands them to the room
func (c *ClientConn) readPump(room *Room, playerID PlayerID) {
	defer c.Close()
	// leaving goes through the tick goroutine like everything else
	defer room.RequestLeave(playerID, c)
	c.ws.SetReadLimit(4 << 10)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				Log.Debugf("read %s/%s: %v", room.ID, playerID, err)
			}
			return
		}
		var im InputMessage
		if err := c.codec.Unmarshal(payload, &im); err != nil {
			room.metrics.IncMalformed()
			continue
		}
		in, ok := im.ToInput()
		if !ok {
			room.metrics.IncMalformed()
			continue
		}
		room.OnInput(Input{PlayerID: playerID, Command: in, Seq: im.Seq})
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS upgrades ?room=room-1&player=alice&codec=json|msgpack
func HandleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roomID := q.Get("room")
	if roomID == "" {
		roomID = DefaultRoom
	}
	playerID := q.Get("player")
	if playerID == "" {
		http.Error(w, "missing player query", http.StatusBadRequest)
		return
	}
	room, err := GetRoomManager().GetOrCreateRoom(roomID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	client := NewClientConn(ws, CodecByName(q.Get("codec")))
	room.RequestJoin(PlayerID(playerID), client)

	go client.writePump()
	go client.readPump(room, PlayerID(playerID))
}
