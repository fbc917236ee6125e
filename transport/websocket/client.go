package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

var (
	ErrConnectionClosed = errors.New("connection is closed")
	ErrSendBufferFull   = errors.New("send buffer is full")
)

// Client is one websocket peer. Outbound messages are queued on send and written
// by the client's write pump only.
type Client struct {
	id      string
	conn    *websocket.Conn
	session *entity.Session

	mu     sync.RWMutex
	closed bool
	send   chan []byte
}

func newClient(conn *websocket.Conn, bufferSize int) *Client {
	return &Client{
		id:      uuid.NewString(),
		conn:    conn,
		session: entity.NewSession(),
		send:    make(chan []byte, bufferSize),
	}
}

func (that *Client) ID() string {
	return that.id
}

func (that *Client) Session() *entity.Session {
	return that.session
}

// Send - encodes msg and queues it without blocking.
func (that *Client) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.closed {
		return ErrConnectionClosed
	}

	select {
	case that.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// close - stops the queue; the write pump sends a close frame and exits.
func (that *Client) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	that.closed = true
	close(that.send)
}
