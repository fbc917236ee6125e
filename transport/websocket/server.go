package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type roomManager interface {
	Connect(conn entity.Conn)
	Disconnect(conn entity.Conn)

	CreateRoom(conn entity.Conn) error
	JoinRoom(conn entity.Conn, roomID string) error
	LeaveRoom(conn entity.Conn) error
	MakeTurn(conn entity.Conn, cell int) error
	Restart(conn entity.Conn) error
}

type Server struct {
	logger  *slog.Logger
	manager roomManager
	conf    config.WebSocket

	upgrader websocket.Upgrader
	handlers map[string]func(client *Client, msg *Message) error

	mu      sync.Mutex
	clients map[*Client]struct{}
}

func New(logger *slog.Logger, manager roomManager, conf config.WebSocket) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		conf:    conf,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]func(*Client, *Message) error),
		clients:  make(map[*Client]struct{}),
	}

	server.handlers[entity.TypeCreateRoom] = server.handleCreateRoom
	server.handlers[entity.TypeJoinRoom] = server.handleJoinRoom
	server.handlers[entity.TypeLeaveRoom] = server.handleLeaveRoom
	server.handlers[entity.TypeMove] = server.handleMove
	server.handlers[entity.TypeRestart] = server.handleRestart

	return server
}

// ServeHTTP - upgrades the request and serves the connection until it closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "remote", req.RemoteAddr, "error", err)
		return
	}

	client := newClient(conn, that.conf.SendBufferSize)
	that.track(client)

	log.Info("WebSocket connection established", "conn", client.ID(), "remote", req.RemoteAddr)

	that.manager.Connect(client)

	go that.writePump(client)
	that.readPump(client)
}

// CloseAll - asks every connected client to close. Each one then goes through
// the regular disconnect path.
func (that *Server) CloseAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for client := range that.clients {
		client.close()
	}
}

func (that *Server) track(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[client] = struct{}{}
}

func (that *Server) untrack(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, client)
}

// readPump - processes the client's frames in order. Returns on read error or
// when the peer misses a pong.
func (that *Server) readPump(client *Client) {
	log := that.logger.With("method", "readPump", "conn", client.ID())

	defer func() {
		that.manager.Disconnect(client)
		client.close()
		that.untrack(client)
		_ = client.conn.Close()

		log.Info("WebSocket connection closed")
	}()

	client.conn.SetReadLimit(that.conf.MaxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	})

	for {
		msgType, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("unexpected close", "error", err)
			}
			return
		}

		if msgType != websocket.TextMessage {
			log.Debug("dropping non-text frame", "type", msgType)
			continue
		}

		that.dispatch(log, client, data)
	}
}

func (that *Server) dispatch(log *slog.Logger, client *Client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Debug("dropping malformed message", "error", err)
		return
	}

	handler, ok := that.handlers[msg.Type]
	if !ok {
		log.Debug("dropping message of unknown type", "type", msg.Type)
		return
	}

	if err := handler(client, &msg); err != nil {
		log.Debug("message dropped", "type", msg.Type, "error", err)
	}
}

// writePump - the only writer of the connection. Sends queued messages one frame
// each and pings the peer every ping period.
func (that *Server) writePump(client *Client) {
	log := that.logger.With("method", "writePump", "conn", client.ID())

	ticker := time.NewTicker(that.conf.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(that.conf.WriteWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(that.conf.WriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("failed to write ping", "error", err)
				return
			}
		}
	}
}
