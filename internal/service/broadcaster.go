package service

import (
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// Broadcaster fans messages out to the lobby, to a room or to one connection.
// Delivery is best effort: a failed send is logged and skipped.
type Broadcaster struct {
	logger *slog.Logger
	conns  *Connections
}

func NewBroadcaster(logger *slog.Logger, conns *Connections) *Broadcaster {
	return &Broadcaster{
		logger: logger.With("component", "broadcaster"),
		conns:  conns,
	}
}

func (that *Broadcaster) ToConn(conn entity.Conn, msg any) {
	if err := conn.Send(msg); err != nil {
		that.logger.Debug("failed to send message", "conn", conn.ID(), "error", err)
	}
}

// ToRoom - sends msg to every player of room. The caller holds the room lock.
func (that *Broadcaster) ToRoom(room *entity.Room, msg any) {
	for _, player := range room.Players {
		that.ToConn(player.Conn, msg)
	}
}

// ToLobby - sends msg to every connection that is not bound to a room.
func (that *Broadcaster) ToLobby(msg any) {
	for _, conn := range that.conns.All() {
		if conn.Session().IsBound() {
			continue
		}

		that.ToConn(conn, msg)
	}
}
