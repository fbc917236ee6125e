package entity

import (
	"encoding/json"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

// Mark is a board cell, turn or winner value. The empty mark is encoded as JSON null.
type Mark string

const (
	NoMark  Mark = ""
	PlayerX Mark = "X"
	PlayerO Mark = "O"
	Draw    Mark = "draw"

	EmptyCell = NoMark
)

const MaxPlayers = 2

func (that Mark) MarshalJSON() ([]byte, error) {
	if that == NoMark {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

// Opponent returns the other role, or NoMark for anything that is not a role.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoMark
	}
}

// Conn is a live client connection as seen by the room logic.
type Conn interface {
	ID() string
	Send(msg any) error
	Session() *Session
}

type Player struct {
	Conn Conn
	Mark Mark
}

// Room is one match with its own board and at most two players.
// All fields are guarded by the room lock; callers hold it for the whole
// validate-mutate-broadcast sequence.
type Room struct {
	mu sync.Mutex

	ID      string
	Board   [9]Mark
	Turn    Mark
	Winner  Mark
	Players []*Player

	closed bool
}

func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		Players: make([]*Player, 0, MaxPlayers),
	}
}

func (that *Room) Lock() {
	that.mu.Lock()
}

func (that *Room) Unlock() {
	that.mu.Unlock()
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

// IsClosed reports whether the last player has left. A closed room is about to be
// removed from the registry and accepts no one.
func (that *Room) IsClosed() bool {
	return that.closed
}

func (that *Room) HasWinner() bool {
	return that.Winner != NoMark
}

// FreeMark returns the role the next player gets: O when X is taken, X otherwise.
func (that *Room) FreeMark() Mark {
	for _, player := range that.Players {
		if player.Mark == PlayerX {
			return PlayerO
		}
	}

	return PlayerX
}

// Join seats conn under the first free role. The room becomes playable once the
// second player is seated.
func (that *Room) Join(conn Conn) (*Player, error) {
	if that.closed {
		return nil, apperror.ErrRoomClosed
	}

	if that.IsFull() {
		return nil, apperror.ErrRoomFull
	}

	player := &Player{
		Conn: conn,
		Mark: that.FreeMark(),
	}
	that.Players = append(that.Players, player)

	if that.IsFull() && that.Turn == NoMark {
		that.Turn = PlayerX
	}

	return player, nil
}

// Leave removes the player bound to connID and aborts the game in progress.
// It reports whether the player was found. The room is closed when it drains.
func (that *Room) Leave(connID string) bool {
	for i, player := range that.Players {
		if player.Conn.ID() != connID {
			continue
		}

		that.Players = append(that.Players[:i], that.Players[i+1:]...)
		that.Reset()

		if len(that.Players) == 0 {
			that.closed = true
		}

		return true
	}

	return false
}

// Reset clears the board, the winner and the turn.
func (that *Room) Reset() {
	that.Board = [9]Mark{}
	that.Turn = NoMark
	that.Winner = NoMark
}

// Restart starts a fresh game with X to move. Only a full room can restart.
func (that *Room) Restart() error {
	if len(that.Players) != MaxPlayers {
		return apperror.ErrNotEnoughPlayers
	}

	that.Reset()
	that.Turn = PlayerX

	return nil
}

func (that *Room) PlayerByConn(connID string) *Player {
	for _, player := range that.Players {
		if player.Conn.ID() == connID {
			return player
		}
	}

	return nil
}

func (that *Room) Summary() RoomSummary {
	return RoomSummary{
		ID:      that.ID,
		Players: len(that.Players),
		Winner:  that.Winner,
	}
}

// RoomSummary is one lobby listing entry.
type RoomSummary struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Winner  Mark   `json:"winner"`
}
