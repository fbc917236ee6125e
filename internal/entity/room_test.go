package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

type stubConn struct {
	id      string
	session *Session
}

func newStubConn(id string) *stubConn {
	return &stubConn{id: id, session: NewSession()}
}

func (that *stubConn) ID() string        { return that.id }
func (that *stubConn) Send(_ any) error  { return nil }
func (that *stubConn) Session() *Session { return that.session }

func TestRoom_Join(t *testing.T) {
	t.Run("Founder gets X and the room waits", func(t *testing.T) {
		// Given: an empty room
		room := NewRoom("1")

		// When: the first player joins
		player, err := room.Join(newStubConn("a"))

		// Then: the player is X and nobody has the turn yet
		require.NoError(t, err)
		assert.Equal(t, PlayerX, player.Mark)
		assert.Equal(t, NoMark, room.Turn)
		assert.Len(t, room.Players, 1)
	})

	t.Run("Second player gets O and X moves first", func(t *testing.T) {
		// Given: a room with X seated
		room := NewRoom("1")
		_, err := room.Join(newStubConn("a"))
		require.NoError(t, err)

		// When: the second player joins
		player, err := room.Join(newStubConn("b"))

		// Then: the joiner is O and the game starts with X
		require.NoError(t, err)
		assert.Equal(t, PlayerO, player.Mark)
		assert.Equal(t, PlayerX, room.Turn)
	})

	t.Run("Joiner takes X when only O is left", func(t *testing.T) {
		// Given: a room where X left and O stayed
		room := NewRoom("1")
		_, _ = room.Join(newStubConn("a"))
		_, _ = room.Join(newStubConn("b"))
		require.True(t, room.Leave("a"))

		// When: a new player joins
		player, err := room.Join(newStubConn("c"))

		// Then: the new player gets the free X role and X moves first
		require.NoError(t, err)
		assert.Equal(t, PlayerX, player.Mark)
		assert.Equal(t, PlayerX, room.Turn)
	})

	t.Run("Full room rejects a third player", func(t *testing.T) {
		// Given: a full room
		room := NewRoom("1")
		_, _ = room.Join(newStubConn("a"))
		_, _ = room.Join(newStubConn("b"))

		// When: a third player tries to join
		player, err := room.Join(newStubConn("c"))

		// Then: ErrRoomFull is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrRoomFull)
		assert.Nil(t, player)
		assert.Len(t, room.Players, 2)
	})

	t.Run("Closed room rejects everyone", func(t *testing.T) {
		// Given: a room whose only player left
		room := NewRoom("1")
		_, _ = room.Join(newStubConn("a"))
		room.Leave("a")

		// When: someone joins the drained room
		_, err := room.Join(newStubConn("b"))

		// Then: ErrRoomClosed is returned
		require.ErrorIs(t, err, apperror.ErrRoomClosed)
		assert.True(t, room.IsClosed())
	})
}

func TestRoom_Leave(t *testing.T) {
	t.Run("Leaving aborts the game", func(t *testing.T) {
		// Given: a finished game
		room := NewRoom("1")
		_, _ = room.Join(newStubConn("a"))
		_, _ = room.Join(newStubConn("b"))
		room.Board = [9]Mark{PlayerX, PlayerX, PlayerX, PlayerO, PlayerO}
		room.Winner = PlayerX

		// When: O leaves
		found := room.Leave("b")

		// Then: the board is empty, nobody has the turn and nobody has won
		require.True(t, found)
		assert.Equal(t, [9]Mark{}, room.Board)
		assert.Equal(t, NoMark, room.Turn)
		assert.Equal(t, NoMark, room.Winner)
		assert.False(t, room.IsClosed())
	})

	t.Run("Unknown connection is ignored", func(t *testing.T) {
		// Given: a room with one player
		room := NewRoom("1")
		_, _ = room.Join(newStubConn("a"))

		// When: a stranger leaves
		found := room.Leave("zzz")

		// Then: nothing happens
		assert.False(t, found)
		assert.Len(t, room.Players, 1)
	})
}

func TestRoom_Restart(t *testing.T) {
	t.Run("Restart with two players", func(t *testing.T) {
		// Given: a full room where O won
		room := NewRoom("1")
		_, _ = room.Join(newStubConn("a"))
		_, _ = room.Join(newStubConn("b"))
		room.Board = [9]Mark{PlayerO, PlayerO, PlayerO, PlayerX, PlayerX, EmptyCell, PlayerX}
		room.Winner = PlayerO
		room.Turn = NoMark

		// When: restart is requested
		err := room.Restart()

		// Then: X moves on an empty board
		require.NoError(t, err)
		assert.Equal(t, [9]Mark{}, room.Board)
		assert.Equal(t, PlayerX, room.Turn)
		assert.Equal(t, NoMark, room.Winner)
	})

	t.Run("Restart with one player changes nothing", func(t *testing.T) {
		// Given: a room with a single player
		room := NewRoom("1")
		_, _ = room.Join(newStubConn("a"))

		// When: restart is requested
		err := room.Restart()

		// Then: ErrNotEnoughPlayers is returned and the turn stays unset
		require.ErrorIs(t, err, apperror.ErrNotEnoughPlayers)
		assert.Equal(t, NoMark, room.Turn)
	})
}

func TestMark_MarshalJSON(t *testing.T) {
	// Given: a state message with empty cells and no winner
	room := NewRoom("1")
	room.Board[4] = PlayerX
	room.Turn = PlayerO

	// When: it is encoded
	data, err := json.Marshal(NewStateMessage(room))

	// Then: empty marks are encoded as null
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"state","board":[null,null,null,null,"X",null,null,null,null],"turn":"O","winner":null}`,
		string(data))
}

func TestNewRoomsMessage(t *testing.T) {
	// When: the lobby listing is built from no rooms
	data, err := json.Marshal(NewRoomsMessage(nil))

	// Then: rooms is an empty array, not null
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"rooms","rooms":[]}`, string(data))
}
