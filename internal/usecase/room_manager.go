package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"
)

type roomRegistry interface {
	Create(founder entity.Conn) (*entity.Room, *entity.Player, error)
	Get(id string) (*entity.Room, error)
	Delete(id string)
	List() []entity.RoomSummary
}

type connRegistry interface {
	Add(conn entity.Conn)
	Remove(id string)
}

type broadcaster interface {
	ToConn(conn entity.Conn, msg any)
	ToRoom(room *entity.Room, msg any)
	ToLobby(msg any)
}

type resultRecorder interface {
	Record(result *entity.Result)
}

// RoomManager applies client commands to rooms and fans out the resulting state.
//
// Lock order is lobbyMu, then the registry, then a room. A room lock is never held
// while the registry lock is taken, so lobby listings are always built after the
// room mutation has been released.
type RoomManager struct {
	logger *slog.Logger

	lobbyMu sync.Mutex

	registry    roomRegistry
	conns       connRegistry
	broadcaster broadcaster
	recorder    resultRecorder
}

func NewRoomManager(
	logger *slog.Logger,
	registry roomRegistry,
	conns connRegistry,
	broadcaster broadcaster,
	recorder resultRecorder,
) *RoomManager {
	return &RoomManager{
		logger:      logger.With("component", "room_manager"),
		registry:    registry,
		conns:       conns,
		broadcaster: broadcaster,
		recorder:    recorder,
	}
}

// Connect - registers conn and sends it the current lobby listing.
func (that *RoomManager) Connect(conn entity.Conn) {
	that.lobbyMu.Lock()
	defer that.lobbyMu.Unlock()

	that.conns.Add(conn)
	that.broadcaster.ToConn(conn, entity.NewRoomsMessage(that.registry.List()))
}

// Disconnect - leaves the bound room, if any, and unregisters conn.
func (that *RoomManager) Disconnect(conn entity.Conn) {
	that.conns.Remove(conn.ID())

	if !conn.Session().IsBound() {
		return
	}

	that.leave(conn)
	that.broadcastLobby()
}

func (that *RoomManager) CreateRoom(conn entity.Conn) error {
	log := that.logger.With("method", "CreateRoom", "conn", conn.ID())

	session := conn.Session()
	if session.IsBound() {
		return apperror.ErrAlreadyInRoom
	}

	room, player, err := that.registry.Create(conn)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	room.Lock()
	session.Bind(room.ID, player.Mark)
	that.broadcaster.ToConn(conn, entity.NewRoleMessage(player.Mark))
	that.broadcaster.ToConn(conn, entity.NewStateMessage(room))
	room.Unlock()

	log.Info("room created", "room", room.ID, "mark", player.Mark)

	that.broadcastLobby()

	return nil
}

func (that *RoomManager) JoinRoom(conn entity.Conn, roomID string) error {
	log := that.logger.With("method", "JoinRoom", "conn", conn.ID())

	session := conn.Session()
	if session.IsBound() {
		return apperror.ErrAlreadyInRoom
	}

	room, err := that.registry.Get(roomID)
	if err != nil {
		return fmt.Errorf("failed to get room %s: %w", roomID, err)
	}

	room.Lock()
	player, err := room.Join(conn)
	if err != nil {
		if errors.Is(err, apperror.ErrRoomFull) {
			that.broadcaster.ToConn(conn, entity.NewRoomFullMessage(room.ID))
		}

		room.Unlock()
		return fmt.Errorf("failed to join room %s: %w", roomID, err)
	}

	session.Bind(room.ID, player.Mark)
	that.broadcaster.ToConn(conn, entity.NewRoleMessage(player.Mark))
	that.broadcaster.ToRoom(room, entity.NewStateMessage(room))
	room.Unlock()

	log.Info("room joined", "room", room.ID, "mark", player.Mark)

	that.broadcastLobby()

	return nil
}

func (that *RoomManager) LeaveRoom(conn entity.Conn) error {
	if !conn.Session().IsBound() {
		return apperror.ErrNotInRoom
	}

	that.leave(conn)

	// the leaver is back in the lobby and gets the listing with everyone else
	that.broadcastLobby()

	return nil
}

func (that *RoomManager) MakeTurn(conn entity.Conn, cell int) error {
	room, err := that.boundRoom(conn)
	if err != nil {
		return err
	}

	room.Lock()
	player := room.PlayerByConn(conn.ID())
	if player == nil {
		room.Unlock()
		return apperror.ErrNotInRoom
	}

	if err = tictactoe.MakeTurn(room, player.Mark, cell); err != nil {
		room.Unlock()
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.broadcaster.ToRoom(room, entity.NewStateMessage(room))

	finished := room.HasWinner()
	if finished {
		that.recorder.Record(entity.NewResult(room))
		that.logger.Info("game finished", "room", room.ID, "winner", room.Winner)
	}
	room.Unlock()

	if finished {
		that.broadcastLobby()
	}

	return nil
}

// Restart - starts a new game in a full room with X to move.
func (that *RoomManager) Restart(conn entity.Conn) error {
	room, err := that.boundRoom(conn)
	if err != nil {
		return err
	}

	room.Lock()
	if room.PlayerByConn(conn.ID()) == nil {
		room.Unlock()
		return apperror.ErrNotInRoom
	}

	hadWinner := room.HasWinner()
	if err = room.Restart(); err != nil {
		room.Unlock()
		return fmt.Errorf("failed to restart room %s: %w", room.ID, err)
	}

	that.broadcaster.ToRoom(room, entity.NewStateMessage(room))
	room.Unlock()

	if hadWinner {
		that.broadcastLobby()
	}

	return nil
}

func (that *RoomManager) boundRoom(conn entity.Conn) (*entity.Room, error) {
	roomID := conn.Session().RoomID()
	if roomID == "" {
		return nil, apperror.ErrNotInRoom
	}

	room, err := that.registry.Get(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", roomID, err)
	}

	return room, nil
}

// leave - removes conn from its room and clears its session. The remaining
// player gets a reset; a drained room is removed from the registry.
func (that *RoomManager) leave(conn entity.Conn) {
	log := that.logger.With("method", "leave", "conn", conn.ID())

	session := conn.Session()
	roomID := session.RoomID()
	session.Clear()

	room, err := that.registry.Get(roomID)
	if err != nil {
		log.Debug("room already gone", "room", roomID, "error", err)
		return
	}

	room.Lock()
	if !room.Leave(conn.ID()) {
		room.Unlock()
		return
	}

	drained := room.IsClosed()
	if !drained {
		that.broadcaster.ToRoom(room, entity.NewResetMessage())
		that.broadcaster.ToRoom(room, entity.NewStateMessage(room))
	}
	room.Unlock()

	if drained {
		that.registry.Delete(room.ID)
		log.Info("room closed", "room", room.ID)
	}
}

func (that *RoomManager) broadcastLobby() {
	that.lobbyMu.Lock()
	defer that.lobbyMu.Unlock()

	that.broadcaster.ToLobby(entity.NewRoomsMessage(that.registry.List()))
}
