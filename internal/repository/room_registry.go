package repository

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomRegistry keeps the open rooms of the process. Room ids come from a counter
// and are never reused.
type RoomRegistry struct {
	mu sync.RWMutex

	lastID uint64
	rooms  map[string]*entity.Room
	order  []string
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*entity.Room),
	}
}

// Create - allocates a fresh id and registers a room under it with founder
// already seated, so the room is never visible empty.
func (that *RoomRegistry) Create(founder entity.Conn) (*entity.Room, *entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.lastID++
	id := strconv.FormatUint(that.lastID, 10)

	room := entity.NewRoom(id)
	player, err := room.Join(founder)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to seat founder of room %s: %w", id, err)
	}

	that.rooms[id] = room
	that.order = append(that.order, id)

	return room, player, nil
}

func (that *RoomRegistry) Get(id string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}

	return room, nil
}

// Delete - removes the room, no-op if absent.
func (that *RoomRegistry) Delete(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[id]; !ok {
		return
	}

	delete(that.rooms, id)

	for i, roomID := range that.order {
		if roomID == id {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}
}

// List - returns the lobby listing in creation order. Rooms that drained but are
// not deleted yet are skipped.
func (that *RoomRegistry) List() []entity.RoomSummary {
	that.mu.RLock()
	defer that.mu.RUnlock()

	list := make([]entity.RoomSummary, 0, len(that.order))
	for _, id := range that.order {
		room := that.rooms[id]

		room.Lock()
		if !room.IsClosed() {
			list = append(list, room.Summary())
		}
		room.Unlock()
	}

	return list
}

func (that *RoomRegistry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}
