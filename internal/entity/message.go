package entity

const (
	TypeCreateRoom = "create_room"
	TypeJoinRoom   = "join_room"
	TypeLeaveRoom  = "leave_room"
	TypeMove       = "move"
	TypeRestart    = "restart"

	TypeRooms    = "rooms"
	TypeRole     = "role"
	TypeState    = "state"
	TypeReset    = "reset"
	TypeRoomFull = "room_full"
)

// RoomsMessage is the lobby listing.
type RoomsMessage struct {
	Type  string        `json:"type"`
	Rooms []RoomSummary `json:"rooms"`
}

type RoleMessage struct {
	Type string `json:"type"`
	Role Mark   `json:"role"`
}

// StateMessage carries the authoritative board of one room.
type StateMessage struct {
	Type   string  `json:"type"`
	Board  [9]Mark `json:"board"`
	Turn   Mark    `json:"turn"`
	Winner Mark    `json:"winner"`
}

type ResetMessage struct {
	Type string `json:"type"`
}

type RoomFullMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func NewRoomsMessage(rooms []RoomSummary) RoomsMessage {
	if rooms == nil {
		rooms = []RoomSummary{}
	}

	return RoomsMessage{Type: TypeRooms, Rooms: rooms}
}

func NewRoleMessage(role Mark) RoleMessage {
	return RoleMessage{Type: TypeRole, Role: role}
}

// NewStateMessage snapshots room; the caller holds the room lock.
func NewStateMessage(room *Room) StateMessage {
	return StateMessage{
		Type:   TypeState,
		Board:  room.Board,
		Turn:   room.Turn,
		Winner: room.Winner,
	}
}

func NewResetMessage() ResetMessage {
	return ResetMessage{Type: TypeReset}
}

func NewRoomFullMessage(roomID string) RoomFullMessage {
	return RoomFullMessage{Type: TypeRoomFull, ID: roomID}
}
