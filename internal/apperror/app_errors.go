package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrRoomFull         = errors.New("room is full")
	ErrRoomClosed       = errors.New("room is closed")
	ErrAlreadyInRoom    = errors.New("connection is already in a room")
	ErrNotInRoom        = errors.New("connection is not in a room")
	ErrNotEnoughPlayers = errors.New("not enough players")
)
