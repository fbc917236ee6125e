package entity

import "time"

// Result is a finished game as recorded for statistics.
type Result struct {
	RoomID     string    `json:"room_id"`
	Board      [9]Mark   `json:"board"`
	Winner     Mark      `json:"winner"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewResult(room *Room) *Result {
	return &Result{
		RoomID:     room.ID,
		Board:      room.Board,
		Winner:     room.Winner,
		FinishedAt: time.Now().UTC(),
	}
}

type ResultStats struct {
	X    int64 `json:"X"`
	O    int64 `json:"O"`
	Draw int64 `json:"draw"`
}

type ServerStats struct {
	Rooms       int          `json:"rooms"`
	Connections int          `json:"connections"`
	Results     *ResultStats `json:"results,omitempty"`
	Recent      []*Result    `json:"recent,omitempty"`
}
