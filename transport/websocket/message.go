package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrMissingRoomID = errors.New("room id is missing")
	ErrMissingIndex  = errors.New("move index is missing")
)

// Message is an inbound client frame. Payload fields stay raw until the handler
// of the given type reads them, so a field another command ignores cannot fail the frame.
type Message struct {
	Type  string          `json:"type"`
	ID    json.RawMessage `json:"id,omitempty"`
	Index json.RawMessage `json:"index,omitempty"`
}

// RoomID - the join target, sent either as a JSON string or as a non-negative integer.
func (that *Message) RoomID() (string, error) {
	if len(that.ID) == 0 || string(that.ID) == "null" {
		return "", ErrMissingRoomID
	}

	var id string
	if err := json.Unmarshal(that.ID, &id); err == nil {
		return id, nil
	}

	var number uint64
	if err := json.Unmarshal(that.ID, &number); err != nil {
		return "", fmt.Errorf("invalid room id %s: %w", that.ID, err)
	}

	return strconv.FormatUint(number, 10), nil
}

// Cell - the move target. Any JSON number with no fractional part is accepted, so 3 and 3.0 are the same cell.
// Bounds against the board are checked by the game rules.
func (that *Message) Cell() (int, error) {
	if len(that.Index) == 0 || string(that.Index) == "null" {
		return 0, ErrMissingIndex
	}

	var number float64
	if err := json.Unmarshal(that.Index, &number); err != nil {
		return 0, fmt.Errorf("invalid move index %s: %w", that.Index, err)
	}

	if number != math.Trunc(number) || number < math.MinInt32 || number > math.MaxInt32 {
		return 0, fmt.Errorf("invalid move index %s: not a whole number", that.Index)
	}

	return int(number), nil
}
