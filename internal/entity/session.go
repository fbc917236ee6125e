package entity

import "sync"

// Session is the room binding of one connection. It is created with the
// connection and dropped with it.
type Session struct {
	mu sync.RWMutex

	roomID string
	mark   Mark
}

func NewSession() *Session {
	return &Session{}
}

func (that *Session) Bind(roomID string, mark Mark) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.roomID = roomID
	that.mark = mark
}

func (that *Session) Clear() {
	that.Bind("", NoMark)
}

func (that *Session) RoomID() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.roomID
}

func (that *Session) Mark() Mark {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.mark
}

func (that *Session) IsBound() bool {
	return that.RoomID() != ""
}
