package service

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// Connections is the set of live connections, keyed by connection id.
type Connections struct {
	mu    sync.RWMutex
	conns map[string]entity.Conn
}

func NewConnections() *Connections {
	return &Connections{
		conns: make(map[string]entity.Conn),
	}
}

func (that *Connections) Add(conn entity.Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.conns[conn.ID()] = conn
}

func (that *Connections) Remove(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.conns, id)
}

// All - snapshot, safe to range over without the lock.
func (that *Connections) All() []entity.Conn {
	that.mu.RLock()
	defer that.mu.RUnlock()

	all := make([]entity.Conn, 0, len(that.conns))
	for _, conn := range that.conns {
		all = append(all, conn)
	}

	return all
}

func (that *Connections) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.conns)
}
