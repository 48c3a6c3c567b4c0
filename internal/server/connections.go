package server

import (
	"sync"

	"github.com/coder/websocket"
)

// ConnectionManager tracks live sockets. The connection id doubles as the
// participant id for the lifetime of the session; there is no
// reconnection, so a socket closing retires the identity for good.
type ConnectionManager struct {
	connections map[string]*websocket.Conn // participantID → socket
	rooms       map[string]string          // participantID → roomID
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		rooms:       make(map[string]string),
	}
}

func (cm *ConnectionManager) AddConnection(id string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[id] = conn
}

func (cm *ConnectionManager) RemoveConnection(id string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.connections, id)
	delete(cm.rooms, id)
}

// SetRoom records which room a participant joined.
func (cm *ConnectionManager) SetRoom(id, roomID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.rooms[id] = roomID
}

// ClearRoom detaches a participant from its room without dropping the
// socket, for explicit leaves.
func (cm *ConnectionManager) ClearRoom(id string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.rooms, id)
}

// RoomOf returns the room a participant is in, or "" if none.
func (cm *ConnectionManager) RoomOf(id string) string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.rooms[id]
}

func (cm *ConnectionManager) GetConnection(id string) *websocket.Conn {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.connections[id]
}

// Connections returns the sockets for the given participant ids, skipping
// any that have gone away.
func (cm *ConnectionManager) Connections(ids []string) []*websocket.Conn {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	conns := make([]*websocket.Conn, 0, len(ids))
	for _, id := range ids {
		if conn, ok := cm.connections[id]; ok {
			conns = append(conns, conn)
		}
	}
	return conns
}
