package server

import (
	"errors"
	"strings"
	"sync"

	"tabu-server/internal/tabu"
)

var ErrRoomNotFound = errors.New("ROOM_NOT_FOUND: Oda bulunamadı.")

const maxRoomIDLen = 32

// RoomRegistry is the process-wide room store. The registry map has its
// own lock; each room carries its own mutex, so commands on different
// rooms never contend. Rooms are never evicted while the process lives —
// an accepted policy gap, see DESIGN.md.
type RoomRegistry struct {
	rooms map[string]*tabu.Room
	cards []tabu.Card
	mu    sync.RWMutex
}

// NewRoomRegistry builds a registry whose rooms deal from the given card
// set. Each room shuffles its own copy.
func NewRoomRegistry(cards []tabu.Card) *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*tabu.Room),
		cards: cards,
	}
}

// NormalizeRoomID trims surrounding whitespace; room ids are otherwise
// taken as the client chose them.
func NormalizeRoomID(id string) string {
	return strings.TrimSpace(id)
}

func ValidateRoomID(id string) error {
	if id == "" {
		return errors.New("INVALID_ROOM: Room id must not be empty")
	}
	if len(id) > maxRoomIDLen {
		return errors.New("INVALID_ROOM: Room id too long")
	}
	return nil
}

// JoinOrCreate adds a participant to a room, creating the room first when
// create is set and the id is unused. The creator becomes owner and the
// first turn starts immediately for blue. Joining an existing room
// ignores the create flag; joining a missing room without it fails with
// ErrRoomNotFound and creates nothing.
func (rr *RoomRegistry) JoinOrCreate(roomID, participantID, name string, team tabu.TeamKey, create bool) (tabu.RoomSnapshot, error) {
	roomID = NormalizeRoomID(roomID)
	if err := ValidateRoomID(roomID); err != nil {
		return tabu.RoomSnapshot{}, err
	}
	if strings.TrimSpace(name) == "" {
		return tabu.RoomSnapshot{}, errors.New("INVALID_NAME: Name must not be empty")
	}

	rr.mu.Lock()
	room, exists := rr.rooms[roomID]
	created := false
	if !exists {
		if !create {
			rr.mu.Unlock()
			return tabu.RoomSnapshot{}, ErrRoomNotFound
		}
		var err error
		room, err = tabu.NewRoom(roomID, rr.cards)
		if err != nil {
			rr.mu.Unlock()
			return tabu.RoomSnapshot{}, err
		}
		rr.rooms[roomID] = room
		created = true
	}
	rr.mu.Unlock()

	room.Lock()
	defer room.Unlock()

	room.Join(participantID, name, team)
	if created {
		room.OwnerID = participantID
		room.OwnerName = name
		room.Running = true
		room.Paused = false
		room.StartTurn(tabu.TeamBlue)
	}

	return room.Snapshot(), nil
}

// RemoveParticipant drops a participant from a room on leave or
// disconnect. Idempotent: an unknown room or participant is a no-op, in
// which case ok is false and nothing should be broadcast.
func (rr *RoomRegistry) RemoveParticipant(roomID, participantID string) (snap tabu.RoomSnapshot, ok bool) {
	room, exists := rr.Get(roomID)
	if !exists {
		return tabu.RoomSnapshot{}, false
	}

	room.Lock()
	defer room.Unlock()

	if !room.RemoveParticipant(participantID) {
		return tabu.RoomSnapshot{}, false
	}
	return room.Snapshot(), true
}

func (rr *RoomRegistry) Get(roomID string) (*tabu.Room, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	room, exists := rr.rooms[NormalizeRoomID(roomID)]
	return room, exists
}

// Rooms returns a point-in-time copy of the room list, so callers (the
// turn clock) can visit every room without holding the registry lock.
func (rr *RoomRegistry) Rooms() []*tabu.Room {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	rooms := make([]*tabu.Room, 0, len(rr.rooms))
	for _, room := range rr.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

func (rr *RoomRegistry) Count() int {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	return len(rr.rooms)
}
