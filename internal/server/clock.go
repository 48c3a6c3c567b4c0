package server

import (
	"time"

	"tabu-server/internal/tabu"
)

// turnClockTask drives every room's turn clock on a fixed short interval.
// One ticker serves all rooms; remaining time is derived from each room's
// stored start timestamp, so a missed or late tick never loses time.
func (s *Server) turnClockTask() {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.tickRooms(now)
		}
	}
}

// tickRooms visits each room once. Rooms are ticked under their own lock
// and broadcast outside it, so a slow room cannot hold up the rest.
func (s *Server) tickRooms(now time.Time) {
	for _, room := range s.registry.Rooms() {
		room.Lock()
		changed := room.Tick(now)
		var snap tabu.RoomSnapshot
		if changed {
			snap = room.Snapshot()
		}
		room.Unlock()

		if changed {
			s.broadcastState(snap)
		}
	}
}
