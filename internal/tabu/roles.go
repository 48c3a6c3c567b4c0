package tabu

// Role is a capability a participant may hold within a room.
type Role int

const (
	// RoleOwner administers room config and lifecycle. Room-scoped.
	RoleOwner Role = iota
	// RoleCaptain assigns its team's controller and, while its team
	// narrates, the narrator. Team-scoped.
	RoleCaptain
	// RoleController presses actions while the *other* team narrates.
	// Team-scoped.
	RoleController
	// RoleNarrator presses actions for the narrating side. Turn-scoped;
	// the team argument is ignored.
	RoleNarrator
)

// HasRole is the single capability check used before every role-gated
// mutation. It also verifies the holder is still a current participant,
// so stale ids from departed players never authorize anything.
func (r *Room) HasRole(id string, role Role, team TeamKey) bool {
	if id == "" {
		return false
	}
	if _, ok := r.participants[id]; !ok {
		return false
	}

	switch role {
	case RoleOwner:
		return r.OwnerID == id
	case RoleCaptain:
		return team.Valid() && r.Teams[team].CaptainID == id
	case RoleController:
		return team.Valid() && r.Teams[team].ControllerID == id
	case RoleNarrator:
		return r.Turn.NarratorID == id
	}
	return false
}
