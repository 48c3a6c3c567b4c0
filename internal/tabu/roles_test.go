package tabu

import "testing"

func TestHasRole(t *testing.T) {
	room := newStartedRoom(t)
	room.Join("b2", "Bilge", TeamBlue)
	room.Join("r1", "Rüya", TeamRed)
	room.Teams[TeamRed].ControllerID = "r1"

	tests := []struct {
		name string
		id   string
		role Role
		team TeamKey
		want bool
	}{
		{"owner", "alice", RoleOwner, "", true},
		{"not owner", "b2", RoleOwner, "", false},
		{"blue captain", "alice", RoleCaptain, TeamBlue, true},
		{"captain wrong team", "alice", RoleCaptain, TeamRed, false},
		{"captain bad team key", "alice", RoleCaptain, "purple", false},
		{"red controller", "r1", RoleController, TeamRed, true},
		{"no blue controller", "b2", RoleController, TeamBlue, false},
		{"narrator", "alice", RoleNarrator, "", true},
		{"not narrator", "b2", RoleNarrator, "", false},
		{"empty id", "", RoleOwner, "", false},
		{"unknown id", "ghost", RoleNarrator, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := room.HasRole(tt.id, tt.role, tt.team); got != tt.want {
				t.Errorf("HasRole(%q, %v, %q) = %v, want %v", tt.id, tt.role, tt.team, got, tt.want)
			}
		})
	}
}

func TestHasRoleStaleIDAfterDeparture(t *testing.T) {
	room := newStartedRoom(t)
	room.Join("r1", "Rüya", TeamRed)
	room.Teams[TeamRed].ControllerID = "r1"

	room.RemoveParticipant("r1")

	// A departed participant's id must never authorize anything, even if
	// a pointer somewhere still carried it.
	if room.HasRole("r1", RoleController, TeamRed) {
		t.Error("Departed controller should not keep the role")
	}
}
