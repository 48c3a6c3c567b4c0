package tabu

// Snapshot types shape the externally-visible room state for broadcast.
// The current card is deliberately absent: visibility is per-requester
// and served by SeeCard instead.

type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TeamSnapshot struct {
	Name         string        `json:"name"`
	Score        int           `json:"score"`
	CaptainID    string        `json:"captainId"`
	ControllerID string        `json:"controllerId"`
	Players      []RosterEntry `json:"players"`
}

type TurnSnapshot struct {
	Team         TeamKey `json:"team"`
	NarratorID   string  `json:"narratorId"`
	StartTime    int64   `json:"startTime"` // unix millis, 0 before first turn
	Remaining    int     `json:"remaining"`
	PassesLeft   int     `json:"passesLeft"`
	CurrentIndex int     `json:"currentIndex"`
}

type UserEntry struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Team TeamKey `json:"team"`
	Role string  `json:"role"` // "owner" or "player"
}

type RoomSnapshot struct {
	ID           string                   `json:"id"`
	OwnerID      string                   `json:"ownerId"`
	OwnerName    string                   `json:"ownerName"`
	TargetScore  int                      `json:"targetScore"`
	RoundSeconds int                      `json:"roundSeconds"`
	Paused       bool                     `json:"paused"`
	Running      bool                     `json:"running"`
	Teams        map[TeamKey]TeamSnapshot `json:"teams"`
	Turn         TurnSnapshot             `json:"turn"`
	Users        []UserEntry              `json:"users"`
}

// Snapshot serializes the room for broadcast. Users are listed in roster
// order, blue before red, so snapshots are deterministic.
func (r *Room) Snapshot() RoomSnapshot {
	teams := make(map[TeamKey]TeamSnapshot, 2)
	var users []UserEntry

	for _, key := range []TeamKey{TeamBlue, TeamRed} {
		team := r.Teams[key]
		players := make([]RosterEntry, 0, len(team.Roster))
		for _, p := range team.Roster {
			players = append(players, RosterEntry{ID: p.ID, Name: p.Name})

			role := "player"
			if p.ID == r.OwnerID {
				role = "owner"
			}
			users = append(users, UserEntry{ID: p.ID, Name: p.Name, Team: p.Team, Role: role})
		}
		teams[key] = TeamSnapshot{
			Name:         team.Name,
			Score:        team.Score,
			CaptainID:    team.CaptainID,
			ControllerID: team.ControllerID,
			Players:      players,
		}
	}

	var startMillis int64
	if !r.Turn.StartTime.IsZero() {
		startMillis = r.Turn.StartTime.UnixMilli()
	}

	return RoomSnapshot{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		OwnerName:    r.OwnerName,
		TargetScore:  r.TargetScore,
		RoundSeconds: r.RoundSeconds,
		Paused:       r.Paused,
		Running:      r.Running,
		Teams:        teams,
		Turn: TurnSnapshot{
			Team:         r.Turn.Team,
			NarratorID:   r.Turn.NarratorID,
			StartTime:    startMillis,
			Remaining:    r.Turn.Remaining,
			PassesLeft:   r.Turn.PassesLeft,
			CurrentIndex: r.Turn.CurrentIndex,
		},
		Users: users,
	}
}
