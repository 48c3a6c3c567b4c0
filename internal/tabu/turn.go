package tabu

import "time"

// StartTurn begins a fresh narrating period for the given team: full pass
// budget, full clock, and a narrator picked deterministically from the
// roster at index (currentIndex mod roster size). An empty roster leaves
// the narrator slot vacant.
func (r *Room) StartTurn(team TeamKey) {
	r.Turn.Team = team
	r.Turn.PassesLeft = PassesPerTurn
	r.Turn.Remaining = r.RoundSeconds
	r.Turn.StartTime = time.Now()

	roster := r.Teams[team].Roster
	if len(roster) > 0 {
		r.Turn.NarratorID = roster[r.Turn.CurrentIndex%len(roster)].ID
	} else {
		r.Turn.NarratorID = ""
	}
}

// EndTurnAndSwitch hands the turn to the opposing team.
func (r *Room) EndTurnAndSwitch() {
	r.StartTurn(r.Turn.Team.Opposite())
}

// Tick recomputes remaining time from the stored start timestamp. Derives
// rather than decrements, so missed ticks cost nothing. Returns true if
// the cached value changed and the room state should be rebroadcast. At
// zero the turn switches automatically.
func (r *Room) Tick(now time.Time) bool {
	if !r.Running || r.Paused {
		return false
	}
	if r.Turn.StartTime.IsZero() {
		// Turn never started; nothing to derive. Leave the room alone
		// rather than switching turns off a bogus timestamp.
		return false
	}

	elapsed := int(now.Sub(r.Turn.StartTime) / time.Second)
	remaining := r.RoundSeconds - elapsed
	if remaining < 0 {
		remaining = 0
	}

	changed := remaining != r.Turn.Remaining
	r.Turn.Remaining = remaining

	if remaining <= 0 {
		r.EndTurnAndSwitch()
		return true
	}
	return changed
}
