package tabu

import "time"

// AdminAction is an owner-only room command.
type AdminAction string

const (
	AdminSetTarget     AdminAction = "set_target"
	AdminSetSeconds    AdminAction = "set_seconds"
	AdminPause         AdminAction = "pause"
	AdminResume        AdminAction = "resume"
	AdminRestart       AdminAction = "restart"
	AdminTransferOwner AdminAction = "transfer_owner"
)

// Admin applies an owner command. Numeric inputs are clamped to their
// minimums rather than rejected; a zero value falls back to a sane
// default first.
func (r *Room) Admin(issuerID string, action AdminAction, value int, targetID string) Outcome {
	if !r.HasRole(issuerID, RoleOwner, "") {
		return rejected(RejectUnauthorized)
	}

	switch action {
	case AdminSetTarget:
		if value == 0 {
			value = 10
		}
		if value < MinTargetScore {
			value = MinTargetScore
		}
		r.TargetScore = value

	case AdminSetSeconds:
		if value == 0 {
			value = 60
		}
		if value < MinRoundSeconds {
			value = MinRoundSeconds
		}
		r.RoundSeconds = value

	case AdminPause:
		r.Paused = true

	case AdminResume:
		r.Paused = false
		// Rebuild a start timestamp consistent with the displayed
		// remaining time, so elapsed-time arithmetic picks up where the
		// pause left off.
		r.Turn.StartTime = time.Now().Add(-time.Duration(r.RoundSeconds-r.Turn.Remaining) * time.Second)

	case AdminRestart:
		return r.restart()

	case AdminTransferOwner:
		target, ok := r.participants[targetID]
		if !ok {
			return rejected(RejectUnknownTarget)
		}
		r.OwnerID = target.ID
		r.OwnerName = target.Name

	default:
		return rejected(RejectUnknownAction)
	}

	return applied()
}

// restart resets scores, reshuffles a fresh deck and kicks off a new game
// starting with blue. Usable even after the game has ended.
func (r *Room) restart() Outcome {
	deck, err := NewDeck(r.deck.cards)
	if err != nil {
		return rejected(RejectBadValue)
	}
	r.deck = deck

	r.Teams[TeamBlue].Score = 0
	r.Teams[TeamRed].Score = 0
	r.Turn.CurrentIndex = 0
	r.StartTurn(TeamBlue)
	r.Running = true
	r.Paused = false

	return applied()
}

// ForceSwitch is the owner's manual turn switch, usable regardless of the
// remaining time.
func (r *Room) ForceSwitch(issuerID string) Outcome {
	if !r.HasRole(issuerID, RoleOwner, "") {
		return rejected(RejectUnauthorized)
	}
	r.EndTurnAndSwitch()
	return applied()
}

// SetTeamName renames a team. Any member of that team may rename it.
// Names are truncated to the limit; an empty name keeps the old one.
func (r *Room) SetTeamName(issuerID string, team TeamKey, name string) Outcome {
	if !team.Valid() {
		return rejected(RejectUnknownTeam)
	}
	p, ok := r.participants[issuerID]
	if !ok || p.Team != team {
		return rejected(RejectUnauthorized)
	}

	runes := []rune(name)
	if len(runes) > MaxTeamNameLen {
		runes = runes[:MaxTeamNameLen]
	}
	if len(runes) == 0 {
		return applied()
	}
	r.Teams[team].Name = string(runes)
	return applied()
}

// SetCaptain hands the captaincy to another roster member. Only the
// current captain may do this.
func (r *Room) SetCaptain(issuerID string, team TeamKey, targetID string) Outcome {
	if !team.Valid() {
		return rejected(RejectUnknownTeam)
	}
	if !r.HasRole(issuerID, RoleCaptain, team) {
		return rejected(RejectUnauthorized)
	}
	if !r.Teams[team].HasMember(targetID) {
		return rejected(RejectUnknownTarget)
	}
	r.Teams[team].CaptainID = targetID
	return applied()
}

// SetController designates the team member who presses actions while the
// other team narrates. Captain-only.
func (r *Room) SetController(issuerID string, team TeamKey, targetID string) Outcome {
	if !team.Valid() {
		return rejected(RejectUnknownTeam)
	}
	if !r.HasRole(issuerID, RoleCaptain, team) {
		return rejected(RejectUnauthorized)
	}
	if !r.Teams[team].HasMember(targetID) {
		return rejected(RejectUnknownTarget)
	}
	r.Teams[team].ControllerID = targetID
	return applied()
}

// SetNarrator reassigns the narrator mid-turn. Only the narrating team's
// captain may do this, and only for their own active turn.
func (r *Room) SetNarrator(issuerID string, team TeamKey, targetID string) Outcome {
	if !team.Valid() {
		return rejected(RejectUnknownTeam)
	}
	if team != r.Turn.Team {
		return rejected(RejectNotRunning)
	}
	if !r.HasRole(issuerID, RoleCaptain, team) {
		return rejected(RejectUnauthorized)
	}
	if !r.Teams[team].HasMember(targetID) {
		return rejected(RejectUnknownTarget)
	}
	r.Turn.NarratorID = targetID
	return applied()
}
