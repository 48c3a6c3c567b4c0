package tabu

// ActionType is one of the three scoring actions for the current card.
type ActionType string

const (
	ActionPass    ActionType = "pass"
	ActionTaboo   ActionType = "taboo"
	ActionCorrect ActionType = "correct"
)

// RejectReason records internally why a command was refused. Reasons are
// for logs and tests only; rejected commands are silent on the wire.
type RejectReason string

const (
	RejectUnauthorized  RejectReason = "unauthorized"
	RejectNotRunning    RejectReason = "not_running"
	RejectNoPassesLeft  RejectReason = "no_passes_left"
	RejectUnknownAction RejectReason = "unknown_action"
	RejectUnknownTeam   RejectReason = "unknown_team"
	RejectUnknownTarget RejectReason = "unknown_target"
	RejectBadValue      RejectReason = "bad_value"
)

// GameEnded is the terminal notification emitted once when a team reaches
// the target score.
type GameEnded struct {
	Winner string `json:"winner"`
	Blue   int    `json:"blue"`
	Red    int    `json:"red"`
	Target int    `json:"target"`
}

// Outcome is the result of attempting a game mutation. Rejections carry a
// reason for observability but never surface it to clients.
type Outcome struct {
	Applied bool
	Reason  RejectReason
	Ended   *GameEnded
}

func applied() Outcome {
	return Outcome{Applied: true}
}

func rejected(reason RejectReason) Outcome {
	return Outcome{Reason: reason}
}

// PressAction applies pass/taboo/correct on behalf of the narrating team.
// Only the current narrator or the opposing team's controller may press,
// and only while the room is running and unpaused.
func (r *Room) PressAction(issuerID string, action ActionType) Outcome {
	if !r.Running || r.Paused {
		return rejected(RejectNotRunning)
	}

	narrating := r.Turn.Team
	isNarrator := r.HasRole(issuerID, RoleNarrator, narrating)
	isOppController := r.HasRole(issuerID, RoleController, narrating.Opposite())
	if !isNarrator && !isOppController {
		return rejected(RejectUnauthorized)
	}

	team := r.Teams[narrating]

	switch action {
	case ActionPass:
		if r.Turn.PassesLeft <= 0 {
			return rejected(RejectNoPassesLeft)
		}
		r.Turn.PassesLeft--
		r.advanceCard()

	case ActionTaboo:
		team.Score--
		if team.Score < 0 {
			team.Score = 0
		}
		r.advanceCard()

	case ActionCorrect:
		team.Score++
		if ended := r.checkWin(); ended != nil {
			// Terminal: the card stays put and no further processing runs.
			return Outcome{Applied: true, Ended: ended}
		}
		r.advanceCard()

	default:
		return rejected(RejectUnknownAction)
	}

	return applied()
}

func (r *Room) advanceCard() {
	r.Turn.CurrentIndex = r.deck.Next(r.Turn.CurrentIndex)
}

// checkWin flips the room into its terminal state when either team has
// reached the target score. Returns nil while play continues.
func (r *Room) checkWin() *GameEnded {
	blue := r.Teams[TeamBlue].Score
	red := r.Teams[TeamRed].Score
	if blue < r.TargetScore && red < r.TargetScore {
		return nil
	}

	r.Running = false
	r.Paused = true

	winner := "Tie"
	if blue > red {
		winner = r.Teams[TeamBlue].Name
	} else if red > blue {
		winner = r.Teams[TeamRed].Name
	}

	return &GameEnded{
		Winner: winner,
		Blue:   blue,
		Red:    red,
		Target: r.TargetScore,
	}
}
