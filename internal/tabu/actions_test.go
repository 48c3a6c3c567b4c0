package tabu

import "testing"

func TestPressActionRequiresRunningRoom(t *testing.T) {
	room := newStartedRoom(t)

	room.Paused = true
	if out := room.PressAction("alice", ActionCorrect); out.Applied {
		t.Error("Paused room should reject actions")
	}

	room.Paused = false
	room.Running = false
	if out := room.PressAction("alice", ActionCorrect); out.Applied {
		t.Error("Stopped room should reject actions")
	}

	if room.Teams[TeamBlue].Score != 0 {
		t.Error("Rejected actions must not change score")
	}
}

func TestPressActionAuthorization(t *testing.T) {
	room := newStartedRoom(t)
	room.Join("b2", "Bilge", TeamBlue)
	room.Join("r1", "Rüya", TeamRed)

	// Narrating team is blue with alice as narrator. A blue teammate and
	// a plain red member may not press; the red controller may.
	if out := room.PressAction("b2", ActionCorrect); out.Applied {
		t.Error("Narrator's teammate should be rejected")
	}
	if out := room.PressAction("r1", ActionCorrect); out.Applied {
		t.Error("Plain opposing member should be rejected")
	}
	if out := room.PressAction("ghost", ActionCorrect); out.Applied {
		t.Error("Unknown issuer should be rejected")
	}

	room.Teams[TeamRed].ControllerID = "r1"
	if out := room.PressAction("r1", ActionCorrect); !out.Applied {
		t.Errorf("Opposing controller should be allowed, got %q", out.Reason)
	}
	if out := room.PressAction("alice", ActionCorrect); !out.Applied {
		t.Errorf("Narrator should be allowed, got %q", out.Reason)
	}

	if room.Teams[TeamBlue].Score != 2 {
		t.Errorf("Blue score = %d, want 2", room.Teams[TeamBlue].Score)
	}
}

func TestPassDecrementsBudgetAndAdvances(t *testing.T) {
	room := newStartedRoom(t)

	for i := 0; i < 3; i++ {
		if out := room.PressAction("alice", ActionPass); !out.Applied {
			t.Fatalf("Pass %d should apply, got %q", i+1, out.Reason)
		}
	}
	if room.Turn.PassesLeft != 0 {
		t.Errorf("PassesLeft = %d, want 0", room.Turn.PassesLeft)
	}
	if room.Turn.CurrentIndex != 3 {
		t.Errorf("CurrentIndex = %d, want 3", room.Turn.CurrentIndex)
	}

	out := room.PressAction("alice", ActionPass)
	if out.Applied {
		t.Error("Pass with empty budget should be rejected")
	}
	if out.Reason != RejectNoPassesLeft {
		t.Errorf("Reason = %q, want %q", out.Reason, RejectNoPassesLeft)
	}
	if room.Turn.CurrentIndex != 3 {
		t.Error("Rejected pass must not advance the deck")
	}
}

func TestTabooFloorsScoreAtZero(t *testing.T) {
	room := newStartedRoom(t)

	out := room.PressAction("alice", ActionTaboo)
	if !out.Applied {
		t.Fatalf("Taboo should apply, got %q", out.Reason)
	}
	if room.Teams[TeamBlue].Score != 0 {
		t.Errorf("Score = %d, want 0 (floor clamp)", room.Teams[TeamBlue].Score)
	}
	if room.Turn.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1 (deck still advances)", room.Turn.CurrentIndex)
	}

	room.Teams[TeamBlue].Score = 2
	room.PressAction("alice", ActionTaboo)
	if room.Teams[TeamBlue].Score != 1 {
		t.Errorf("Score = %d, want 1", room.Teams[TeamBlue].Score)
	}
}

func TestActionSequenceInvariants(t *testing.T) {
	room := newStartedRoom(t)
	room.TargetScore = 1000 // keep the game running

	actions := []ActionType{
		ActionCorrect, ActionTaboo, ActionPass, ActionCorrect, ActionTaboo,
		ActionTaboo, ActionPass, ActionCorrect, ActionPass, ActionCorrect,
	}

	deckLen := room.deck.Len()
	for i, action := range actions {
		room.PressAction("alice", action)

		if idx := room.Turn.CurrentIndex; idx < 0 || idx >= deckLen {
			t.Fatalf("Step %d: CurrentIndex %d out of [0,%d)", i, idx, deckLen)
		}
		if score := room.Teams[TeamBlue].Score; score < 0 {
			t.Fatalf("Step %d: score went negative: %d", i, score)
		}
	}
}

func TestCorrectWinAtExactTarget(t *testing.T) {
	room := newStartedRoom(t)
	room.TargetScore = 3
	room.Teams[TeamBlue].Score = 2
	indexBefore := room.Turn.CurrentIndex

	out := room.PressAction("alice", ActionCorrect)

	if !out.Applied {
		t.Fatalf("Winning press should apply, got %q", out.Reason)
	}
	if out.Ended == nil {
		t.Fatal("Winning press should carry the game-ended notification")
	}
	if room.Running || !room.Paused {
		t.Error("Win must force running=false, paused=true")
	}
	if room.Turn.CurrentIndex != indexBefore {
		t.Error("Winning press must not advance the deck")
	}
	if out.Ended.Winner != "Mavi" || out.Ended.Blue != 3 || out.Ended.Red != 0 || out.Ended.Target != 3 {
		t.Errorf("Unexpected notification: %+v", out.Ended)
	}

	// Terminal: nothing further is accepted until restart.
	if next := room.PressAction("alice", ActionCorrect); next.Applied {
		t.Error("Actions after the win must be rejected")
	}
}

func TestWinnerLabelTie(t *testing.T) {
	room := newStartedRoom(t)
	room.TargetScore = 2
	room.Teams[TeamBlue].Score = 1
	room.Teams[TeamRed].Score = 2

	out := room.PressAction("alice", ActionCorrect)

	if out.Ended == nil {
		t.Fatal("Expected game end")
	}
	if out.Ended.Winner != "Tie" {
		t.Errorf("Winner = %q, want Tie", out.Ended.Winner)
	}
}

// Sole blue member presses correct 20 times as narrator: the default
// target is reached, the game ends, blue's name wins.
func TestSoloNarratorPlaysToDefaultTarget(t *testing.T) {
	room := newStartedRoom(t)

	var ended *GameEnded
	for i := 0; i < 20; i++ {
		out := room.PressAction("alice", ActionCorrect)
		if !out.Applied {
			t.Fatalf("Press %d rejected: %q", i+1, out.Reason)
		}
		ended = out.Ended
	}

	if room.Teams[TeamBlue].Score != 20 {
		t.Errorf("Score = %d, want 20", room.Teams[TeamBlue].Score)
	}
	if room.Running {
		t.Error("Game should have stopped")
	}
	if ended == nil || ended.Winner != "Mavi" {
		t.Errorf("Expected Mavi to win, got %+v", ended)
	}
}

func TestUnknownActionRejected(t *testing.T) {
	room := newStartedRoom(t)

	out := room.PressAction("alice", ActionType("shout"))
	if out.Applied {
		t.Error("Unknown action should be rejected")
	}
	if out.Reason != RejectUnknownAction {
		t.Errorf("Reason = %q, want %q", out.Reason, RejectUnknownAction)
	}
}
