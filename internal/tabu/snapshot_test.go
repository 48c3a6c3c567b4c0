package tabu

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSnapshotShape(t *testing.T) {
	room := newStartedRoom(t)
	room.Join("r1", "Rüya", TeamRed)

	snap := room.Snapshot()

	if snap.ID != "R1" || snap.OwnerID != "alice" || snap.OwnerName != "Alice" {
		t.Errorf("Unexpected header: %+v", snap)
	}
	if snap.Turn.Team != TeamBlue || snap.Turn.NarratorID != "alice" {
		t.Errorf("Unexpected turn: %+v", snap.Turn)
	}
	if snap.Turn.StartTime == 0 {
		t.Error("Started turn should carry a start timestamp")
	}
	if len(snap.Teams[TeamBlue].Players) != 1 || len(snap.Teams[TeamRed].Players) != 1 {
		t.Error("Rosters should carry one player each")
	}

	// Users listed blue roster first, with derived role labels.
	if len(snap.Users) != 2 {
		t.Fatalf("Users = %d, want 2", len(snap.Users))
	}
	if snap.Users[0].ID != "alice" || snap.Users[0].Role != "owner" {
		t.Errorf("First user = %+v, want alice/owner", snap.Users[0])
	}
	if snap.Users[1].ID != "r1" || snap.Users[1].Role != "player" {
		t.Errorf("Second user = %+v, want r1/player", snap.Users[1])
	}
}

func TestSnapshotExcludesCardContent(t *testing.T) {
	room, err := NewRoom("R1", []Card{{Word: "zeplin", Taboo: []string{"balon", "uçmak"}}})
	if err != nil {
		t.Fatal(err)
	}
	room.Join("alice", "Alice", TeamBlue)
	room.OwnerID = "alice"
	room.Running = true
	room.StartTurn(TeamBlue)

	data, err := json.Marshal(room.Snapshot())
	if err != nil {
		t.Fatal(err)
	}

	for _, secret := range []string{"zeplin", "balon"} {
		if strings.Contains(string(data), secret) {
			t.Errorf("Broadcast snapshot leaked card content %q", secret)
		}
	}
}

func TestSnapshotBeforeFirstTurn(t *testing.T) {
	room := newTestRoom(t)

	snap := room.Snapshot()
	if snap.Turn.StartTime != 0 {
		t.Errorf("Unstarted turn should report zero start time, got %d", snap.Turn.StartTime)
	}
	if snap.Running {
		t.Error("New room should not be running")
	}
}
