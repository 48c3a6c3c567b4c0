package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabu-server/internal/tabu"
)

func testRegistry() *RoomRegistry {
	return NewRoomRegistry([]tabu.Card{
		{Word: "deniz", Taboo: []string{"su", "mavi"}},
		{Word: "güneş", Taboo: []string{"sıcak", "ışık"}},
		{Word: "kalem", Taboo: []string{"yazmak", "kağıt"}},
	})
}

func TestJoinOrCreate_CreatesRoom(t *testing.T) {
	assert := assert.New(t)
	rr := testRegistry()

	snap, err := rr.JoinOrCreate("oda1", "alice", "Alice", tabu.TeamBlue, true)
	require.NoError(t, err)

	assert.Equal("oda1", snap.ID)
	assert.Equal("alice", snap.OwnerID)
	assert.Equal("Alice", snap.OwnerName)
	assert.True(snap.Running)
	assert.False(snap.Paused)

	// The first turn auto-starts for blue with the creator narrating.
	assert.Equal(tabu.TeamBlue, snap.Turn.Team)
	assert.Equal("alice", snap.Turn.NarratorID)
	assert.NotZero(snap.Turn.StartTime)

	// Sole blue member is also captain.
	assert.Equal("alice", snap.Teams[tabu.TeamBlue].CaptainID)
	assert.Equal(1, rr.Count())
}

func TestJoinOrCreate_JoinExisting(t *testing.T) {
	assert := assert.New(t)
	rr := testRegistry()

	_, err := rr.JoinOrCreate("oda1", "alice", "Alice", tabu.TeamBlue, true)
	require.NoError(t, err)

	// The create flag on an existing room is ignored: this is a plain join.
	snap, err := rr.JoinOrCreate("oda1", "bora", "Bora", tabu.TeamRed, true)
	require.NoError(t, err)

	assert.Equal("alice", snap.OwnerID, "joiner must not take ownership")
	assert.Equal("bora", snap.Teams[tabu.TeamRed].CaptainID, "first red member becomes red captain")
	assert.Len(snap.Users, 2)
	assert.Equal(1, rr.Count())
}

func TestJoinOrCreate_MissingRoomWithoutCreate(t *testing.T) {
	assert := assert.New(t)
	rr := testRegistry()

	_, err := rr.JoinOrCreate("yok", "alice", "Alice", tabu.TeamBlue, false)

	assert.ErrorIs(err, ErrRoomNotFound)
	assert.Equal(0, rr.Count(), "failed join must not create a room")
}

func TestJoinOrCreate_Validation(t *testing.T) {
	assert := assert.New(t)
	rr := testRegistry()

	_, err := rr.JoinOrCreate("", "alice", "Alice", tabu.TeamBlue, true)
	assert.Error(err)

	_, err = rr.JoinOrCreate("oda1", "alice", "   ", tabu.TeamBlue, true)
	assert.Error(err)

	assert.Equal(0, rr.Count())
}

func TestJoinOrCreate_BadTeamDefaultsToBlue(t *testing.T) {
	rr := testRegistry()

	snap, err := rr.JoinOrCreate("oda1", "alice", "Alice", tabu.TeamKey("mor"), true)
	require.NoError(t, err)

	assert.Len(t, snap.Teams[tabu.TeamBlue].Players, 1)
	assert.Empty(t, snap.Teams[tabu.TeamRed].Players)
}

func TestRemoveParticipant_TransfersOwnership(t *testing.T) {
	assert := assert.New(t)
	rr := testRegistry()

	_, err := rr.JoinOrCreate("oda1", "alice", "Alice", tabu.TeamBlue, true)
	require.NoError(t, err)
	_, err = rr.JoinOrCreate("oda1", "rıza", "Rıza", tabu.TeamRed, false)
	require.NoError(t, err)

	snap, ok := rr.RemoveParticipant("oda1", "alice")
	require.True(t, ok)

	assert.Equal("rıza", snap.OwnerID)
	assert.Equal("Rıza", snap.OwnerName)
	assert.Empty(snap.Teams[tabu.TeamBlue].Players)
}

func TestRemoveParticipant_Idempotent(t *testing.T) {
	assert := assert.New(t)
	rr := testRegistry()

	_, ok := rr.RemoveParticipant("yok", "kimse")
	assert.False(ok, "unknown room is a silent no-op")

	_, err := rr.JoinOrCreate("oda1", "alice", "Alice", tabu.TeamBlue, true)
	require.NoError(t, err)

	_, ok = rr.RemoveParticipant("oda1", "ghost")
	assert.False(ok, "unknown participant is a silent no-op")

	_, ok = rr.RemoveParticipant("oda1", "alice")
	assert.True(ok)
	_, ok = rr.RemoveParticipant("oda1", "alice")
	assert.False(ok, "second removal is a no-op")

	// Empty rooms are retained, not evicted.
	assert.Equal(1, rr.Count())
}

func TestNormalizeAndValidateRoomID(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("oda1", NormalizeRoomID("  oda1 "))
	assert.NoError(ValidateRoomID("oda1"))
	assert.Error(ValidateRoomID(""))
	assert.Error(ValidateRoomID("uzun-bir-oda-adi-uzun-bir-oda-adi-uzun"))
}
