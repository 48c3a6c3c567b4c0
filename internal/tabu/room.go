package tabu

import (
	"sync"
	"time"
)

const (
	DefaultTargetScore  = 20
	DefaultRoundSeconds = 90

	MinTargetScore  = 1
	MinRoundSeconds = 15

	MaxTeamNameLen = 24

	PassesPerTurn = 3
)

// TeamKey identifies one of the two fixed teams in a room.
type TeamKey string

const (
	TeamBlue TeamKey = "blue"
	TeamRed  TeamKey = "red"
)

func (k TeamKey) Valid() bool {
	return k == TeamBlue || k == TeamRed
}

func (k TeamKey) Opposite() TeamKey {
	if k == TeamBlue {
		return TeamRed
	}
	return TeamBlue
}

// Participant is one connected player. The ID is connection-scoped and
// opaque to the game; a disconnect permanently retires it.
type Participant struct {
	ID   string
	Name string
	Team TeamKey
}

// Team holds one squad's name, score, roster and role pointers. Roster
// order is significant: the first member becomes captain by default, and
// narrator rotation walks the roster in order.
type Team struct {
	Name         string
	Score        int
	CaptainID    string
	ControllerID string
	Roster       []*Participant
}

// HasMember reports whether id is currently on the roster.
func (t *Team) HasMember(id string) bool {
	for _, p := range t.Roster {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Turn is the active narrating period. Remaining is derived from
// StartTime by the turn clock and cached here for broadcast diffing.
type Turn struct {
	Team         TeamKey
	NarratorID   string
	StartTime    time.Time
	Remaining    int
	PassesLeft   int
	CurrentIndex int
}

// Room is one isolated match. All mutation happens under the embedded
// mutex; callers of the exported game methods must hold it.
type Room struct {
	sync.Mutex

	ID           string
	OwnerID      string
	OwnerName    string
	TargetScore  int
	RoundSeconds int
	Paused       bool
	Running      bool
	CreatedAt    time.Time

	Teams map[TeamKey]*Team
	Turn  Turn

	participants map[string]*Participant
	deck         *Deck
}

// NewRoom builds a room with default config, its own shuffled deck and an
// unstarted first turn. The card set must be non-empty.
func NewRoom(id string, cards []Card) (*Room, error) {
	deck, err := NewDeck(cards)
	if err != nil {
		return nil, err
	}

	return &Room{
		ID:           id,
		TargetScore:  DefaultTargetScore,
		RoundSeconds: DefaultRoundSeconds,
		CreatedAt:    time.Now(),
		Teams: map[TeamKey]*Team{
			TeamBlue: {Name: "Mavi"},
			TeamRed:  {Name: "Kırmızı"},
		},
		Turn: Turn{
			Team:       TeamBlue,
			Remaining:  DefaultRoundSeconds,
			PassesLeft: PassesPerTurn,
		},
		participants: map[string]*Participant{},
		deck:         deck,
	}, nil
}

// Participant looks up a current participant by id.
func (r *Room) Participant(id string) (*Participant, bool) {
	p, ok := r.participants[id]
	return p, ok
}

// Empty reports whether no participants remain.
func (r *Room) Empty() bool {
	return len(r.participants) == 0
}

// Join adds a participant to the requested team's roster. An unknown team
// key defaults to blue. Whenever a roster goes from empty to non-empty,
// its first member becomes captain.
func (r *Room) Join(id, name string, team TeamKey) *Participant {
	if !team.Valid() {
		team = TeamBlue
	}

	p := &Participant{ID: id, Name: name, Team: team}
	r.participants[id] = p
	r.Teams[team].Roster = append(r.Teams[team].Roster, p)

	for _, t := range r.Teams {
		if t.CaptainID == "" && len(t.Roster) > 0 {
			t.CaptainID = t.Roster[0].ID
		}
	}

	return p
}

// RemoveParticipant takes a participant out of the room, vacating any role
// pointers it held. A vacated captaincy passes to the team's new first
// roster member; a vacated controller slot stays empty. If the owner
// leaves, ownership passes to the first remaining participant, scanning
// the blue roster before the red one. Removing an unknown id is a no-op.
func (r *Room) RemoveParticipant(id string) bool {
	if _, ok := r.participants[id]; !ok {
		return false
	}

	for _, key := range []TeamKey{TeamBlue, TeamRed} {
		team := r.Teams[key]
		for i, p := range team.Roster {
			if p.ID == id {
				team.Roster = append(team.Roster[:i], team.Roster[i+1:]...)
				break
			}
		}
		if team.CaptainID == id {
			team.CaptainID = ""
			if len(team.Roster) > 0 {
				team.CaptainID = team.Roster[0].ID
			}
		}
		if team.ControllerID == id {
			team.ControllerID = ""
		}
	}

	if r.Turn.NarratorID == id {
		r.Turn.NarratorID = ""
	}

	delete(r.participants, id)

	if r.OwnerID == id {
		r.OwnerID = ""
		if next := r.firstParticipant(); next != nil {
			r.OwnerID = next.ID
			r.OwnerName = next.Name
		}
	}

	return true
}

func (r *Room) firstParticipant() *Participant {
	for _, key := range []TeamKey{TeamBlue, TeamRed} {
		if roster := r.Teams[key].Roster; len(roster) > 0 {
			return roster[0]
		}
	}
	return nil
}
