package tabu

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
)

// Card is one word to describe plus the words the narrator may not say.
// Cards are read-only once a deck is built.
type Card struct {
	Word  string   `json:"word"`
	Taboo []string `json:"taboo"`
}

// Deck is a shuffled, cyclic sequence of cards. Indexing wraps, so the
// deck never runs out.
type Deck struct {
	cards []Card
}

// NewDeck copies and shuffles the given card set. The set must be non-empty.
func NewDeck(cards []Card) (*Deck, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("EMPTY_DECK: card set must contain at least one card")
	}

	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return &Deck{cards: shuffled}, nil
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Card returns the card at index i, taken modulo deck length.
func (d *Deck) Card(i int) Card {
	return d.cards[i%len(d.cards)]
}

// Next returns the cursor position after i, wrapping past the end.
func (d *Deck) Next(i int) int {
	return (i + 1) % len(d.cards)
}

//go:embed words.json
var wordData []byte

var (
	defaultCards    []Card
	loadDefaultOnce sync.Once
)

// DefaultCards parses the embedded word dataset. The dataset ships with the
// binary and is validated once; later calls return the same slice, which
// callers must treat as read-only.
func DefaultCards() []Card {
	loadDefaultOnce.Do(func() {
		if err := json.Unmarshal(wordData, &defaultCards); err != nil {
			panic(fmt.Sprintf("embedded word dataset is invalid: %v", err))
		}
	})
	return defaultCards
}
