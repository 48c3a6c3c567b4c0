package tabu

// CardView answers a single participant's "may I see the card" query.
// When CanSee is false the card is withheld entirely.
type CardView struct {
	CanSee bool  `json:"canSee"`
	Card   *Card `json:"card"`
}

// SeeCard resolves card visibility for the requesting participant: the
// narrator sees it, the whole opposing team sees it (their controller
// must be able to call penalties), and the narrator's teammates do not.
// The answer depends on who asks, which is why the card never travels in
// the broadcast snapshot.
func (r *Room) SeeCard(requesterID string) (CardView, bool) {
	p, ok := r.participants[requesterID]
	if !ok {
		return CardView{}, false
	}

	isNarrator := r.Turn.NarratorID == requesterID
	isOpponent := p.Team != r.Turn.Team
	if !isNarrator && !isOpponent {
		return CardView{CanSee: false, Card: nil}, true
	}

	card := r.deck.Card(r.Turn.CurrentIndex)
	return CardView{CanSee: true, Card: &card}, true
}
