package player

import (
	"fmt"

	"Expedition/internal/game/board"
	"Expedition/internal/game/card"
)

// Heuristic plays, in priority order:
//  1. a follow-up on a started stack whose gap to the top is at most one
//  2. the lowest playable card
//  3. otherwise it discards its lowest card
//
// It draws from a discard pile whose top it could play right away, else the deck.
type Heuristic struct {
	base
}

func NewHeuristic(id board.Owner, order card.Order) *Heuristic {
	return &Heuristic{base: newBase(id, order)}
}

func (p *Heuristic) Name() string {
	return fmt.Sprintf("heuristic-%d", int(p.id))
}

func (p *Heuristic) ChoosePlay(b board.View) (card.Card, board.Owner) {
	var (
		follow, lowest       card.Card
		hasFollow, hasLowest bool
		bestGap              int
	)
	for _, c := range p.hand.cards {
		if !b.CanPlay(p.id, c) {
			continue
		}
		if top, ok := b.TopCard(p.id, c.Color); ok {
			gap := c.Height - top.Height
			if gap <= 1 && (!hasFollow || gap < bestGap) {
				follow, bestGap, hasFollow = c, gap, true
			}
		}
		if !hasLowest || c.Height < lowest.Height {
			lowest, hasLowest = c, true
		}
	}
	switch {
	case hasFollow:
		return follow, p.id
	case hasLowest:
		return lowest, p.id
	}
	return p.lowestCard(), board.Discard
}

func (p *Heuristic) lowestCard() card.Card {
	low := p.hand.cards[0]
	for _, c := range p.hand.cards[1:] {
		if c.Height < low.Height {
			low = c
		}
	}
	return low
}

func (p *Heuristic) ChooseDraw(b board.View) DrawSource {
	for _, c := range card.Colors {
		top, ok := b.TopCard(board.Discard, c)
		if ok && b.CanPlay(p.id, top) {
			return FromDiscard(c)
		}
	}
	return FromDeck()
}
