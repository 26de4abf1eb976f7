package player

import (
	"fmt"
	"math/rand"

	"Expedition/internal/game/board"
	"Expedition/internal/game/card"
)

// Random 随机出牌/摸牌，可能提出非法动作，由引擎重新询问
type Random struct {
	base
	rnd *rand.Rand
}

func NewRandom(id board.Owner, order card.Order, seed int64) *Random {
	return &Random{
		base: newBase(id, order),
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

func (p *Random) Name() string {
	return fmt.Sprintf("random-%d", int(p.id))
}

func (p *Random) ChoosePlay(b board.View) (card.Card, board.Owner) {
	c := p.hand.cards[p.rnd.Intn(len(p.hand.cards))]
	if p.rnd.Intn(2) == 0 {
		return c, board.Discard
	}
	return c, p.id
}

// ChooseDraw picks the deck or one of the five colors with equal weight.
func (p *Random) ChooseDraw(b board.View) DrawSource {
	n := p.rnd.Intn(len(card.Colors) + 1)
	if n == len(card.Colors) {
		return FromDeck()
	}
	return FromDiscard(card.Colors[n])
}
