package player

import (
	"fmt"

	"Expedition/internal/game/board"
	"Expedition/internal/game/card"
)

// Scripted 最简单的参与者：弃掉最小的一张，从牌库摸牌
type Scripted struct {
	base
}

func NewScripted(id board.Owner, order card.Order) *Scripted {
	return &Scripted{base: newBase(id, order)}
}

func (p *Scripted) Name() string {
	return fmt.Sprintf("scripted-%d", int(p.id))
}

func (p *Scripted) ChoosePlay(b board.View) (card.Card, board.Owner) {
	return p.hand.cards[0], board.Discard
}

func (p *Scripted) ChooseDraw(b board.View) DrawSource {
	return FromDeck()
}
