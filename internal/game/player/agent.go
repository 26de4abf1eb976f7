package player

import (
	"errors"
	"fmt"
	"strings"

	"Expedition/internal/game/board"
	"Expedition/internal/game/card"
)

// DrawSource 摸牌来源：牌库或某种颜色的弃牌堆
type DrawSource struct {
	Deck  bool       `json:"deck"`
	Color card.Color `json:"color"`
}

func FromDeck() DrawSource {
	return DrawSource{Deck: true}
}

func FromDiscard(c card.Color) DrawSource {
	return DrawSource{Color: c}
}

func (s DrawSource) String() string {
	if s.Deck {
		return "deck"
	}
	return s.Color.String()
}

// Agent 任何参与者（脚本、启发式、随机……）都需实现
type Agent interface {
	ID() board.Owner
	Name() string
	SetHand(cards []card.Card)
	Hand() []card.Card
	// ChoosePlay returns the card and where it goes: the agent's own id or board.Discard.
	ChoosePlay(b board.View) (card.Card, board.Owner)
	ChooseDraw(b board.View) DrawSource
	RemoveFromHand(c card.Card) error
	AddToHand(c card.Card)
}

// base 共享的手牌管理，各 Agent 内嵌
type base struct {
	id   board.Owner
	hand *Hand
}

func newBase(id board.Owner, order card.Order) base {
	return base{id: id, hand: NewHand(order)}
}

func (p *base) ID() board.Owner { return p.id }
func (p *base) SetHand(cards []card.Card) { p.hand.Set(cards) }
func (p *base) Hand() []card.Card { return p.hand.Cards() }
func (p *base) RemoveFromHand(c card.Card) error { return p.hand.Remove(c) }
func (p *base) AddToHand(c card.Card) { p.hand.Add(c) }

const (
	KindScripted  = "scripted"
	KindHeuristic = "heuristic"
	KindRandom    = "random"
)

var ErrUnknownAgentKind = errors.New("agent kind not understood")

// New 根据类型名构造 Agent（"test"/"ai" 为旧名称）
func New(kind string, id board.Owner, order card.Order, seed int64) (Agent, error) {
	if id != board.PlayerOne && id != board.PlayerTwo {
		return nil, fmt.Errorf("invalid player id %d", int(id))
	}
	switch strings.ToLower(kind) {
	case KindScripted, "test":
		return NewScripted(id, order), nil
	case KindHeuristic, "ai":
		return NewHeuristic(id, order), nil
	case KindRandom:
		return NewRandom(id, order, seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAgentKind, kind)
}
