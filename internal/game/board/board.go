package board

import (
	"errors"
	"fmt"

	"Expedition/internal/game/card"
)

// Owner 牌堆所属：0 为公共弃牌堆，1/2 为玩家
type Owner int

const (
	Discard   Owner = 0
	PlayerOne Owner = 1
	PlayerTwo Owner = 2
)

const numOwners = 3

const (
	LongStackBonus = 20
	StackPenalty   = 20
	// stacks longer than this earn the bonus
	LongStackSize = 7
)

var (
	ErrIllegalPlay  = errors.New("card cannot be played")
	ErrUnknownOwner = errors.New("unknown owner")
)

func (o Owner) Valid() bool {
	return o >= Discard && o <= PlayerTwo
}

func (o Owner) String() string {
	switch o {
	case Discard:
		return "discard"
	case PlayerOne:
		return "player1"
	case PlayerTwo:
		return "player2"
	}
	return fmt.Sprintf("owner(%d)", int(o))
}

// Other returns the opposing player.
func (o Owner) Other() Owner {
	if o == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// View 只读视图，交给 Agent 做决策
type View interface {
	CanPlay(owner Owner, c card.Card) bool
	TopCard(owner Owner, color card.Color) (card.Card, bool)
	Stack(owner Owner, color card.Color) []card.Card
}

// Board 3 个所属 × 5 种颜色 = 15 个牌堆，回合内只追加
type Board struct {
	stacks [numOwners][5][]card.Card
}

func New() *Board {
	return &Board{}
}

// Reset 新一轮开始时清空所有牌堆
func (b *Board) Reset() {
	b.stacks = [numOwners][5][]card.Card{}
}

// CanPlay 弃牌堆永远可放；玩家牌堆要求为空或高度不低于堆顶（bet 高度为 0）
func (b *Board) CanPlay(owner Owner, c card.Card) bool {
	if owner == Discard {
		return true
	}
	if !owner.Valid() || !c.Color.Valid() {
		return false
	}
	top, ok := b.TopCard(owner, c.Color)
	if !ok {
		return true
	}
	return c.Height >= top.Height
}

func (b *Board) TopCard(owner Owner, color card.Color) (card.Card, bool) {
	if !owner.Valid() || !color.Valid() {
		return card.Card{}, false
	}
	s := b.stacks[owner][color]
	if len(s) == 0 {
		return card.Card{}, false
	}
	return s[len(s)-1], true
}

func (b *Board) PlayCard(owner Owner, c card.Card) error {
	if !owner.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownOwner, int(owner))
	}
	if !b.CanPlay(owner, c) {
		return fmt.Errorf("%w: %v on %v", ErrIllegalPlay, c, owner)
	}
	b.stacks[owner][c.Color] = append(b.stacks[owner][c.Color], c)
	return nil
}

// Stack returns a copy of the stack, oldest card first.
func (b *Board) Stack(owner Owner, color card.Color) []card.Card {
	if !owner.Valid() || !color.Valid() {
		return nil
	}
	s := b.stacks[owner][color]
	out := make([]card.Card, len(s))
	copy(out, s)
	return out
}

// TakeFromDiscard 取走弃牌堆顶；为空时返回 false 且不修改牌堆
func (b *Board) TakeFromDiscard(color card.Color) (card.Card, bool) {
	if !color.Valid() {
		return card.Card{}, false
	}
	s := b.stacks[Discard][color]
	if len(s) == 0 {
		return card.Card{}, false
	}
	top := s[len(s)-1]
	b.stacks[Discard][color] = s[:len(s)-1]
	return top, true
}

// Snapshot 深拷贝，供事件/渲染使用
type Snapshot map[string]map[string][]card.Card

func (b *Board) Snapshot() Snapshot {
	out := make(Snapshot, numOwners)
	for o := Discard; o <= PlayerTwo; o++ {
		byColor := make(map[string][]card.Card, len(card.Colors))
		for _, c := range card.Colors {
			byColor[c.String()] = b.Stack(o, c)
		}
		out[o.String()] = byColor
	}
	return out
}
