package deck

import (
	"errors"
	"math/rand"

	"Expedition/internal/game/card"
)

// FullSize 5 种颜色 × (3 张下注牌 + 9 张数字牌)
const FullSize = 60

var ErrEmptyDeck = errors.New("deck is empty")

// Deck 只负责洗牌与发牌（无规则判断）
type Deck struct {
	cards []card.Card
	rnd   *rand.Rand
}

func NewDeck(seed int64) *Deck {
	return &Deck{
		cards: make([]card.Card, 0, FullSize),
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

// Reset 重新生成整副牌并洗牌
func (d *Deck) Reset() {
	d.cards = Full()
	d.shuffle()
}

// Full returns the unshuffled multiset of one round.
func Full() []card.Card {
	cards := make([]card.Card, 0, FullSize)
	for i := 0; i < card.BetsPerColor; i++ {
		for _, c := range card.Colors {
			cards = append(cards, card.Wager(c, i))
		}
	}
	for _, c := range card.Colors {
		for h := card.MinHeight; h <= card.MaxHeight; h++ {
			cards = append(cards, card.Number(c, h))
		}
	}
	return cards
}

func (d *Deck) shuffle() {
	d.rnd.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// DealHands 轮流发牌：A 一张，B 一张……每人 n 张
func (d *Deck) DealHands(n int) ([]card.Card, []card.Card, error) {
	if n < 0 || 2*n > len(d.cards) {
		return nil, nil, ErrEmptyDeck
	}
	a := make([]card.Card, 0, n)
	b := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		a = append(a, d.cards[0])
		b = append(b, d.cards[1])
		d.cards = d.cards[2:]
	}
	return a, b, nil
}

func (d *Deck) DrawTop() (card.Card, error) {
	if len(d.cards) == 0 {
		return card.Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards 剩余牌的副本（测试/日志用）
func (d *Deck) Cards() []card.Card {
	out := make([]card.Card, len(d.cards))
	copy(out, d.cards)
	return out
}
