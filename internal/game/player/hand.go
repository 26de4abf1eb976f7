package player

import (
	"errors"
	"fmt"
	"sort"

	"Expedition/internal/game/card"
)

var ErrCardNotInHand = errors.New("card not in hand")

// Hand 手牌，始终按 Order 升序
type Hand struct {
	order card.Order
	cards []card.Card
}

func NewHand(order card.Order) *Hand {
	return &Hand{order: order}
}

// Set 清空后逐张插入，保持有序
func (h *Hand) Set(cards []card.Card) {
	h.cards = make([]card.Card, 0, len(cards)+1)
	for _, c := range cards {
		h.Add(c)
	}
}

// Add 二分查找插入位置
func (h *Hand) Add(c card.Card) {
	i := sort.Search(len(h.cards), func(i int) bool {
		return h.order.Compare(h.cards[i], c) >= 0
	})
	h.cards = append(h.cards, card.Card{})
	copy(h.cards[i+1:], h.cards[i:])
	h.cards[i] = c
}

// Remove drops the first card Equal to c.
func (h *Hand) Remove(c card.Card) error {
	for i, hc := range h.cards {
		if hc.Equal(c) {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrCardNotInHand, c)
}

func (h *Hand) Contains(c card.Card) bool {
	for _, hc := range h.cards {
		if hc.Equal(c) {
			return true
		}
	}
	return false
}

func (h *Hand) Cards() []card.Card {
	out := make([]card.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

func (h *Hand) Len() int {
	return len(h.cards)
}
