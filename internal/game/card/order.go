package card

import (
	"errors"
	"fmt"
)

var ErrInvalidOrder = errors.New("color order must be a permutation of the five colors")

// Order 颜色的全序，注入到需要比较/排序卡牌的地方
type Order struct {
	pos [5]int
	seq [5]Color
}

// DefaultOrder follows the enumeration order.
var DefaultOrder = mustOrder(Colors...)

func NewOrder(colors ...Color) (Order, error) {
	var o Order
	if len(colors) != len(Colors) {
		return o, fmt.Errorf("%w: got %d colors", ErrInvalidOrder, len(colors))
	}
	seen := [5]bool{}
	for i, c := range colors {
		if !c.Valid() || seen[c] {
			return o, fmt.Errorf("%w: %v", ErrInvalidOrder, colors)
		}
		seen[c] = true
		o.pos[c] = i
		o.seq[i] = c
	}
	return o, nil
}

// ParseOrder builds an Order from color names; empty input yields DefaultOrder.
func ParseOrder(names []string) (Order, error) {
	if len(names) == 0 {
		return DefaultOrder, nil
	}
	colors := make([]Color, 0, len(names))
	for _, n := range names {
		c, err := ParseColor(n)
		if err != nil {
			return Order{}, err
		}
		colors = append(colors, c)
	}
	return NewOrder(colors...)
}

func mustOrder(colors ...Color) Order {
	o, err := NewOrder(colors...)
	if err != nil {
		panic(err)
	}
	return o
}

func (o Order) Index(c Color) int {
	return o.pos[c]
}

// Colors returns the colors in this order.
func (o Order) Colors() []Color {
	out := make([]Color, len(o.seq))
	copy(out, o.seq[:])
	return out
}

// Compare 先比颜色位置，再比高度（bet 视为 0），最后用 Bet 序号保证唯一
func (o Order) Compare(a, b Card) int {
	if d := o.pos[a.Color] - o.pos[b.Color]; d != 0 {
		return sign(d)
	}
	if d := a.Height - b.Height; d != 0 {
		return sign(d)
	}
	return sign(a.Bet - b.Bet)
}

func (o Order) Less(a, b Card) bool {
	return o.Compare(a, b) < 0
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}
