package card

import (
	"errors"
	"fmt"
	"strings"
)

// Color 卡牌颜色
type Color int

const (
	Yellow Color = iota
	Blue
	White
	Green
	Red
)

// Colors 枚举顺序（也是默认排序）
var Colors = []Color{Yellow, Blue, White, Green, Red}

var colorNames = []string{"yellow", "blue", "white", "green", "red"}

var ErrUnknownColor = errors.New("unknown color")

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "?"
	}
	return colorNames[c]
}

// Valid reports whether c is one of the five colors.
func (c Color) Valid() bool {
	return c >= Yellow && c <= Red
}

func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

const (
	MinHeight    = 2
	MaxHeight    = 10
	BetsPerColor = 3
)

// Card 不可变值。Height 为 0 表示下注牌（bet），Bet 为区分三张下注牌的序号。
type Card struct {
	Color  Color `json:"color"`
	Height int   `json:"height"`
	Bet    int   `json:"bet,omitempty"`
}

func Number(c Color, height int) Card {
	return Card{Color: c, Height: height}
}

func Wager(c Color, n int) Card {
	return Card{Color: c, Height: 0, Bet: n}
}

func (c Card) IsBet() bool {
	return c.Height == 0
}

// Equal ignores the bet disambiguator: two bets of one color match each other.
func (c Card) Equal(o Card) bool {
	return c.Color == o.Color && c.Height == o.Height
}

func (c Card) String() string {
	if c.IsBet() {
		return fmt.Sprintf("%s bet (%d)", c.Color, c.Bet)
	}
	return fmt.Sprintf("%d %s", c.Height, c.Color)
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
