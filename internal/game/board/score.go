package board

import "Expedition/internal/game/card"

// ScoreRound 计算两位玩家本轮得分
func (b *Board) ScoreRound() (int, int) {
	return b.Score(PlayerOne), b.Score(PlayerTwo)
}

func (b *Board) Score(owner Owner) int {
	if owner != PlayerOne && owner != PlayerTwo {
		return 0
	}
	total := 0
	for _, c := range card.Colors {
		total += ScoreStack(b.stacks[owner][c])
	}
	return total
}

// ScoreStack scores one color stack. Only the leading run of bets raises the
// multiplier; bets played after a numbered card add nothing.
func ScoreStack(stack []card.Card) int {
	if len(stack) == 0 {
		return 0
	}
	bets := 0
	for bets < len(stack) && stack[bets].IsBet() {
		bets++
	}
	sum := 0
	for _, c := range stack[bets:] {
		sum += c.Height
	}
	score := sum*(1+bets) - StackPenalty
	if len(stack) > LongStackSize {
		score += LongStackBonus
	}
	return score
}
