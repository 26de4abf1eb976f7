package engine

import (
	"io"
	"testing"

	"Expedition/internal/game/board"
	"Expedition/internal/game/card"
	"Expedition/internal/game/player"
	"Expedition/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder 记录所有事件，对应 mockHub
type recorder struct {
	events []Event
}

func (r *recorder) Publish(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) count(typ EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

type playChoice struct {
	card card.Card
	dest board.Owner
}

// stubAgent 先按队列出牌/摸牌，队列用完后退回 Scripted 行为
type stubAgent struct {
	*player.Scripted
	plays         []playChoice
	draws         []player.DrawSource
	alwaysIllegal bool
}

func newStub(id board.Owner) *stubAgent {
	return &stubAgent{Scripted: player.NewScripted(id, card.DefaultOrder)}
}

func (s *stubAgent) ChoosePlay(b board.View) (card.Card, board.Owner) {
	if s.alwaysIllegal {
		return s.Hand()[0], board.Owner(7)
	}
	if len(s.plays) > 0 {
		p := s.plays[0]
		s.plays = s.plays[1:]
		return p.card, p.dest
	}
	return s.Scripted.ChoosePlay(b)
}

func (s *stubAgent) ChooseDraw(b board.View) player.DrawSource {
	if len(s.draws) > 0 {
		d := s.draws[0]
		s.draws = s.draws[1:]
		return d
	}
	return s.Scripted.ChooseDraw(b)
}

func quietOptions(rounds int, seed int64) Options {
	return Options{
		GameID: "test-game",
		Rounds: rounds,
		Seed:   seed,
		Logger: utils.NewLogger(io.Discard, "error"),
	}
}

func newAgents(t *testing.T, k1, k2 string) (player.Agent, player.Agent) {
	a1, err := player.New(k1, board.PlayerOne, card.DefaultOrder, 101)
	require.NoError(t, err)
	a2, err := player.New(k2, board.PlayerTwo, card.DefaultOrder, 202)
	require.NoError(t, err)
	return a1, a2
}

func TestNewGameValidation(t *testing.T) {
	a1, a2 := newAgents(t, "test", "test")

	_, err := NewGame(a1, a2, quietOptions(0, 1), nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewGame(a2, a1, quietOptions(1, 1), nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewGame(a1, nil, quietOptions(1, 1), nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	opts := quietOptions(1, 1)
	opts.HandSize = 30
	_, err = NewGame(a1, a2, opts, nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	g, err := NewGame(a1, a2, Options{Rounds: 1, Logger: utils.NewLogger(io.Discard, "error")}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, PhaseDeal, g.Phase())
}

func TestScriptedGameIsDraw(t *testing.T) {
	a1, a2 := newAgents(t, "test", "test")
	rec := &recorder{}
	g, err := NewGame(a1, a2, quietOptions(2, 3), rec)
	require.NoError(t, err)

	res, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 0}, res.Scores)
	assert.Nil(t, res.Winner)
	assert.Len(t, res.Rounds, 2)
	assert.Equal(t, PhaseGameEnd, g.Phase())

	// 每轮 44 次出牌 + 44 次从牌库摸牌
	assert.Equal(t, 88, rec.count(EventDiscard))
	assert.Equal(t, 88, rec.count(EventDraw))
	assert.Equal(t, 2, rec.count(EventRoundStart))
	assert.Equal(t, 2, rec.count(EventRoundEnd))
	assert.Equal(t, 1, rec.count(EventGameEnd))
}

func TestRoundEndsWhenDeckEmpties(t *testing.T) {
	a1, a2 := newAgents(t, "ai", "ai")
	rec := &recorder{}
	g, err := NewGame(a1, a2, quietOptions(1, 17), rec)
	require.NoError(t, err)
	_, err = g.Play()
	require.NoError(t, err)

	var last Event
	for _, ev := range rec.events {
		if ev.Type == EventRoundEnd {
			break
		}
		last = ev
	}
	// 牌库摸空后，对手不再获得额外回合
	assert.Equal(t, EventDraw, last.Type)
	assert.Equal(t, "deck", last.Source)
	assert.Equal(t, 0, last.Deck)

	for _, ev := range rec.events {
		if ev.Type == EventPlay || ev.Type == EventDiscard {
			assert.Positive(t, ev.Deck, "no play once the deck is empty")
		}
	}
}

func TestTurnsAlternate(t *testing.T) {
	a1, a2 := newAgents(t, "ai", "random")
	rec := &recorder{}
	g, err := NewGame(a1, a2, quietOptions(1, 5), rec)
	require.NoError(t, err)
	_, err = g.Play()
	require.NoError(t, err)

	var prev board.Owner
	for _, ev := range rec.events {
		if ev.Type != EventPlay && ev.Type != EventDiscard {
			continue
		}
		if prev != 0 {
			assert.Equal(t, prev.Other(), ev.Player, "turn %d", ev.Turn)
		}
		prev = ev.Player
	}
}

func TestHandAndBoardConservation(t *testing.T) {
	a1, a2 := newAgents(t, "ai", "random")
	rec := &recorder{}
	g, err := NewGame(a1, a2, quietOptions(2, 8), rec)
	require.NoError(t, err)
	_, err = g.Play()
	require.NoError(t, err)

	for _, ev := range rec.events {
		switch ev.Type {
		case EventPlay, EventDiscard:
			assert.Len(t, ev.Hand, 7)
		case EventDraw:
			assert.Len(t, ev.Hand, 8)
		case EventRoundEnd:
			n := 0
			for _, byColor := range ev.Board {
				for _, s := range byColor {
					n += len(s)
				}
			}
			assert.Equal(t, 60-16, n)
		}
	}
}

func TestStartingPlayerVaries(t *testing.T) {
	starters := map[board.Owner]bool{}
	for seed := int64(1); seed <= 20; seed++ {
		a1, a2 := newAgents(t, "test", "test")
		rec := &recorder{}
		g, err := NewGame(a1, a2, quietOptions(1, seed), rec)
		require.NoError(t, err)
		_, err = g.Play()
		require.NoError(t, err)
		starters[rec.events[0].Player] = true
	}
	assert.True(t, starters[board.PlayerOne])
	assert.True(t, starters[board.PlayerTwo])
}

func TestSameSeedSameGame(t *testing.T) {
	run := func() Result {
		a1, a2 := newAgents(t, "ai", "random")
		g, err := NewGame(a1, a2, quietOptions(3, 2024), nil)
		require.NoError(t, err)
		res, err := g.Play()
		require.NoError(t, err)
		return res
	}
	assert.Equal(t, run(), run())
}

func TestResultConsistency(t *testing.T) {
	a1, a2 := newAgents(t, "ai", "test")
	g, err := NewGame(a1, a2, quietOptions(3, 77), nil)
	require.NoError(t, err)
	res, err := g.Play()
	require.NoError(t, err)

	var sum [2]int
	for _, r := range res.Rounds {
		sum[0] += r.Scores[0]
		sum[1] += r.Scores[1]
	}
	assert.Equal(t, res.Scores, sum)
	assert.Equal(t, res.Scores, g.Totals())
	assert.Zero(t, res.Scores[1], "discard-only player never scores")

	switch {
	case res.Scores[0] > res.Scores[1]:
		require.NotNil(t, res.Winner)
		assert.Equal(t, board.PlayerOne, *res.Winner)
	case res.Scores[0] < res.Scores[1]:
		require.NotNil(t, res.Winner)
		assert.Equal(t, board.PlayerTwo, *res.Winner)
	default:
		assert.Nil(t, res.Winner)
	}
}

func TestIllegalPlayIsRequeried(t *testing.T) {
	s1 := newStub(board.PlayerOne)
	s2 := newStub(board.PlayerTwo)
	rec := &recorder{}
	g, err := NewGame(s1, s2, quietOptions(1, 4), rec)
	require.NoError(t, err)

	g.deck.Reset()
	g.board.Reset()
	s1.SetHand([]card.Card{card.Number(card.Red, 3), card.Number(card.Red, 6)})
	require.NoError(t, g.board.PlayCard(board.PlayerOne, card.Number(card.Red, 5)))

	s1.plays = []playChoice{
		{card.Number(card.Red, 3), board.PlayerOne}, // 低于堆顶
		{card.Number(card.Red, 6), board.PlayerTwo}, // 对手的牌堆
		{card.Number(card.Red, 6), board.Owner(9)},
		{card.Number(card.Red, 6), board.PlayerOne},
	}
	require.NoError(t, g.playPhase(s1))

	assert.Equal(t, 3, rec.count(EventIllegalPlay))
	assert.Equal(t, 1, rec.count(EventPlay))
	top, ok := g.board.TopCard(board.PlayerOne, card.Red)
	require.True(t, ok)
	assert.Equal(t, card.Number(card.Red, 6), top)
	assert.Equal(t, []card.Card{card.Number(card.Red, 3)}, s1.Hand())
	assert.Empty(t, g.board.Stack(board.PlayerTwo, card.Red))
}

func TestEmptyDiscardIsRequeried(t *testing.T) {
	s1 := newStub(board.PlayerOne)
	s2 := newStub(board.PlayerTwo)
	rec := &recorder{}
	g, err := NewGame(s1, s2, quietOptions(1, 4), rec)
	require.NoError(t, err)

	g.deck.Reset()
	g.board.Reset()
	s1.SetHand(nil)
	require.NoError(t, g.board.PlayCard(board.Discard, card.Number(card.Blue, 4)))

	s1.draws = []player.DrawSource{
		player.FromDiscard(card.Red),
		player.FromDiscard(card.Red),
		player.FromDiscard(card.Blue),
	}
	require.NoError(t, g.drawPhase(s1))

	assert.Equal(t, 2, rec.count(EventEmptyDiscard))
	assert.Equal(t, []card.Card{card.Number(card.Blue, 4)}, s1.Hand())
	assert.Empty(t, g.board.Stack(board.Discard, card.Blue))
	assert.Equal(t, 60, g.deck.Remaining(), "deck untouched")
}

func TestCardNotInHandAbortsGame(t *testing.T) {
	s1 := newStub(board.PlayerOne)
	s2 := newStub(board.PlayerTwo)
	ghost := card.Number(card.Red, 11)
	s1.plays = []playChoice{{ghost, board.Discard}}
	s2.plays = []playChoice{{ghost, board.Discard}}

	g, err := NewGame(s1, s2, quietOptions(1, 4), nil)
	require.NoError(t, err)
	_, err = g.Play()
	assert.ErrorIs(t, err, player.ErrCardNotInHand)
}

func TestStalledAgent(t *testing.T) {
	s1 := newStub(board.PlayerOne)
	s2 := newStub(board.PlayerTwo)
	s1.alwaysIllegal = true
	s2.alwaysIllegal = true

	opts := quietOptions(1, 4)
	opts.MaxAttempts = 3
	rec := &recorder{}
	g, err := NewGame(s1, s2, opts, rec)
	require.NoError(t, err)
	_, err = g.Play()
	assert.ErrorIs(t, err, ErrAgentStalled)
	assert.Equal(t, 3, rec.count(EventIllegalPlay))
}

func TestDrawFromEmptyDeckEndsRound(t *testing.T) {
	s1 := newStub(board.PlayerOne)
	s2 := newStub(board.PlayerTwo)
	g, err := NewGame(s1, s2, quietOptions(1, 4), nil)
	require.NoError(t, err)

	g.deck.Reset()
	for g.deck.Remaining() > 0 {
		_, err := g.deck.DrawTop()
		require.NoError(t, err)
	}
	s1.SetHand(nil)
	require.NoError(t, g.drawPhase(s1))
	assert.Empty(t, s1.Hand())
}
