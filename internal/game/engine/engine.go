package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"Expedition/internal/game/board"
	"Expedition/internal/game/card"
	"Expedition/internal/game/deck"
	"Expedition/internal/game/player"
	"Expedition/internal/utils"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Phase 回合状态机
type Phase string

const (
	PhaseDeal     Phase = "deal"
	PhasePlay     Phase = "play"
	PhaseDraw     Phase = "draw"
	PhaseRoundEnd Phase = "round_end"
	PhaseGameEnd  Phase = "game_end"
)

const DefaultHandSize = 8

var (
	ErrInvalidOptions = errors.New("invalid game options")
	ErrAgentStalled   = errors.New("agent did not produce a usable action")
	ErrEmptyDiscard   = errors.New("discard pile is empty")
)

type Options struct {
	GameID   string
	Rounds   int
	HandSize int
	Seed     int64
	// MaxAttempts caps re-queries within one phase; 0 means no cap.
	MaxAttempts int
	Order       card.Order
	Logger      *log.Logger
}

type RoundScore struct {
	Round  int    `json:"round"`
	Scores [2]int `json:"scores"`
}

type Result struct {
	GameID string       `json:"gameId"`
	Scores [2]int       `json:"scores"`
	Winner *board.Owner `json:"winner,omitempty"` // nil on a draw
	Rounds []RoundScore `json:"rounds"`
}

// Game 两名 Agent 的对局，Engine 是唯一修改共享状态的地方
type Game struct {
	ID     string
	agents [2]player.Agent
	deck   *deck.Deck
	board  *board.Board
	rnd    *rand.Rand
	opts   Options
	obs    Observer
	log    *log.Logger

	phase  Phase
	active board.Owner
	round  int
	turn   int
	totals [2]int
	rounds []RoundScore
}

// NewGame a1 must hold id 1 and a2 id 2. obs may be nil.
func NewGame(a1, a2 player.Agent, opts Options, obs Observer) (*Game, error) {
	if a1 == nil || a2 == nil {
		return nil, fmt.Errorf("%w: both agents required", ErrInvalidOptions)
	}
	if a1.ID() != board.PlayerOne || a2.ID() != board.PlayerTwo {
		return nil, fmt.Errorf("%w: agent ids must be 1 and 2, got %d and %d", ErrInvalidOptions, a1.ID(), a2.ID())
	}
	if opts.Rounds < 1 {
		return nil, fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidOptions, opts.Rounds)
	}
	if opts.HandSize == 0 {
		opts.HandSize = DefaultHandSize
	}
	if opts.HandSize < 1 || 2*opts.HandSize >= deck.FullSize {
		return nil, fmt.Errorf("%w: hand size %d", ErrInvalidOptions, opts.HandSize)
	}
	if opts.MaxAttempts < 0 {
		return nil, fmt.Errorf("%w: max attempts %d", ErrInvalidOptions, opts.MaxAttempts)
	}
	if opts.Order == (card.Order{}) {
		opts.Order = card.DefaultOrder
	}
	if opts.GameID == "" {
		opts.GameID = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = utils.Print
	}
	if obs == nil {
		obs = nopObserver{}
	}

	rnd := rand.New(rand.NewSource(opts.Seed))
	return &Game{
		ID:     opts.GameID,
		agents: [2]player.Agent{a1, a2},
		deck:   deck.NewDeck(rnd.Int63()),
		board:  board.New(),
		rnd:    rnd,
		opts:   opts,
		obs:    obs,
		log:    opts.Logger.With("game", opts.GameID),
		phase:  PhaseDeal,
	}, nil
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) Totals() [2]int {
	return g.totals
}

func (g *Game) agent(o board.Owner) player.Agent {
	return g.agents[o-1]
}

// Play 运行所有轮次并返回累计得分。只有手牌不同步或 Agent 卡死会返回错误。
func (g *Game) Play() (Result, error) {
	for r := 1; r <= g.opts.Rounds; r++ {
		if err := g.playRound(r); err != nil {
			return Result{}, fmt.Errorf("game %s round %d: %w", g.ID, r, err)
		}
	}
	g.phase = PhaseGameEnd

	res := Result{
		GameID: g.ID,
		Scores: g.totals,
		Rounds: g.rounds,
	}
	switch {
	case g.totals[0] > g.totals[1]:
		w := board.PlayerOne
		res.Winner = &w
	case g.totals[1] > g.totals[0]:
		w := board.PlayerTwo
		res.Winner = &w
	}

	totals := g.totals
	g.obs.Publish(Event{Type: EventGameEnd, GameID: g.ID, Round: g.round, Totals: &totals, Winner: res.Winner})
	if res.Winner == nil {
		g.log.Info("game over: draw", "scores", g.totals)
	} else {
		g.log.Info("game over", "winner", g.agent(*res.Winner).Name(), "scores", g.totals)
	}
	return res, nil
}

func (g *Game) playRound(r int) error {
	g.round = r
	g.turn = 0
	g.phase = PhaseDeal

	g.deck.Reset()
	g.board.Reset()
	h1, h2, err := g.deck.DealHands(g.opts.HandSize)
	if err != nil {
		return err
	}
	g.agents[0].SetHand(h1)
	g.agents[1].SetHand(h2)
	g.active = board.Owner(1 + g.rnd.Intn(2))

	g.log.Info("round start", "round", r, "starter", g.agent(g.active).Name())
	g.publish(EventRoundStart, g.agent(g.active), nil, "")

	// 每次出牌前检查牌库，牌库为空立即结束本轮
	for g.deck.Remaining() > 0 {
		g.turn++
		a := g.agent(g.active)
		if err := g.playPhase(a); err != nil {
			return err
		}
		if err := g.drawPhase(a); err != nil {
			return err
		}
		g.active = g.active.Other()
	}

	g.phase = PhaseRoundEnd
	s1, s2 := g.board.ScoreRound()
	g.totals[0] += s1
	g.totals[1] += s2
	g.rounds = append(g.rounds, RoundScore{Round: r, Scores: [2]int{s1, s2}})

	scores, totals := [2]int{s1, s2}, g.totals
	g.obs.Publish(Event{
		Type:   EventRoundEnd,
		GameID: g.ID,
		Round:  r,
		Turn:   g.turn,
		Board:  g.board.Snapshot(),
		Scores: &scores,
		Totals: &totals,
	})
	g.log.Info("round end", "round", r, "turns", g.turn, "scores", scores, "totals", totals)
	return nil
}

func (g *Game) playPhase(a player.Agent) error {
	g.phase = PhasePlay
	for attempt := 1; ; attempt++ {
		c, dest := a.ChoosePlay(g.board)
		if dest == a.ID() || dest == board.Discard {
			if g.board.CanPlay(dest, c) {
				return g.applyPlay(a, c, dest)
			}
		}
		g.log.Debug("illegal play", "player", a.Name(), "card", c, "dest", dest, "attempt", attempt)
		g.publish(EventIllegalPlay, a, &c, dest.String())
		if g.opts.MaxAttempts > 0 && attempt >= g.opts.MaxAttempts {
			return fmt.Errorf("%w: %s proposed %d illegal plays", ErrAgentStalled, a.Name(), attempt)
		}
	}
}

func (g *Game) applyPlay(a player.Agent, c card.Card, dest board.Owner) error {
	if err := a.RemoveFromHand(c); err != nil {
		g.log.Error("hand out of sync", "player", a.Name(), "card", c, "err", err)
		return err
	}
	if err := g.board.PlayCard(dest, c); err != nil {
		return err
	}
	typ := EventPlay
	if dest == board.Discard {
		typ = EventDiscard
	}
	g.log.Debug(string(typ), "player", a.Name(), "card", c)
	g.publish(typ, a, &c, dest.String())
	return nil
}

func (g *Game) drawPhase(a player.Agent) error {
	g.phase = PhaseDraw
	for attempt := 1; ; attempt++ {
		src := a.ChooseDraw(g.board)
		c, err := g.take(src)
		switch {
		case err == nil:
			a.AddToHand(c)
			g.log.Debug("draw", "player", a.Name(), "source", src, "card", c)
			g.publish(EventDraw, a, &c, src.String())
			return nil
		case errors.Is(err, deck.ErrEmptyDeck):
			// 出牌前已检查过牌库，这里只做兜底：直接结束本轮
			g.log.Warn("draw from empty deck ends the round", "player", a.Name())
			return nil
		}
		g.log.Debug("empty discard", "player", a.Name(), "source", src, "attempt", attempt)
		g.publish(EventEmptyDiscard, a, nil, src.String())
		if g.opts.MaxAttempts > 0 && attempt >= g.opts.MaxAttempts {
			return fmt.Errorf("%w: %s chose %d empty draw sources", ErrAgentStalled, a.Name(), attempt)
		}
	}
}

func (g *Game) take(src player.DrawSource) (card.Card, error) {
	if src.Deck {
		return g.deck.DrawTop()
	}
	c, ok := g.board.TakeFromDiscard(src.Color)
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %s", ErrEmptyDiscard, src.Color)
	}
	return c, nil
}

func (g *Game) publish(typ EventType, a player.Agent, c *card.Card, source string) {
	g.obs.Publish(Event{
		Type:   typ,
		GameID: g.ID,
		Round:  g.round,
		Turn:   g.turn,
		Player: a.ID(),
		Card:   c,
		Source: source,
		Hand:   a.Hand(),
		Board:  g.board.Snapshot(),
		Deck:   g.deck.Remaining(),
	})
}
