package manager

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"Expedition/internal/game/board"
	"Expedition/internal/game/card"
	"Expedition/internal/game/engine"
	"Expedition/internal/game/player"
	"Expedition/internal/utils"
	"Expedition/internal/websocket"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Status string

const (
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
	StatusFailed   Status = "failed"
)

var ErrGameNotFound = errors.New("game not found")

// Request 一局模拟的参数
type Request struct {
	Player1    string   `json:"player1" binding:"required"`
	Player2    string   `json:"player2" binding:"required"`
	Rounds     int      `json:"rounds" binding:"required,min=1,max=100"`
	Seed       int64    `json:"seed"`
	ColorOrder []string `json:"colorOrder"`
}

// Record 对局记录（仅保存在内存中）
type Record struct {
	ID        string         `json:"id"`
	Request   Request        `json:"request"`
	Status    Status         `json:"status"`
	Result    *engine.Result `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type Settings struct {
	HandSize    int
	MaxAttempts int
	Logger      *log.Logger
}

// GameManager 管理所有对局
type GameManager struct {
	mu       sync.RWMutex
	games    map[string]*Record
	hub      websocket.HubInterface
	settings Settings
	wg       sync.WaitGroup
}

func NewGameManager(hub websocket.HubInterface, s Settings) *GameManager {
	if s.Logger == nil {
		s.Logger = utils.Print
	}
	return &GameManager{
		games:    make(map[string]*Record),
		hub:      hub,
		settings: s,
	}
}

// hubObserver 把引擎事件转发给观战的 websocket 连接
type hubObserver struct {
	hub websocket.HubInterface
}

func (o hubObserver) Publish(ev engine.Event) {
	o.hub.BroadcastToGame(ev.GameID, websocket.OutgoingMessage{
		Event: string(ev.Type),
		Data:  ev,
	})
}

// StartGame 创建对局并异步运行
func (m *GameManager) StartGame(req Request) (Record, error) {
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	order, err := card.ParseOrder(req.ColorOrder)
	if err != nil {
		return Record{}, err
	}
	a1, err := player.New(req.Player1, board.PlayerOne, order, req.Seed+1)
	if err != nil {
		return Record{}, err
	}
	a2, err := player.New(req.Player2, board.PlayerTwo, order, req.Seed+2)
	if err != nil {
		return Record{}, err
	}

	id := uuid.NewString()
	var obs engine.Observer
	if m.hub != nil {
		obs = hubObserver{hub: m.hub}
	}
	g, err := engine.NewGame(a1, a2, engine.Options{
		GameID:      id,
		Rounds:      req.Rounds,
		HandSize:    m.settings.HandSize,
		Seed:        req.Seed,
		MaxAttempts: m.settings.MaxAttempts,
		Order:       order,
		Logger:      m.settings.Logger,
	}, obs)
	if err != nil {
		return Record{}, err
	}

	rec := &Record{
		ID:        id,
		Request:   req,
		Status:    StatusRunning,
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.games[id] = rec
	snapshot := *rec
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(g, rec)
	return snapshot, nil
}

func (m *GameManager) run(g *engine.Game, rec *Record) {
	defer m.wg.Done()
	res, err := g.Play()

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		rec.Status = StatusFailed
		rec.Error = err.Error()
		m.settings.Logger.Error("game failed", "game", rec.ID, "err", err)
		return
	}
	rec.Status = StatusFinished
	rec.Result = &res
}

func (m *GameManager) Get(id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.games[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return *rec, nil
}

func (m *GameManager) Exists(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.games[id]
	return ok
}

// List returns all records, newest first.
func (m *GameManager) List() []Record {
	m.mu.RLock()
	out := make([]Record, 0, len(m.games))
	for _, rec := range m.games {
		out = append(out, *rec)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Wait blocks until every started game has finished.
func (m *GameManager) Wait() {
	m.wg.Wait()
}
