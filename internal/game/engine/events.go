package engine

import (
	"Expedition/internal/game/board"
	"Expedition/internal/game/card"
)

type EventType string

const (
	EventRoundStart   EventType = "round_start"
	EventPlay         EventType = "play"
	EventDiscard      EventType = "discard"
	EventDraw         EventType = "draw"
	EventIllegalPlay  EventType = "illegal_play"
	EventEmptyDiscard EventType = "empty_discard"
	EventRoundEnd     EventType = "round_end"
	EventGameEnd      EventType = "game_end"
)

// Event 每步的只读遥测，供日志/渲染层使用
type Event struct {
	Type   EventType      `json:"type"`
	GameID string         `json:"gameId"`
	Round  int            `json:"round"`
	Turn   int            `json:"turn"`
	Player board.Owner    `json:"player,omitempty"`
	Card   *card.Card     `json:"card,omitempty"`
	Source string         `json:"source,omitempty"`
	Hand   []card.Card    `json:"hand,omitempty"`
	Board  board.Snapshot `json:"board,omitempty"`
	Deck   int            `json:"deck"`
	Scores *[2]int        `json:"scores,omitempty"`
	Totals *[2]int        `json:"totals,omitempty"`
	Winner *board.Owner   `json:"winner,omitempty"`
}

// Observer 接收引擎事件（对应 websocket hub 的广播）
type Observer interface {
	Publish(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

func (f ObserverFunc) Publish(ev Event) { f(ev) }

type nopObserver struct{}

func (nopObserver) Publish(Event) {}
