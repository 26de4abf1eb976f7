package websocket

import (
	"sync"

	"Expedition/internal/utils"
)

type HubInterface interface {
	BroadcastToGame(gameID string, msg OutgoingMessage)
	Subscribers(gameID string) int
	Close()
}

// Hub 按对局 ID 分组的观战连接
type Hub struct {
	games      map[string]map[*Client]struct{} // gameID -> clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	quit       chan struct{}
	closeOnce  sync.Once
	mu         sync.RWMutex
}

type broadcastReq struct {
	GameID  string
	Message OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		games:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	utils.Print.Info("hub started")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.games[c.GameID] == nil {
				h.games[c.GameID] = make(map[*Client]struct{})
			}
			h.games[c.GameID][c] = struct{}{}
			n := len(h.games[c.GameID])
			h.mu.Unlock()
			utils.Print.Debug("hub register", "client", c.ID, "game", c.GameID, "watchers", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.games[c.GameID]; ok {
				if _, ok := set[c]; ok {
					delete(set, c)
					close(c.Send)
					if len(set) == 0 {
						delete(h.games, c.GameID)
					}
				}
			}
			h.mu.Unlock()

		case req := <-h.broadcast:
			h.mu.RLock()
			for c := range h.games[req.GameID] {
				select {
				case c.Send <- req.Message:
				default:
					// 慢连接直接丢弃该条事件
				}
			}
			h.mu.RUnlock()

		case <-h.quit:
			h.mu.Lock()
			for id, set := range h.games {
				for c := range set {
					close(c.Send)
				}
				delete(h.games, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.quit:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// BroadcastToGame 发给正在观看该局的所有连接
func (h *Hub) BroadcastToGame(gameID string, msg OutgoingMessage) {
	select {
	case h.broadcast <- broadcastReq{GameID: gameID, Message: msg}:
	case <-h.quit:
	}
}

func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}
