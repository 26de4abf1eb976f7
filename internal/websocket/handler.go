package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GameChecker lets the handler reject unknown game IDs before upgrading.
type GameChecker interface {
	Exists(gameID string) bool
}

// GET /ws/:id  观看某一局的事件流
func ServeWS(hub *Hub, games GameChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("id")
		if games != nil && !games.Exists(gameID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &Client{
			ID:     uuid.NewString(),
			GameID: gameID,
			Conn:   conn,
			Send:   make(chan OutgoingMessage, 256),
			Hub:    hub,
		}
		hub.Register(client)

		go client.writePump()
		go client.readPump()
	}
}
