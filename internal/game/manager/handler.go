package manager

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	mgr *GameManager
}

func NewHandler(mgr *GameManager) *Handler {
	return &Handler{mgr: mgr}
}

// Register 挂载 /games 路由
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/games", h.Start)
	r.GET("/games", h.List)
	r.GET("/games/:id", h.Get)
}

// POST /games  body: {player1, player2, rounds, seed, colorOrder}
func (h *Handler) Start(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.mgr.StartGame(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, rec)
}

// GET /games/:id
func (h *Handler) Get(c *gin.Context) {
	rec, err := h.mgr.Get(c.Param("id"))
	if errors.Is(err, ErrGameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.mgr.List())
}
