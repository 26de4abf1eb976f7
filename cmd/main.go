package main

import (
	"net/http"
	"os"

	"Expedition/config"
	"Expedition/internal/game/manager"
	"Expedition/internal/utils"
	"Expedition/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		utils.Error.Fatalf("Parse flags failed: %v", err)
	}
	path, _ := flags.GetString("config")
	if err := config.Load(path, flags); err != nil {
		utils.Error.Fatalf("Load config failed: %v", err)
	}
	utils.Init(config.C.Log.Level)

	//-------------------------------------------------------
	// 1. 初始化 Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//-------------------------------------------------------
	// 2. 观战 Hub（必须最先启动）
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	//-------------------------------------------------------
	// 3. GameManager：创建并运行模拟对局
	//-------------------------------------------------------
	gameMgr := manager.NewGameManager(hub, manager.Settings{
		HandSize:    config.C.Game.HandSize,
		MaxAttempts: config.C.Game.MaxAttempts,
		Logger:      utils.Print,
	})
	manager.NewHandler(gameMgr).Register(r)

	//-------------------------------------------------------
	// 4. WebSocket 观战入口
	//-------------------------------------------------------
	r.GET("/ws/:id", websocket.ServeWS(hub, gameMgr))

	utils.Info.Printf("Server running on %s", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Error.Fatalf("Server stopped: %v", err)
	}
}
