// Command sim runs one game headless and prints the result.
package main

import (
	"encoding/json"
	"os"
	"time"

	"Expedition/config"
	"Expedition/internal/game/board"
	"Expedition/internal/game/card"
	"Expedition/internal/game/engine"
	"Expedition/internal/game/player"
	"Expedition/internal/utils"
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
	logger := utils.Print

	gc := config.C.Game
	seed := gc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	order, err := card.ParseOrder(gc.ColorOrder)
	if err != nil {
		logger.Fatal("bad color order", "err", err)
	}
	a1, err := player.New(gc.Player1, board.PlayerOne, order, seed+1)
	if err != nil {
		logger.Fatal("player 1", "err", err)
	}
	a2, err := player.New(gc.Player2, board.PlayerTwo, order, seed+2)
	if err != nil {
		logger.Fatal("player 2", "err", err)
	}

	g, err := engine.NewGame(a1, a2, engine.Options{
		Rounds:      gc.Rounds,
		HandSize:    gc.HandSize,
		Seed:        seed,
		MaxAttempts: gc.MaxAttempts,
		Order:       order,
		Logger:      logger,
	}, nil)
	if err != nil {
		logger.Fatal("new game", "err", err)
	}
	logger.Info("starting", "game", g.ID, "seed", seed, "player1", a1.Name(), "player2", a2.Name(), "rounds", gc.Rounds)

	res, err := g.Play()
	if err != nil {
		logger.Fatal("game aborted", "err", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)
}
