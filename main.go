package main

import (
	"log"

	"github.com/guandanclub/scorekeeper/config"
	_ "github.com/guandanclub/scorekeeper/docs"
	"github.com/guandanclub/scorekeeper/internal/models"
	"github.com/guandanclub/scorekeeper/routes"
)

// @title Guandan Scorekeeper REST API
// @version 1.0
// @description Match tracking and statistics for Guandan club nights.
// @host localhost:8899
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&models.Match{}, &models.Player{}, &models.ScoreRule{}, &models.RoundScore{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(cfg)

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
