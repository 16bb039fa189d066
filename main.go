package main

import (
	"log"

	"github.com/dmartinezh/poketeams/config"
	"github.com/dmartinezh/poketeams/internal/card"
	"github.com/dmartinezh/poketeams/internal/team"
	"github.com/dmartinezh/poketeams/internal/user"
	"github.com/dmartinezh/poketeams/routes"
)

// @title Pokémon Teams REST API
// @version 1.0
// @description Backend for Pokémon purchases, mystery boxes and team building.
// @BasePath /
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{},
		&card.PokemonPurchase{},
		&team.Team{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes()

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
