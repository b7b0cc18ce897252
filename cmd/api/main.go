package main

import (
	"log"

	"board-inventory-api-server/config"
	"board-inventory-api-server/internal/api/routes"
	"board-inventory-api-server/internal/auth"
	"board-inventory-api-server/internal/database"
	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/socket"
	"board-inventory-api-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	if err := auth.Init(cfg.JWT.Secret, cfg.JWT.Expiration); err != nil {
		log.Fatalf("Could not initialize auth: %v", err)
	}

	db, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}

	mongoStore, err := store.NewMongoStore(db)
	if err != nil {
		log.Fatalf("Could not initialize store: %v", err)
	}

	if err := database.SeedAdmin(mongoStore, cfg); err != nil {
		log.Fatalf("Could not seed admin user: %v", err)
	}

	wsHub := socket.NewHub()
	service := inventory.NewService(mongoStore, wsHub)

	router := routes.SetupRouter(mongoStore, service, wsHub, cfg)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
