package main

import (
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/signal-pulse/internal/infrastructure/database"
	"github.com/johnquangdev/signal-pulse/pkg/config"
)

// Usage: migrate [up|down]
func main() {
	direction := migrate.Up
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "up":
		case "down":
			direction = migrate.Down
		default:
			log.Fatalf("Unknown direction %q, expected up or down", os.Args[1])
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database using GORM
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("🔄 Applying embedded migrations...")
	if _, err := database.Migrate(db, direction); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
}
