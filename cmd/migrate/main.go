package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tourhub/adapters/postgres/migrations"
)

func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if len(os.Args) > 1 && os.Args[len(os.Args)-1] != "status" && os.Args[len(os.Args)-1] != "up" {
		databaseURL = os.Args[len(os.Args)-1]
	}
	if databaseURL == "" {
		log.Fatal("Usage: migrate [up|status] [database_url] (or set DATABASE_URL)")
	}

	command := "up"
	if len(os.Args) > 1 && (os.Args[1] == "up" || os.Args[1] == "status") {
		command = os.Args[1]
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	migrator := migrations.NewMigrator(db.DB)

	switch command {
	case "up":
		if err := migrator.Up(ctx); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
	case "status":
		applied, pending, err := migrator.Status(ctx)
		if err != nil {
			log.Fatalf("Status failed: %v", err)
		}
		for _, name := range applied {
			log.Printf("applied: %s", name)
		}
		for _, name := range pending {
			log.Printf("pending: %s", name)
		}
	}
}
