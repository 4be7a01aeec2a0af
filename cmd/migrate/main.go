package main

import (
	"log"
	"os"

	"chatsync-be/internal/model"
	"chatsync-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	// Extensions GORM AutoMigrate does not create itself.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.Message{},
		&model.MessageEditHistory{},
		&model.Reaction{},
		&model.Mention{},
		&model.Bookmark{},
		&model.ReadReceipt{},
		&model.Device{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// Stale session rows from a previous run would ghost as connected devices.
	if err := db.Exec(`TRUNCATE TABLE devices;`).Error; err != nil {
		log.Printf("Warn: Failed to truncate devices: %v", err)
	}

	log.Println("Migration completed successfully")
}
