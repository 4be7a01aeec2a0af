package main

import (
	"log"
	"os"

	"chatsync-be/internal/constant"
	"chatsync-be/internal/model"
	"chatsync-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string { return &s }

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

	users := []model.User{
		{
			ID:           uuid.New(),
			Username:     "admin",
			DisplayName:  "Channel Admin",
			PasswordHash: "$2a$10$seeded-placeholder-hash",
			Role:         constant.RoleSuperuser,
		},
		{
			ID:           uuid.New(),
			Username:     "alice",
			DisplayName:  "Alice",
			PasswordHash: "$2a$10$seeded-placeholder-hash",
			Role:         constant.RoleMember,
		},
		{
			ID:           uuid.New(),
			Username:     "bob",
			DisplayName:  "Bob",
			PasswordHash: "$2a$10$seeded-placeholder-hash",
			Role:         constant.RoleMember,
		},
	}

	for i := range users {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).Create(&users[i])
		if result.Error != nil {
			log.Fatalf("Error: Failed to seed user %s: %v", users[i].Username, result.Error)
		}
	}

	message := model.Message{
		ID:       uuid.New(),
		AuthorID: users[0].ID,
		Content:  strPtr("Welcome to the channel, @alice and @bob!"),
		Kind:     constant.MessageKindText,
	}
	if err := db.Create(&message).Error; err != nil {
		log.Printf("Warn: Failed to seed welcome message: %v", err)
	}

	log.Println("Seed completed successfully")
}
