package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealLogEntry{}); err != nil {
		log.Fatalf("Error migrating meal log database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.WeightLogEntry{}); err != nil {
		log.Fatalf("Error migrating weight log database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ChatMessage{}); err != nil {
		log.Fatalf("Error migrating chat message database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
