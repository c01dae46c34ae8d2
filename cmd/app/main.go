package main

import (
	"github.com/gofiber/fiber/v2/log"

	"github.com/mtauhidul/niblet-ai-v2-sub000/cmd/config"
	migration "github.com/mtauhidul/niblet-ai-v2-sub000/cmd/database/migrate"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to configure app: %v", err)
	}

	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
