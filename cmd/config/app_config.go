package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/api/handlers"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/api/routes"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/middleware"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/utils"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/utils/storage"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/chat"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/goal"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/intent"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/jwt"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/logstore"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	mealRepository := logstore.NewMealLogRepository(db)
	weightRepository := logstore.NewWeightLogRepository(db)
	chatRepository := chat.NewChatRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	feed := logstore.NewFeed(mealRepository, weightRepository)
	extractor := intent.NewGeminiExtractor(intent.DefaultRequestTimeout)
	userService := user.NewUserService(userRepository, jwtService)
	goalService := goal.NewGoalService(userRepository, weightRepository, feed)
	logService := logstore.NewLogService(mealRepository, weightRepository, userRepository, feed)
	chatService := chat.NewChatService(
		chatRepository,
		userRepository,
		mealRepository,
		weightRepository,
		feed,
		extractor,
		s3,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, chatService, validator)
	goalHandler := handlers.NewGoalHandler(goalService, validator)
	logHandler := handlers.NewLogHandler(logService, feed, validator)
	chatHandler := handlers.NewChatHandler(chatService, validator)

	// routes
	routesConfig := routes.Config{
		App:         app,
		UserHandler: userHandler,
		GoalHandler: goalHandler,
		LogHandler:  logHandler,
		ChatHandler: chatHandler,
		Middleware:  middlewares,
		JWTService:  jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
