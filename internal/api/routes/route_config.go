package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/api/handlers"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/middleware"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/jwt"
)

type Config struct {
	App         *fiber.App
	UserHandler handlers.UserHandler
	GoalHandler handlers.GoalHandler
	LogHandler  handlers.LogHandler
	ChatHandler handlers.ChatHandler
	Middleware  middleware.Middleware
	JWTService  jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Goal()
	c.Logs()
	c.Chat()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
		user.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
	}
}

func (c *Config) Goal() {
	goal := c.App.Group("/api/v1/goals", c.Middleware.AuthMiddleware(c.JWTService))

	goal.Post("/onboarding", c.GoalHandler.CompleteOnboarding)
	goal.Get("", c.GoalHandler.GetGoal)
	goal.Put("", c.GoalHandler.UpdateGoal)
}

func (c *Config) Logs() {
	logs := c.App.Group("/api/v1/logs", c.Middleware.AuthMiddleware(c.JWTService))

	logs.Post("/meals", c.LogHandler.AddMealLog)
	logs.Get("/meals", c.LogHandler.GetMealLogs)
	logs.Delete("/meals/:id", c.LogHandler.DeleteMealLog)

	logs.Post("/weights", c.LogHandler.AddWeightLog)
	logs.Get("/weights", c.LogHandler.GetWeightLogs)

	logs.Get("/summary", c.LogHandler.GetDailySummary)
	logs.Get("/feed", c.LogHandler.StreamFeed)
}

func (c *Config) Chat() {
	chat := c.App.Group("/api/v1/chat", c.Middleware.AuthMiddleware(c.JWTService))

	chat.Post("/messages", c.ChatHandler.SendMessage)
	chat.Get("/messages", c.ChatHandler.GetTranscript)
	chat.Post("/session", c.ChatHandler.StartNewSession)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
