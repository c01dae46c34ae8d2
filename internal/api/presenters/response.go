package presenters

import "github.com/gofiber/fiber/v2"

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := Response{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	return c.Status(status).JSON(response)
}
