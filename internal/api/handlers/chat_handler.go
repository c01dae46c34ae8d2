package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/api/presenters"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/chat"
)

type (
	ChatHandler interface {
		SendMessage(c *fiber.Ctx) error
		GetTranscript(c *fiber.Ctx) error
		StartNewSession(c *fiber.Ctx) error
	}

	chatHandler struct {
		chatService chat.ChatService
		validator   *validator.Validate
	}
)

func NewChatHandler(chatService chat.ChatService, validator *validator.Validate) ChatHandler {
	return &chatHandler{
		chatService: chatService,
		validator:   validator,
	}
}

// SendMessage accepts multipart form data so a photo can ride along with the
// text. The image field is optional.
func (h *chatHandler) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SendMessageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if image, err := c.FormFile("image"); err == nil {
		req.Image = image
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageMissingChatMessage, err)
	}

	res, err := h.chatService.SendMessage(c.Context(), userID, *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageMissingChatMessage, err)
		case errors.Is(err, domain.ErrQuotaExceeded):
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageQuotaExceeded, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSendMessage, err)
		}
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendMessage)
}

func (h *chatHandler) GetTranscript(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.chatService.GetTranscript(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTranscript, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTranscript)
}

func (h *chatHandler) StartNewSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.chatService.StartNewSession(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNewSession, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessNewSession)
}
