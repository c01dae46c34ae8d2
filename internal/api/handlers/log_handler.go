package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/api/presenters"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/logstore"
)

type (
	LogHandler interface {
		AddMealLog(c *fiber.Ctx) error
		DeleteMealLog(c *fiber.Ctx) error
		GetMealLogs(c *fiber.Ctx) error
		AddWeightLog(c *fiber.Ctx) error
		GetWeightLogs(c *fiber.Ctx) error
		GetDailySummary(c *fiber.Ctx) error
		StreamFeed(c *fiber.Ctx) error
	}

	logHandler struct {
		logService logstore.LogService
		feed       logstore.Feed
		validator  *validator.Validate
	}
)

func NewLogHandler(logService logstore.LogService, feed logstore.Feed, validator *validator.Validate) LogHandler {
	return &logHandler{
		logService: logService,
		feed:       feed,
		validator:  validator,
	}
}

func (h *logHandler) AddMealLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddMealLogRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMealLog, err)
	}

	res, err := h.logService.AddMealLog(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMealLog, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddMealLog)
}

func (h *logHandler) DeleteMealLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	if err := h.logService.DeleteMealLog(c.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrMealLogNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteMealLog, err)
		}
		if errors.Is(err, domain.ErrUserNotAllowed) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteMealLog, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteMealLog, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMealLog)
}

func (h *logHandler) GetMealLogs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	res, err := h.logService.GetMealLogs(c.Context(), userID, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMealLogs, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMealLogs)
}

func (h *logHandler) AddWeightLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddWeightLogRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddWeightLog, err)
	}

	res, err := h.logService.AddWeightLog(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddWeightLog, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddWeightLog)
}

func (h *logHandler) GetWeightLogs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	res, err := h.logService.GetWeightLogs(c.Context(), userID, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetWeightLogs, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWeightLogs)
}

// StreamFeed pushes log snapshots to the client as server-sent events. The
// cached snapshot is written immediately, then one event per refresh until
// the client disconnects or the subscription is cancelled.
func (h *logHandler) StreamFeed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	updates, cancel := h.feed.Subscribe(userID)
	first := logstore.LogUpdate{
		UserID:  userID,
		Meals:   h.feed.MealSnapshot(c.Context(), userID),
		Weights: h.feed.WeightSnapshot(c.Context(), userID),
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		write := func(update logstore.LogUpdate) bool {
			payload, err := json.Marshal(update)
			if err != nil {
				return false
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return false
			}
			return w.Flush() == nil
		}
		if !write(first) {
			return
		}
		for update := range updates {
			if !write(update) {
				return
			}
		}
	})
	return nil
}

func (h *logHandler) GetDailySummary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.logService.GetDailySummary(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSummary, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSummary)
}
