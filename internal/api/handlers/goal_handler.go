package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/api/presenters"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/goal"
)

type (
	GoalHandler interface {
		CompleteOnboarding(c *fiber.Ctx) error
		UpdateGoal(c *fiber.Ctx) error
		GetGoal(c *fiber.Ctx) error
	}

	goalHandler struct {
		goalService goal.GoalService
		validator   *validator.Validate
	}
)

func NewGoalHandler(goalService goal.GoalService, validator *validator.Validate) GoalHandler {
	return &goalHandler{
		goalService: goalService,
		validator:   validator,
	}
}

func (h *goalHandler) CompleteOnboarding(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.OnboardingRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedOnboarding, err)
	}

	res, err := h.goalService.CompleteOnboarding(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrOnboardingDone) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedOnboarding, err)
		}
		return goalErrorResponse(c, domain.MessageFailedOnboarding, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessOnboarding)
}

func (h *goalHandler) UpdateGoal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateGoalRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateGoal, err)
	}

	res, err := h.goalService.UpdateGoal(c.Context(), *req, userID)
	if err != nil {
		return goalErrorResponse(c, domain.MessageFailedUpdateGoal, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateGoal)
}

func (h *goalHandler) GetGoal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.goalService.GetGoal(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetGoal, err)
		}
		return goalErrorResponse(c, domain.MessageFailedGetGoal, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGoal)
}

// goalErrorResponse maps the goal validation failures onto 422 so clients can
// distinguish a rejected goal from a malformed request.
func goalErrorResponse(c *fiber.Ctx, message string, err error) error {
	var unsafe *domain.UnsafeTimeframeError
	switch {
	case errors.As(err, &unsafe),
		errors.Is(err, domain.ErrInvalidGoalDirection),
		errors.Is(err, domain.ErrInvalidTargetDate),
		errors.Is(err, domain.ErrInfeasibleMacros),
		errors.Is(err, domain.ErrProfileIncomplete):
		return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, message, err)
	default:
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, message, err)
	}
}
