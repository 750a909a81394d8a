package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/usecase"
)

// respondError maps a usecase error onto a status code and the error envelope
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("VALIDATION_ERROR", "Invalid request", usecase.ValidationDetails(err)...),
		)
	case errors.Is(err, entity.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse("NOT_FOUND", err.Error()),
		)
	case errors.Is(err, entity.ErrNotConnected):
		return c.Status(fiber.StatusConflict).JSON(
			entity.NewErrorResponse("NOT_CONNECTED", "Google Calendar not connected. Please connect your account first."),
		)
	case errors.Is(err, entity.ErrRefreshFailed):
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse("REFRESH_FAILED", "Google authorization expired. Please reconnect your account."),
		)
	case errors.Is(err, entity.ErrPlannerResponse):
		logger.Warn("Planner failure", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(
			entity.NewErrorResponse("PLANNER_ERROR", "Failed to generate plan. Please try again."),
		)
	default:
		logger.Error("Request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Internal server error"),
		)
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
	)
}
