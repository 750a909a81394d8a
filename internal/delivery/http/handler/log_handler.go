package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/usecase"
)

type LogHandler struct {
	usecase usecase.LogUsecase
	logger  *zap.Logger
}

func NewLogHandler(usecase usecase.LogUsecase, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// GetLogs returns the most recent provider calls
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	logs, err := h.usecase.Recent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(logs, "Logs retrieved successfully"))
}

// SearchLogs returns the provider calls made on behalf of one user
func (h *LogHandler) SearchLogs(c *fiber.Ctx) error {
	logs, err := h.usecase.ByUser(c.UserContext(), c.Query("userId"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(logs, "Logs retrieved successfully"))
}
