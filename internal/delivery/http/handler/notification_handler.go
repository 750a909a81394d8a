package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/usecase"
)

type NotificationHandler struct {
	usecase usecase.NotificationUsecase
	logger  *zap.Logger
}

func NewNotificationHandler(usecase usecase.NotificationUsecase, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// List godoc
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.usecase.List(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(notifications, "Notifications retrieved successfully"))
}

// Create godoc
// @Summary Create a notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body entity.CreateNotificationRequest true "Notification"
// @Success 201 {object} entity.APIResponse
// @Router /api/v1/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req entity.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	notification, err := h.usecase.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entity.NewSuccessResponse(notification, "Notification created successfully"))
}

// MarkRead godoc
// @Summary Mark a notification read or unread
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body entity.UpdateNotificationRequest true "Read flag"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/notifications [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	var req entity.UpdateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	notification, err := h.usecase.MarkRead(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(notification, "Notification updated successfully"))
}

// Delete godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Param id query string true "Notification ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/notifications [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	if err := h.usecase.Delete(c.UserContext(), c.Query("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Notification deleted successfully"))
}
