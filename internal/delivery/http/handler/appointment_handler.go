package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/usecase"
)

type AppointmentHandler struct {
	usecase usecase.AppointmentUsecase
	logger  *zap.Logger
}

func NewAppointmentHandler(usecase usecase.AppointmentUsecase, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// List godoc
// @Summary List appointments
// @Tags appointments
// @Produce json
// @Param userId query string true "User ID"
// @Param planId query string false "Plan ID"
// @Param startDate query string false "Earliest start (RFC3339 or YYYY-MM-DD)"
// @Param endDate query string false "Latest start (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	filter := entity.AppointmentFilter{
		UserID: c.Query("userId"),
		PlanID: c.Query("planId"),
	}

	var err error
	if filter.StartDate, err = parseDateParam(c.Query("startDate")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(entity.NewErrorResponse("BAD_REQUEST", "Invalid startDate"))
	}
	if filter.EndDate, err = parseDateParam(c.Query("endDate")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(entity.NewErrorResponse("BAD_REQUEST", "Invalid endDate"))
	}

	appointments, err := h.usecase.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(appointments, "Appointments retrieved successfully"))
}

// Create godoc
// @Summary Create an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body entity.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var req entity.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	appointment, err := h.usecase.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entity.NewSuccessResponse(appointment, "Appointment created successfully"))
}

// Update godoc
// @Summary Update an appointment
// @Description Partial update; omitted fields keep their value
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body entity.UpdateAppointmentRequest true "Changes"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/appointments [put]
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	var req entity.UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	appointment, err := h.usecase.Update(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(appointment, "Appointment updated successfully"))
}

// Delete godoc
// @Summary Delete an appointment
// @Tags appointments
// @Produce json
// @Param id query string true "Appointment ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/appointments [delete]
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.usecase.Delete(c.UserContext(), c.Query("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Appointment deleted successfully"))
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(entity.PlanEntryDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
