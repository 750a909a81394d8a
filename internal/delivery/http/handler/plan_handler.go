package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/usecase"
)

type PlanHandler struct {
	usecase usecase.PlanUsecase
	logger  *zap.Logger
}

func NewPlanHandler(usecase usecase.PlanUsecase, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Preview godoc
// @Summary Preview a plan
// @Description Generates plan entries without saving them
// @Tags plans
// @Accept json
// @Produce json
// @Param request body entity.PlanInput true "Plan input"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 502 {object} entity.APIResponse
// @Router /api/v1/plans/preview [post]
func (h *PlanHandler) Preview(c *fiber.Ctx) error {
	var input entity.PlanInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c)
	}

	entries, err := h.usecase.PreviewPlan(c.UserContext(), &input)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(entries, "Plan preview generated successfully"))
}

// Create godoc
// @Summary Create a plan
// @Description Generates a plan and stores it with its appointments
// @Tags plans
// @Accept json
// @Produce json
// @Param request body entity.PlanInput true "Plan input"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 502 {object} entity.APIResponse
// @Router /api/v1/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var input entity.PlanInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c)
	}

	result, err := h.usecase.CreatePlan(c.UserContext(), &input)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entity.NewSuccessResponse(result, "Plan created successfully"))
}

// List godoc
// @Summary List plans
// @Tags plans
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	plans, err := h.usecase.ListPlans(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(plans, "Plans retrieved successfully"))
}

// Get godoc
// @Summary Get a plan
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param userId query string true "User ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/plans/{id} [get]
func (h *PlanHandler) Get(c *fiber.Ctx) error {
	plan, err := h.usecase.GetPlan(c.UserContext(), c.Query("userId"), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(plan, "Plan retrieved successfully"))
}

// Delete godoc
// @Summary Delete a plan
// @Description Deletes the plan and its appointments
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param userId query string true "User ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/plans/{id} [delete]
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	if err := h.usecase.DeletePlan(c.UserContext(), c.Query("userId"), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Plan deleted successfully"))
}
