package handler

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/usecase"
)

type CalendarHandler struct {
	usecase     usecase.CalendarUsecase
	frontendURL string
	logger      *zap.Logger
}

func NewCalendarHandler(usecase usecase.CalendarUsecase, cfg *config.Config, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		usecase:     usecase,
		frontendURL: cfg.App.FrontendURL,
		logger:      logger,
	}
}

// Connect godoc
// @Summary Start Google authorization
// @Description Redirects the browser to the Google consent page
// @Tags auth
// @Param userId query string true "User ID"
// @Success 302 "Redirect to Google"
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/auth/google [get]
func (h *CalendarHandler) Connect(c *fiber.Ctx) error {
	authURL, err := h.usecase.Connect(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Redirect(authURL, fiber.StatusFound)
}

// Callback godoc
// @Summary Google OAuth callback
// @Description Completes authorization and redirects to the settings page with a result flag
// @Tags auth
// @Param code query string false "Authorization code"
// @Param state query string false "State nonce"
// @Param error query string false "Provider error"
// @Success 302 "Redirect to settings page"
// @Router /api/v1/auth/google/callback [get]
func (h *CalendarHandler) Callback(c *fiber.Ctx) error {
	_, err := h.usecase.Callback(c.UserContext(), entity.OAuthCallback{
		Code:  c.Query("code"),
		State: c.Query("state"),
		Error: c.Query("error"),
	})
	if err != nil {
		return c.Redirect(h.settingsURL("error", callbackErrorCode(c.Query("error"), err)), fiber.StatusFound)
	}
	return c.Redirect(h.settingsURL("success", "google_connected"), fiber.StatusFound)
}

func (h *CalendarHandler) settingsURL(key, value string) string {
	return h.frontendURL + "/settings?" + url.Values{key: {value}}.Encode()
}

func callbackErrorCode(providerError string, err error) string {
	switch {
	case errors.Is(err, entity.ErrOAuthDenied):
		return providerError
	case errors.Is(err, entity.ErrValidation):
		return "missing_params"
	case errors.Is(err, entity.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, entity.ErrTokenExchange):
		return "token_exchange"
	default:
		return "unexpected"
	}
}

// Export godoc
// @Summary Export appointments
// @Description Creates one Google Calendar event or Google Task per appointment
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body entity.ExportRequest true "Export request"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Failure 409 {object} entity.APIResponse
// @Failure 502 {object} entity.APIResponse
// @Router /api/v1/calendar/export [post]
func (h *CalendarHandler) Export(c *fiber.Ctx) error {
	var req entity.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	summary, err := h.usecase.ExportAppointments(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(entity.NewSuccessResponse(summary, summary.Message))
}

// GetSettings godoc
// @Summary Get calendar settings
// @Tags calendar
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/calendar/settings [get]
func (h *CalendarHandler) GetSettings(c *fiber.Ctx) error {
	status, err := h.usecase.GetSettings(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(status, "Settings retrieved successfully"))
}

// UpdateSettings godoc
// @Summary Update calendar settings
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body entity.CalendarSettingsRequest true "Settings"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/calendar/settings [put]
func (h *CalendarHandler) UpdateSettings(c *fiber.Ctx) error {
	var req entity.CalendarSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	settings, err := h.usecase.UpdateSettings(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(settings, "Settings updated successfully"))
}

// Disconnect godoc
// @Summary Disconnect Google account
// @Tags calendar
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/calendar/settings [delete]
func (h *CalendarHandler) Disconnect(c *fiber.Ctx) error {
	if err := h.usecase.Disconnect(c.UserContext(), c.Query("userId")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(entity.NewSuccessResponse(nil, "Google Calendar disconnected successfully"))
}
