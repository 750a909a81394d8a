package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/infrastructure/database"
	"goal-tracker/internal/infrastructure/redis"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(db *database.Database, redisClient *redis.RedisClient) *HealthHandler {
	return NewHealthHandlerWithChecks(map[string]Pinger{
		"database": db,
		"redis":    redisClient,
	})
}

func NewHealthHandlerWithChecks(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Version is set at build time with -ldflags.
var Version = "dev"

// Health godoc
// @Summary Health check
// @Description Check if the service and its stores are reachable
// @Tags health
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 503 {object} entity.APIResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
		Checks:    make(map[string]string, len(h.checks)),
	}

	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "unhealthy"
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(entity.NewSuccessResponse(resp, "Service is unhealthy"))
	}
	return c.JSON(entity.NewSuccessResponse(resp, "Service is healthy"))
}
