package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/regrada-ai/regrada-auth/internal/api/types"
	"github.com/regrada-ai/regrada-auth/internal/storage"
)

type HealthHandler struct {
	backend     storage.Backend
	redisClient *redis.Client
}

// NewHealthHandler checks the token store and, when rate limiting is
// enabled, the Redis client behind it.
func NewHealthHandler(backend storage.Backend, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		backend:     backend,
		redisClient: redisClient,
	}
}

// Health reports dependency status
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Failure      503  {object}  types.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := types.HealthResponse{
		Status: "ok",
		Checks: map[string]string{},
	}

	if err := h.backend.Ping(ctx); err != nil {
		status.Status = "error"
		status.Checks["token_store"] = "down"
	} else {
		status.Checks["token_store"] = "up"
	}

	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			status.Status = "error"
			status.Checks["redis"] = "down"
		} else {
			status.Checks["redis"] = "up"
		}
	}

	if status.Status == "error" {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	c.JSON(http.StatusOK, status)
}
