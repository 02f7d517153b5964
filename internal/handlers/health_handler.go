package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything that can report its own liveness (the broker client).
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	*BaseHandler
	broker Pinger
}

func NewHealthHandler(base *BaseHandler, broker Pinger) *HealthHandler {
	return &HealthHandler{BaseHandler: base, broker: broker}
}

func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
}

// Health godoc
// @Summary Проверка состояния
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	result := gin.H{"database": "ok", "broker": "ok"}

	sqlDB, err := h.GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status = http.StatusServiceUnavailable
		result["database"] = err.Error()
	}

	switch {
	case h.broker == nil:
		result["broker"] = "disabled"
	default:
		if err := h.broker.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			result["broker"] = err.Error()
		}
	}

	if status == http.StatusOK {
		result["status"] = "ok"
	} else {
		result["status"] = "degraded"
	}
	c.JSON(status, result)
}
