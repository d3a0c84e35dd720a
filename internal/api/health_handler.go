package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthHandler 健康检查
type HealthHandler struct {
	ping   func(ctx context.Context) error
	logger *logrus.Logger
}

func NewHealthHandler(ping func(ctx context.Context) error, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{ping: ping, logger: logger}
}

// Health GET /health，数据库不可达时返回 503
func (h *HealthHandler) Health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			h.logger.WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
