package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"SmartBetting/internal/repository"
	"SmartBetting/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError 参数错误 400、不存在 404、超时 504，其余 500 并记日志
func respondError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		logger.WithError(err).Warn(op + " timeout")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "查询超时"})
	default:
		logger.WithError(err).Error(op + " failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// queryInt 读取整数查询参数，缺省返回 def
func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, key+" 必须为整数")
		return 0, false
	}
	return v, true
}

// queryBool 读取布尔查询参数，缺省返回 def
func queryBool(c *gin.Context, key string, def bool) (bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, key+" 必须为 true/false")
		return false, false
	}
	return v, true
}
