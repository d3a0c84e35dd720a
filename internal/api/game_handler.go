package api

import (
	"net/http"
	"strconv"

	"SmartBetting/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GameHandler 比赛查询接口
type GameHandler struct {
	svc    *service.GameService
	logger *logrus.Logger
}

func NewGameHandler(svc *service.GameService, logger *logrus.Logger) *GameHandler {
	return &GameHandler{svc: svc, logger: logger}
}

// ListGames GET /api/games?date=2025-01-15&league=NBA&status=Scheduled
func (h *GameHandler) ListGames(c *gin.Context) {
	q := service.GameQuery{
		League: c.Query("league"),
		Status: c.Query("status"),
	}
	if raw := c.Query("date"); raw != "" {
		d, err := service.ParseDate(raw)
		if err != nil {
			respondError(c, h.logger, "ListGames", err)
			return
		}
		q.Date = d
	}
	result, err := h.svc.ListGames(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, "ListGames", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetGame GET /api/games/:game_id
func (h *GameHandler) GetGame(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		badRequest(c, "game_id 必须为整数")
		return
	}
	detail, err := h.svc.GetGameDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetGame", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
