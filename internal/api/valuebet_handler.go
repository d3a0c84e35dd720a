package api

import (
	"math"
	"net/http"
	"strconv"

	"SmartBetting/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ValueBetHandler 价值投注与推荐查询接口
type ValueBetHandler struct {
	svc    *service.ValueBetService
	logger *logrus.Logger
}

// NewValueBetHandler 创建 ValueBetHandler
func NewValueBetHandler(svc *service.ValueBetService, logger *logrus.Logger) *ValueBetHandler {
	return &ValueBetHandler{svc: svc, logger: logger}
}

// Today 今日（比赛日为 UTC 今天）价值投注，返回 ValueBetResult 对象；league/provider 接受编码或名称。
// 旧版本在此路径返回"今天生成的推荐"裸数组，该语义已迁到 /api/recommendations/today，旧客户端需改路径。
// GET /api/valuebets/today?limit=50&min_edge=0.02&league=NBA&provider=DK&risk=Low&bet_type=MONEYLINE
func (h *ValueBetHandler) Today(c *gin.Context) {
	q, ok := parseValueBetQuery(c)
	if !ok {
		return
	}
	result, err := h.svc.Today(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, "ValueBetsToday", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ByDate 指定比赛日的价值投注，返回结构同 Today
// GET /api/valuebets?date=2025-01-15&limit=50
func (h *ValueBetHandler) ByDate(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		badRequest(c, "date is required (YYYY-MM-DD)")
		return
	}
	date, err := service.ParseDate(raw)
	if err != nil {
		respondError(c, h.logger, "ValueBetsByDate", err)
		return
	}
	q, ok := parseValueBetQuery(c)
	if !ok {
		return
	}
	result, err := h.svc.ForDate(c.Request.Context(), date, q)
	if err != nil {
		respondError(c, h.logger, "ValueBetsByDate", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecommendationsToday 今天生成的推荐原始记录，按 edge 降序，返回裸数组（即旧版 /api/valuebets/today 的响应）
// GET /api/recommendations/today?limit=50
func (h *ValueBetHandler) RecommendationsToday(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	items, err := h.svc.RecommendationsToday(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, "RecommendationsToday", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func parseValueBetQuery(c *gin.Context) (service.ValueBetQuery, bool) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return service.ValueBetQuery{}, false
	}
	q := service.ValueBetQuery{
		Limit:     limit,
		League:    c.Query("league"),
		Provider:  c.Query("provider"),
		RiskLevel: c.Query("risk"),
		BetType:   c.Query("bet_type"),
	}
	if raw := c.Query("min_edge"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			badRequest(c, "min_edge 必须为有限数字")
			return service.ValueBetQuery{}, false
		}
		q.MinEdge = &v
	}
	return q, true
}
