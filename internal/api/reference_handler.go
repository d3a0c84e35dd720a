package api

import (
	"net/http"

	"SmartBetting/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReferenceHandler 基础数据接口
type ReferenceHandler struct {
	svc    *service.ReferenceService
	logger *logrus.Logger
}

func NewReferenceHandler(svc *service.ReferenceService, logger *logrus.Logger) *ReferenceHandler {
	return &ReferenceHandler{svc: svc, logger: logger}
}

// ListSports GET /api/sports
func (h *ReferenceHandler) ListSports(c *gin.Context) {
	sports, err := h.svc.Sports(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListSports", err)
		return
	}
	c.JSON(http.StatusOK, sports)
}

// ListLeagues GET /api/leagues?sport=BASKETBALL
func (h *ReferenceHandler) ListLeagues(c *gin.Context) {
	leagues, err := h.svc.Leagues(c.Request.Context(), c.Query("sport"))
	if err != nil {
		respondError(c, h.logger, "ListLeagues", err)
		return
	}
	c.JSON(http.StatusOK, leagues)
}

// ListTeams GET /api/teams?league=NBA&active=true
func (h *ReferenceHandler) ListTeams(c *gin.Context) {
	active, ok := queryBool(c, "active", true)
	if !ok {
		return
	}
	teams, err := h.svc.Teams(c.Request.Context(), c.Query("league"), active)
	if err != nil {
		respondError(c, h.logger, "ListTeams", err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// ListProviders GET /api/providers?active=true
func (h *ReferenceHandler) ListProviders(c *gin.Context) {
	active, ok := queryBool(c, "active", true)
	if !ok {
		return
	}
	providers, err := h.svc.Providers(c.Request.Context(), active)
	if err != nil {
		respondError(c, h.logger, "ListProviders", err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// ListMarketTypes GET /api/market-types
func (h *ReferenceHandler) ListMarketTypes(c *gin.Context) {
	types, err := h.svc.MarketTypes(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListMarketTypes", err)
		return
	}
	c.JSON(http.StatusOK, types)
}
