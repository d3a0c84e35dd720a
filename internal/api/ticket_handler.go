package api

import (
	"net/http"
	"time"

	"SmartBetting/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TicketHandler 注单查询接口
type TicketHandler struct {
	svc    *service.TicketService
	logger *logrus.Logger
}

func NewTicketHandler(svc *service.TicketService, logger *logrus.Logger) *TicketHandler {
	return &TicketHandler{svc: svc, logger: logger}
}

// ListTickets GET /api/tickets?status=Pending&strategy=kelly&from=2025-01-01&to=2025-01-31T23:59:59Z&page=1&page_size=20
func (h *TicketHandler) ListTickets(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := queryInt(c, "page_size", 20)
	if !ok {
		return
	}
	q := service.TicketQuery{
		Status:      c.Query("status"),
		StrategyTag: c.Query("strategy"),
		Page:        page,
		PageSize:    pageSize,
	}
	if q.From, ok = queryTime(c, "from"); !ok {
		return
	}
	if q.To, ok = queryTime(c, "to"); !ok {
		return
	}

	result, err := h.svc.ListTickets(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, "ListTickets", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTicket GET /api/tickets/:ticket_ref
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.svc.GetTicket(c.Request.Context(), c.Param("ticket_ref"))
	if err != nil {
		respondError(c, h.logger, "GetTicket", err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// queryTime 接受 RFC3339 或 YYYY-MM-DD
func queryTime(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	t, err := service.ParseDate(raw)
	if err != nil {
		badRequest(c, key+" 应为 RFC3339 或 YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}
