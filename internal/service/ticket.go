package service

import (
	"context"
	"time"

	"SmartBetting/internal/model"
	"SmartBetting/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TicketService 注单查询
type TicketService struct {
	repo   repository.TicketRepository
	logger *logrus.Logger
}

func NewTicketService(repo repository.TicketRepository, logger *logrus.Logger) *TicketService {
	return &TicketService{repo: repo, logger: logger}
}

// TicketListResult 注单列表返回
type TicketListResult struct {
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Total    int64              `json:"total"`
	Items    []*model.BetTicket `json:"items"`
}

// TicketQuery 注单列表参数
type TicketQuery struct {
	Status      string
	StrategyTag string
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

var ticketStatuses = map[string]bool{
	model.TicketStatusPending: true,
	model.TicketStatusWon:     true,
	model.TicketStatusLost:    true,
	model.TicketStatusPush:    true,
	model.TicketStatusVoid:    true,
}

// GetTicket ref 为注单 UUID
func (s *TicketService) GetTicket(ctx context.Context, ref string) (*model.BetTicket, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, invalidf("ticket_ref 不是合法 UUID: %q", ref)
	}
	return s.repo.GetTicketByRef(ctx, id)
}

func (s *TicketService) ListTickets(ctx context.Context, q TicketQuery) (*TicketListResult, error) {
	if q.Status != "" && !ticketStatuses[q.Status] {
		return nil, invalidf("未知的注单状态: %q", q.Status)
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return nil, invalidf("结束时间早于开始时间")
	}
	page, pageSize := normalizePage(q.Page, q.PageSize)
	tickets, total, err := s.repo.ListTickets(ctx, repository.TicketFilter{
		Status:      q.Status,
		StrategyTag: q.StrategyTag,
		FromTime:    q.From,
		ToTime:      q.To,
	}, page, pageSize)
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*model.BetTicket{}
	}
	return &TicketListResult{Page: page, PageSize: pageSize, Total: total, Items: tickets}, nil
}
